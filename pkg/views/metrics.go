package views

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits counts reads served from a view computed at the current
	// ledger revision.
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "langmap_view_cache_hits_total",
		Help: "Total view reads served from cache",
	}, []string{"view"})

	// cacheMisses counts reads that found no view, or a stale one.
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "langmap_view_cache_misses_total",
		Help: "Total view reads that required a rebuild",
	}, []string{"view"})

	// cacheRebuilds counts full scans; misses that share an in-flight
	// rebuild are not counted again.
	cacheRebuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "langmap_view_cache_rebuilds_total",
		Help: "Total view rebuilds",
	}, []string{"view"})
)
