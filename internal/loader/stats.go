package loader

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agentstation/langmap/pkg/graph"
)

// Record kinds counted by the loader.
const (
	KindAlias          = "alias"
	KindClassification = "classification"
	KindTranslation    = "translation"
	KindEdge           = "edge"
	KindAttributes     = "attributes"
	KindRetirement     = "retirement"
	KindCensus         = "census"
)

const (
	resultAccepted = "accepted"
	resultRejected = "rejected"
	resultExcluded = "excluded"
)

var records = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "langmap_loader_records_total",
		Help: "Records seen by the loader, by kind and result",
	},
	[]string{"kind", "result"},
)

// Stats summarizes one load run.
type Stats struct {
	RunID     uuid.UUID       `json:"run_id" yaml:"run_id"`
	Started   time.Time       `json:"started" yaml:"started"`
	Duration  time.Duration   `json:"duration" yaml:"duration"`
	Accepted  map[string]int  `json:"accepted" yaml:"accepted"`
	Rejected  map[string]int  `json:"rejected" yaml:"rejected"`
	Excluded  map[string]int  `json:"excluded" yaml:"excluded"`
	Inference graph.Inference `json:"inference" yaml:"inference"`

	mu sync.Mutex
}

func newStats() *Stats {
	return &Stats{
		RunID:    uuid.New(),
		Started:  time.Now(),
		Accepted: make(map[string]int),
		Rejected: make(map[string]int),
		Excluded: make(map[string]int),
	}
}

func (s *Stats) accept(kind string)  { s.add(s.Accepted, kind, resultAccepted) }
func (s *Stats) reject(kind string)  { s.add(s.Rejected, kind, resultRejected) }
func (s *Stats) exclude(kind string) { s.add(s.Excluded, kind, resultExcluded) }

func (s *Stats) add(m map[string]int, kind, result string) {
	s.mu.Lock()
	m[kind]++
	s.mu.Unlock()
	records.WithLabelValues(kind, result).Inc()
}

// Kinds returns every kind seen in the run, sorted.
func (s *Stats) Kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := maps.Clone(s.Accepted)
	maps.Copy(seen, s.Rejected)
	maps.Copy(seen, s.Excluded)
	return slices.Sorted(maps.Keys(seen))
}

// TotalRejected is the number of records dropped as malformed.
func (s *Stats) TotalRejected() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.Rejected {
		n += v
	}
	return n
}
