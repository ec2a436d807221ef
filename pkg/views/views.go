// Package views computes per-code aggregates over the ledger: the best
// translation state, speaker counts, retirement and display names.
//
// Each view is one full scan of a ledger relation. Results are cached with
// the ledger revision they were computed from and recomputed on the first
// read after the ledger changes.
package views

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/agentstation/langmap/pkg/constants"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/logging"
	"github.com/agentstation/langmap/pkg/sources"
)

// View names, used as metric labels.
const (
	viewTranslations  = "translations"
	viewSpeakers      = "speakers"
	viewRetired       = "retired"
	viewDisplayNames  = "display_names"
	viewRelationships = "relationships"
)

// Views serves cached aggregates over a ledger.
type Views struct {
	ledger *ledger.Ledger
	logger *zerolog.Logger

	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group
}

// Option configures Views.
type Option func(*Views)

// WithLogger sets the logger. When unset the logger is taken from the
// context of each call.
func WithLogger(logger *zerolog.Logger) Option {
	return func(v *Views) {
		v.logger = logger
	}
}

// New creates Views over l.
func New(l *ledger.Ledger, opts ...Option) *Views {
	v := &Views{
		ledger:  l,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Views) log(ctx context.Context) *zerolog.Logger {
	if v.logger != nil {
		return v.logger
	}
	return logging.FromContext(ctx)
}

// BestTranslationState returns the most complete translation state any
// source reports for code, or NoRecord.
func (v *Views) BestTranslationState(ctx context.Context, code ledger.Code) (ledger.TranslationState, error) {
	best, err := lookup(ctx, v, viewTranslations, viewTranslations, v.buildTranslations)
	if err != nil {
		return ledger.NoRecord, err
	}
	if s, ok := best[code]; ok {
		return s, nil
	}
	return ledger.NoRecord, nil
}

func (v *Views) buildTranslations(ctx context.Context) (map[ledger.Code]ledger.TranslationState, error) {
	records, err := v.ledger.AllTranslations(ctx)
	if err != nil {
		return nil, err
	}
	best := make(map[ledger.Code]ledger.TranslationState)
	for _, r := range records {
		if cur, ok := best[r.Code]; !ok || r.Status > cur {
			best[r.Code] = r.Status
		}
	}
	return best, nil
}

// SpeakerCount returns the first-language speaker count source reports for
// code. Codes without one get constants.SpeakerCountUnknown. Negative
// values are sentinels, not counts.
func (v *Views) SpeakerCount(ctx context.Context, code ledger.Code, source sources.ID) (int, error) {
	counts, err := lookup(ctx, v, viewSpeakers, viewSpeakers+":"+string(source), func(ctx context.Context) (map[ledger.Code]int, error) {
		return v.buildSpeakers(ctx, source)
	})
	if err != nil {
		return constants.SpeakerCountUnknown, err
	}
	if n, ok := counts[code]; ok {
		return n, nil
	}
	return constants.SpeakerCountUnknown, nil
}

func (v *Views) buildSpeakers(ctx context.Context, source sources.ID) (map[ledger.Code]int, error) {
	rows, err := v.ledger.AllAttributes(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[ledger.Code]int)
	for _, a := range rows {
		if n, ok := a.Speakers[source]; ok {
			counts[a.Code] = n
		}
	}
	return counts, nil
}

// IsRetired reports whether code is the subject of a retirement edge.
func (v *Views) IsRetired(ctx context.Context, code ledger.Code) (bool, error) {
	retired, err := lookup(ctx, v, viewRetired, viewRetired, v.buildRetired)
	if err != nil {
		return false, err
	}
	return retired[code], nil
}

func (v *Views) buildRetired(ctx context.Context) (map[ledger.Code]bool, error) {
	edges, err := v.ledger.AllEdges(ctx)
	if err != nil {
		return nil, err
	}
	retired := make(map[ledger.Code]bool)
	for _, e := range edges {
		if e.Verb.IsRetirement() {
			retired[e.Subject] = true
		}
	}
	return retired, nil
}

// CouldHaveSpeakers reports whether code has Ethnologue first-language
// speakers, or an unknown number of them.
func (v *Views) CouldHaveSpeakers(ctx context.Context, code ledger.Code) (bool, error) {
	n, err := v.SpeakerCount(ctx, code, sources.Ethnologue)
	if err != nil {
		return false, err
	}
	return n > 0 || n == constants.SpeakerCountUnknown, nil
}

// PrimaryNameForDisplay returns the first Ethnologue primary name of code,
// or constants.NotInEthnologue.
func (v *Views) PrimaryNameForDisplay(ctx context.Context, code ledger.Code) (string, error) {
	names, err := lookup(ctx, v, viewDisplayNames, viewDisplayNames, v.buildDisplayNames)
	if err != nil {
		return constants.NotInEthnologue, err
	}
	if name, ok := names[code]; ok {
		return name, nil
	}
	return constants.NotInEthnologue, nil
}

func (v *Views) buildDisplayNames(ctx context.Context) (map[ledger.Code]string, error) {
	aliases, err := v.ledger.AllAliases(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[ledger.Code]string)
	for _, a := range aliases {
		if a.Kind != ledger.Primary || a.Source != sources.Ethnologue {
			continue
		}
		if _, ok := names[a.Code]; !ok {
			names[a.Code] = a.Name
		}
	}
	return names, nil
}

// Relationships returns the outgoing edges of code, sorted.
func (v *Views) Relationships(ctx context.Context, code ledger.Code) ([]graph.Relationship, error) {
	all, err := lookup(ctx, v, viewRelationships, viewRelationships, v.buildRelationships)
	if err != nil {
		return nil, err
	}
	rels := all[code]
	out := make([]graph.Relationship, len(rels))
	copy(out, rels)
	return out, nil
}

func (v *Views) buildRelationships(ctx context.Context) (map[ledger.Code][]graph.Relationship, error) {
	edges, err := v.ledger.AllEdges(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[ledger.Code][]graph.Relationship)
	for _, e := range edges {
		out[e.Subject] = append(out[e.Subject], graph.Relationship{Source: e.Source, Verb: e.Verb, Object: e.Object})
	}
	for _, rels := range out {
		graph.SortRelationships(rels)
	}
	return out, nil
}
