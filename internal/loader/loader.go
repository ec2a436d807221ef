// Package loader runs the load pass: it reads the bundles written by the
// source adapters and records them in the ledger in a fixed order, so that
// passes which look up existing codes or names see everything they depend
// on.
//
// The order is:
//
//  1. language bundles: primary name, alternates, classification, translation
//  2. translation bundles, for codes already present
//  3. language bundles again: speakers, dialects, writing state, relationships
//  4. SIL retirements
//  5. reverse inference
//  6. ABS names
//  7. coordinates
//  8. census speaker counts and English competency, for every code
//
// Malformed records are logged, counted and skipped. Any other error stops
// the run.
package loader

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/langmap/pkg/constants"
	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/logging"
	"github.com/agentstation/langmap/pkg/sources"
)

// KindLanguage counts language bundle entries skipped as excluded.
const KindLanguage = "language"

// Loader records adapter bundles in a ledger.
type Loader struct {
	ledger   *ledger.Ledger
	graph    *graph.Graph
	excluded map[ledger.Code]bool
	logger   *zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithExcludedCodes replaces the default excluded codes.
func WithExcludedCodes(codes ...string) Option {
	return func(l *Loader) {
		l.excluded = codeSet(codes)
	}
}

// WithLogger sets the logger. When unset the logger is taken from the
// context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader writing to l, with edges going through g.
func New(l *ledger.Ledger, g *graph.Graph, opts ...Option) *Loader {
	ld := &Loader{
		ledger:   l,
		graph:    g,
		excluded: codeSet(constants.DefaultExcludedCodes()),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

func codeSet(codes []string) map[ledger.Code]bool {
	set := make(map[ledger.Code]bool, len(codes))
	for _, c := range codes {
		set[ledger.Code(c)] = true
	}
	return set
}

// Load reads the manifest at path and runs it.
func (l *Loader) Load(ctx context.Context, path string) (*Stats, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return l.Run(ctx, m)
}

// run holds the state of one Run.
type run struct {
	ledger   *ledger.Ledger
	graph    *graph.Graph
	stats    *Stats
	excluded map[ledger.Code]bool
	logger   *zerolog.Logger
}

// Run loads every file named in m. The returned stats are valid even when
// an error stops the run part way.
func (l *Loader) Run(ctx context.Context, m *Manifest) (*Stats, error) {
	stats := newStats()
	if l.logger != nil {
		ctx = logging.WithLogger(ctx, l.logger)
	}
	ctx = logging.WithRunID(ctx, stats.RunID.String())

	r := &run{
		ledger:   l.ledger,
		graph:    l.graph,
		stats:    stats,
		excluded: l.excluded,
		logger:   logging.FromContext(ctx),
	}
	if len(m.ExcludedCodes) > 0 {
		r.excluded = codeSet(m.ExcludedCodes)
	}

	r.logger.Info().
		Int("language_bundles", len(m.Languages)).
		Int("translation_bundles", len(m.Translations)).
		Msg("Starting load")

	err := r.load(ctx, m)
	stats.Duration = time.Since(stats.Started)
	if err != nil {
		r.logger.Error().Err(err).Msg("Load failed")
		return stats, err
	}

	r.logger.Info().
		Dur("duration", stats.Duration).
		Int("rejected", stats.TotalRejected()).
		Int("inferred", stats.Inference.Added).
		Msg("Load complete")
	return stats, nil
}

func (r *run) load(ctx context.Context, m *Manifest) error {
	languages := make([]*LanguageBundle, 0, len(m.Languages))
	for _, path := range m.Languages {
		b := &LanguageBundle{}
		if err := readBundle(path, b); err != nil {
			return err
		}
		languages = append(languages, b)
	}

	for _, b := range languages {
		if err := r.languages(ctx, b); err != nil {
			return err
		}
	}
	for _, path := range m.Translations {
		if err := r.translations(ctx, path); err != nil {
			return err
		}
	}
	for _, b := range languages {
		if err := r.attributes(ctx, b); err != nil {
			return err
		}
	}
	if m.Retirements != "" {
		if err := r.retirements(ctx, m.Retirements); err != nil {
			return err
		}
	}

	inference, err := r.graph.ReverseInfer(ctx)
	if err != nil {
		return err
	}
	r.stats.Inference = inference

	if m.ABSNames != "" {
		if err := r.absNames(ctx, m.ABSNames); err != nil {
			return err
		}
	}
	if m.Coordinates != "" {
		if err := r.coordinates(ctx, m.Coordinates); err != nil {
			return err
		}
	}
	if m.Census != "" {
		if err := r.census(ctx, m.Census); err != nil {
			return err
		}
	}
	return nil
}

// record counts the outcome of one write. Malformed records are logged and
// swallowed; any other error is returned.
func (r *run) record(kind string, err error) error {
	if err == nil {
		r.stats.accept(kind)
		return nil
	}
	if !errors.IsMalformedRecord(err) {
		return err
	}
	r.stats.reject(kind)
	r.logger.Warn().Err(err).Str("kind", kind).Msg("Skipping malformed record")
	return nil
}

func (r *run) isExcluded(kind string, code ledger.Code) bool {
	if !r.excluded[code] {
		return false
	}
	r.stats.exclude(kind)
	return true
}

func (r *run) languages(ctx context.Context, b *LanguageBundle) error {
	r.logger.Info().Str("source", b.Source.String()).Int("languages", len(b.Languages)).Msg("Loading languages")
	for _, e := range b.Languages {
		if r.isExcluded(KindLanguage, e.Code) {
			continue
		}
		if e.Primary != "" {
			if err := r.record(KindAlias, r.ledger.PutPrimaryName(ctx, e.Code, e.Primary, b.Source)); err != nil {
				return err
			}
		}
		for _, name := range e.Alternates {
			if err := r.record(KindAlias, r.ledger.PutAlternateName(ctx, e.Code, name, b.Source)); err != nil {
				return err
			}
		}
		if len(e.Classification) > 0 {
			if err := r.record(KindClassification, r.ledger.PutClassification(ctx, e.Code, e.Classification, b.Source)); err != nil {
				return err
			}
		}
		if e.Translation != nil {
			if err := r.record(KindTranslation, r.ledger.PutTranslation(ctx, translationRecord(e.Code, b.Source, e.Translation))); err != nil {
				return err
			}
		}
	}
	return nil
}

func translationRecord(code ledger.Code, source sources.ID, t *TranslationEntry) ledger.TranslationRecord {
	year := constants.TranslationYearUnknown
	switch {
	case t.Year != nil:
		year = *t.Year
	case t.Present:
		year = constants.TranslationYearPositive
	}
	return ledger.TranslationRecord{Code: code, Source: source, Status: ledger.TranslationState(t.Status), Year: year}
}

func (r *run) translations(ctx context.Context, path string) error {
	b := &TranslationBundle{}
	if err := readBundle(path, b); err != nil {
		return err
	}
	r.logger.Info().Str("source", b.Source.String()).Int("translations", len(b.Translations)).Msg("Loading translations")

	for i := range b.Translations {
		t := &b.Translations[i]
		if r.isExcluded(KindTranslation, t.Code) {
			continue
		}
		known, err := r.ledger.CodesByCode(ctx, t.Code)
		if err != nil {
			return err
		}
		if len(known) == 0 {
			r.logger.Debug().Str("code", t.Code.String()).Msg("Skipping translation for unknown code")
			continue
		}
		if err := r.record(KindTranslation, r.ledger.PutTranslation(ctx, translationRecord(t.Code, b.Source, t))); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) attributes(ctx context.Context, b *LanguageBundle) error {
	for _, e := range b.Languages {
		if r.excluded[e.Code] {
			continue
		}
		if e.Speakers != nil {
			patch := ledger.Attributes{Code: e.Code, Speakers: map[sources.ID]int{b.Source: *e.Speakers}}
			if err := r.record(KindAttributes, r.ledger.PutAttributes(ctx, patch)); err != nil {
				return err
			}
		}
		for _, name := range e.Dialects {
			if err := r.record(KindAlias, r.ledger.PutDialect(ctx, e.Code, name, b.Source)); err != nil {
				return err
			}
		}
		if e.WritingState != "" {
			patch := ledger.Attributes{Code: e.Code, WritingState: ledger.WritingState(e.WritingState)}
			if err := r.record(KindAttributes, r.ledger.PutAttributes(ctx, patch)); err != nil {
				return err
			}
		}
		for _, rel := range e.Relationships {
			if err := r.record(KindEdge, r.graph.AddEdge(ctx, e.Code, rel.Verb, rel.Object, b.Source)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *run) retirements(ctx context.Context, path string) error {
	retirements, bad, err := ReadRetirements(path)
	for _, e := range bad {
		r.stats.reject(KindRetirement)
		r.logger.Warn().Err(e).Msg("Skipping malformed retirement")
	}
	if err != nil {
		return err
	}
	r.logger.Info().Int("retirements", len(retirements)).Msg("Loading retirements")

	for _, ret := range retirements {
		if r.isExcluded(KindRetirement, ret.Code) {
			continue
		}
		r.stats.accept(KindRetirement)
		for _, e := range ret.Edges {
			if err := r.record(KindEdge, r.ledger.PutEdge(ctx, e)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *run) absNames(ctx context.Context, path string) error {
	b := &NameBundle{}
	if err := readBundle(path, b); err != nil {
		return err
	}
	r.logger.Info().Str("source", b.Source.String()).Int("names", len(b.Names)).Msg("Loading ABS names")

	for _, n := range b.Names {
		for _, code := range n.Codes {
			if r.isExcluded(KindAlias, code) {
				continue
			}
			if err := r.record(KindAlias, r.ledger.PutPrimaryName(ctx, code, n.Name, b.Source)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *run) coordinates(ctx context.Context, path string) error {
	b := &CoordinateBundle{}
	if err := readBundle(path, b); err != nil {
		return err
	}
	r.logger.Info().Str("source", b.Source.String()).Int("coordinates", len(b.Coordinates)).Msg("Loading coordinates")

	for _, c := range b.Coordinates {
		if r.isExcluded(KindAttributes, c.Code) {
			continue
		}
		patch := ledger.Attributes{
			Code:        c.Code,
			Coordinates: map[sources.ID]ledger.Coordinate{b.Source: {Latitude: c.Latitude, Longitude: c.Longitude}},
		}
		if err := r.record(KindAttributes, r.ledger.PutAttributes(ctx, patch)); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) census(ctx context.Context, path string) error {
	rows, bad, err := ReadCensus(path)
	for _, e := range bad {
		r.stats.reject(KindCensus)
		r.logger.Warn().Err(e).Msg("Skipping malformed census row")
	}
	if err != nil {
		return err
	}

	attribution, err := AttributeCensus(ctx, rows, r.ledger)
	if err != nil {
		return err
	}
	codes, err := r.ledger.Codes(ctx)
	if err != nil {
		return err
	}
	r.logger.Info().Int("rows", len(rows)).Int("codes", len(codes)).Msg("Attributing census speakers")

	for _, code := range codes {
		patch := ledger.Attributes{
			Code:     code,
			Speakers: map[sources.ID]int{sources.Census2011: attribution.SpeakerCount(code)},
		}
		if c, ok := attribution.EnglishCompetency(code); ok {
			patch.EnglishCompetency = map[sources.ID]ledger.Competency{sources.Census2011: c}
		}
		if err := r.record(KindCensus, r.ledger.PutAttributes(ctx, patch)); err != nil {
			return err
		}
	}
	return nil
}
