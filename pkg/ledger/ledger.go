// Package ledger is the multi-source record store for language data: names
// (aliases), classifications, translation status, relationship edges and
// sparse per-code attributes, each tagged with the source that reported it.
//
// The Ledger validates every record before handing it to a Store backend
// and counts accepted writes. Derived views compare that counter with the
// value they last saw to decide when a cached result is stale.
//
// Example usage:
//
//	l := ledger.New(memory.New())
//	_ = l.PutPrimaryName(ctx, "aly", "Alyawarr", sources.Ethnologue)
//	names, _ := l.PrimaryNames(ctx, "aly") // map[EL:[Alyawarr]]
package ledger

import (
	"context"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/sources"
)

// Ledger validates and records source data on top of a Store.
type Ledger struct {
	store    Store
	revision atomic.Uint64
}

// New creates a Ledger backed by store.
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Revision returns the write counter. It increases on every accepted write
// and never decreases.
func (l *Ledger) Revision() uint64 {
	return l.revision.Load()
}

// Close closes the underlying store.
func (l *Ledger) Close() error {
	return l.store.Close()
}

func (l *Ledger) written() {
	l.revision.Add(1)
}

// PutAlias records a name for a code.
func (l *Ledger) PutAlias(ctx context.Context, r AliasRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := l.store.UpsertAlias(ctx, r); err != nil {
		return errors.WrapResource("upsert", KindAlias, string(r.Code), err)
	}
	l.written()
	return nil
}

// PutPrimaryName records the primary name a source uses for a code.
func (l *Ledger) PutPrimaryName(ctx context.Context, code Code, name string, source sources.ID) error {
	return l.PutAlias(ctx, AliasRecord{Code: code, Kind: Primary, Source: source, Name: name})
}

// PutAlternateName records an alternate name for a code.
func (l *Ledger) PutAlternateName(ctx context.Context, code Code, name string, source sources.ID) error {
	return l.PutAlias(ctx, AliasRecord{Code: code, Kind: Alternate, Source: source, Name: name})
}

// PutDialect records a dialect name for a code.
func (l *Ledger) PutDialect(ctx context.Context, code Code, name string, source sources.ID) error {
	return l.PutAlias(ctx, AliasRecord{Code: code, Kind: Dialect, Source: source, Name: name})
}

// PutClassification records a source's taxonomy for a code, broadest first.
// Every level is validated before any is written.
func (l *Ledger) PutClassification(ctx context.Context, code Code, names []string, source sources.ID) error {
	records := make([]ClassificationRecord, len(names))
	for level, name := range names {
		records[level] = ClassificationRecord{Code: code, Source: source, Level: level, Name: name}
		if err := records[level].Validate(); err != nil {
			return err
		}
	}
	for _, r := range records {
		if err := l.store.UpsertClassification(ctx, r); err != nil {
			return errors.WrapResource("upsert", KindClassification, string(code), err)
		}
		l.written()
	}
	return nil
}

// PutTranslation records a source's translation status for a code.
func (l *Ledger) PutTranslation(ctx context.Context, r TranslationRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := l.store.UpsertTranslation(ctx, r); err != nil {
		return errors.WrapResource("upsert", KindTranslation, string(r.Code), err)
	}
	l.written()
	return nil
}

// PutEdge records a relationship edge.
func (l *Ledger) PutEdge(ctx context.Context, e Edge) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := l.store.UpsertEdge(ctx, e); err != nil {
		return errors.WrapResource("upsert", KindEdge, string(e.Subject), err)
	}
	l.written()
	return nil
}

// PutAttributes writes the fields set in patch for patch.Code.
func (l *Ledger) PutAttributes(ctx context.Context, patch Attributes) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := l.store.UpsertAttributes(ctx, patch); err != nil {
		return errors.WrapResource("upsert", KindAttributes, string(patch.Code), err)
	}
	l.written()
	return nil
}

// Codes returns every code with at least one alias, sorted.
func (l *Ledger) Codes(ctx context.Context) ([]Code, error) {
	aliases, err := l.AllAliases(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]Code, 0, len(aliases))
	for _, a := range aliases {
		codes = append(codes, a.Code)
	}
	return sortedUnique(codes), nil
}

// AllAliases returns every alias in insertion order.
func (l *Ledger) AllAliases(ctx context.Context) ([]AliasRecord, error) {
	return l.aliases(ctx, AliasFilter{})
}

func (l *Ledger) aliases(ctx context.Context, f AliasFilter) ([]AliasRecord, error) {
	records, err := l.store.Aliases(ctx, f)
	if err != nil {
		return nil, errors.WrapResource("query", KindAlias, string(f.Code), err)
	}
	return records, nil
}

// PrimaryNames returns the primary names of a code by source, in the order
// they were recorded.
func (l *Ledger) PrimaryNames(ctx context.Context, code Code) (map[sources.ID][]string, error) {
	return l.namesBySource(ctx, code, Primary, false)
}

// AlternateNames returns the alternate names of a code by source, sorted.
func (l *Ledger) AlternateNames(ctx context.Context, code Code) (map[sources.ID][]string, error) {
	return l.namesBySource(ctx, code, Alternate, true)
}

// DialectNames returns the dialect names of a code by source, sorted.
func (l *Ledger) DialectNames(ctx context.Context, code Code) (map[sources.ID][]string, error) {
	return l.namesBySource(ctx, code, Dialect, true)
}

func (l *Ledger) namesBySource(ctx context.Context, code Code, kind AliasKind, sorted bool) (map[sources.ID][]string, error) {
	records, err := l.aliases(ctx, AliasFilter{Code: code, Kind: kind})
	if err != nil {
		return nil, err
	}
	out := make(map[sources.ID][]string)
	for _, r := range records {
		out[r.Source] = append(out[r.Source], r.Name)
	}
	if sorted {
		for _, names := range out {
			slices.Sort(names)
		}
	}
	return out, nil
}

// Names returns every distinct name of a code, sorted.
func (l *Ledger) Names(ctx context.Context, code Code) ([]string, error) {
	records, err := l.aliases(ctx, AliasFilter{Code: code})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return sortedUnique(names), nil
}

// Classifications returns a code's taxonomy by source, broadest first.
// Levels keep the order they were reported in.
func (l *Ledger) Classifications(ctx context.Context, code Code) (map[sources.ID][]string, error) {
	records, err := l.store.Classifications(ctx, code)
	if err != nil {
		return nil, errors.WrapResource("query", KindClassification, string(code), err)
	}
	slices.SortStableFunc(records, func(a, b ClassificationRecord) int {
		return a.Level - b.Level
	})
	out := make(map[sources.ID][]string)
	for _, r := range records {
		out[r.Source] = append(out[r.Source], r.Name)
	}
	return out, nil
}

// Translations returns a code's translation records by source.
func (l *Ledger) Translations(ctx context.Context, code Code) (map[sources.ID][]TranslationRecord, error) {
	if code == "" {
		return map[sources.ID][]TranslationRecord{}, nil
	}
	records, err := l.store.Translations(ctx, code)
	if err != nil {
		return nil, errors.WrapResource("query", KindTranslation, string(code), err)
	}
	out := make(map[sources.ID][]TranslationRecord)
	for _, r := range records {
		out[r.Source] = append(out[r.Source], r)
	}
	return out, nil
}

// AllTranslations returns every translation record.
func (l *Ledger) AllTranslations(ctx context.Context) ([]TranslationRecord, error) {
	records, err := l.store.Translations(ctx, "")
	if err != nil {
		return nil, errors.WrapResource("scan", KindTranslation, "", err)
	}
	return records, nil
}

// Edges returns the edges matching f.
func (l *Ledger) Edges(ctx context.Context, f EdgeFilter) ([]Edge, error) {
	edges, err := l.store.Edges(ctx, f)
	if err != nil {
		return nil, errors.WrapResource("query", KindEdge, string(f.Subject), err)
	}
	return edges, nil
}

// AllEdges returns every edge in insertion order.
func (l *Ledger) AllEdges(ctx context.Context) ([]Edge, error) {
	return l.Edges(ctx, EdgeFilter{})
}

// HasEdge reports whether exactly e is stored.
func (l *Ledger) HasEdge(ctx context.Context, e Edge) (bool, error) {
	ok, err := l.store.HasEdge(ctx, e)
	if err != nil {
		return false, errors.WrapResource("query", KindEdge, string(e.Subject), err)
	}
	return ok, nil
}

// Attributes returns the attributes of a code and whether a row exists.
func (l *Ledger) Attributes(ctx context.Context, code Code) (Attributes, bool, error) {
	a, ok, err := l.store.Attributes(ctx, code)
	if err != nil {
		return Attributes{}, false, errors.WrapResource("query", KindAttributes, string(code), err)
	}
	return a, ok, nil
}

// AllAttributes returns every attribute row.
func (l *Ledger) AllAttributes(ctx context.Context) ([]Attributes, error) {
	rows, err := l.store.AllAttributes(ctx)
	if err != nil {
		return nil, errors.WrapResource("scan", KindAttributes, "", err)
	}
	return rows, nil
}

// CodesByName returns the codes having an alias spelled exactly name.
// The match is case sensitive and does not trim whitespace.
func (l *Ledger) CodesByName(ctx context.Context, name string) ([]Code, error) {
	if name == "" {
		return []Code{}, nil
	}
	records, err := l.aliases(ctx, AliasFilter{Name: name})
	if err != nil {
		return nil, err
	}
	codes := make([]Code, 0, len(records))
	for _, r := range records {
		codes = append(codes, r.Code)
	}
	return sortedUnique(codes), nil
}

// CodesByCode returns code itself when the ledger holds an alias for it,
// and nothing otherwise. Only whole codes match; prefixes do not.
func (l *Ledger) CodesByCode(ctx context.Context, code Code) ([]Code, error) {
	if code == "" {
		return []Code{}, nil
	}
	records, err := l.aliases(ctx, AliasFilter{Code: code})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []Code{}, nil
	}
	return []Code{code}, nil
}

// CommonNames returns the names every one of codes is known by, sorted.
func (l *Ledger) CommonNames(ctx context.Context, codes []Code) ([]string, error) {
	var common map[string]bool
	for _, code := range codes {
		names, err := l.Names(ctx, code)
		if err != nil {
			return nil, err
		}
		next := make(map[string]bool, len(names))
		for _, n := range names {
			if common == nil || common[n] {
				next[n] = true
			}
		}
		common = next
	}
	out := make([]string, 0, len(common))
	for n := range common {
		out = append(out, n)
	}
	slices.Sort(out)
	return out, nil
}

// SharedNameGroups returns the groups of codes that share at least one
// name. Each group is sorted, and the list holds each group once, sorted.
func (l *Ledger) SharedNameGroups(ctx context.Context) ([][]Code, error) {
	aliases, err := l.AllAliases(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string][]Code)
	for _, a := range aliases {
		byName[a.Name] = append(byName[a.Name], a.Code)
	}

	seen := make(map[string]bool)
	var groups [][]Code
	for _, codes := range byName {
		group := sortedUnique(codes)
		if len(group) < 2 {
			continue
		}
		key := joinCodes(group)
		if seen[key] {
			continue
		}
		seen[key] = true
		groups = append(groups, group)
	}
	slices.SortFunc(groups, func(a, b []Code) int {
		return strings.Compare(joinCodes(a), joinCodes(b))
	})
	return groups, nil
}

// NamePair is one (code, name) association, regardless of source or kind.
type NamePair struct {
	Code Code   `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// NamePairs returns every distinct (code, name) pair sorted by code then name.
func (l *Ledger) NamePairs(ctx context.Context) ([]NamePair, error) {
	aliases, err := l.AllAliases(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[NamePair]bool, len(aliases))
	pairs := make([]NamePair, 0, len(aliases))
	for _, a := range aliases {
		p := NamePair{Code: a.Code, Name: a.Name}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	slices.SortFunc(pairs, func(a, b NamePair) int {
		if c := strings.Compare(string(a.Code), string(b.Code)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return pairs, nil
}

func joinCodes(codes []Code) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

func sortedUnique[T ~string](in []T) []T {
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}
