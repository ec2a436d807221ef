// Package resolver maps free-text language names to ledger codes.
//
// A name resolves through three layers, first match wins:
//
//  1. an override for the exact name (force a code, or suppress);
//  2. codes holding an alias spelled exactly like the name;
//  3. codes holding an alias whose signature equals the name's signature.
//
// An empty result and a result with several codes are both normal
// outcomes, reported as data rather than errors.
package resolver

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/logging"
	"github.com/agentstation/langmap/pkg/signature"
)

// Outcome classifies a resolution.
type Outcome string

// Resolution outcomes.
const (
	OutcomeMiss       Outcome = "miss"
	OutcomeUnique     Outcome = "unique"
	OutcomeAmbiguous  Outcome = "ambiguous"
	OutcomeForced     Outcome = "forced"
	OutcomeSuppressed Outcome = "suppressed"
)

// Resolution is the detailed result of resolving one name.
type Resolution struct {
	Name    string        `json:"name" yaml:"name"`
	Codes   []ledger.Code `json:"codes" yaml:"codes"`
	Outcome Outcome       `json:"outcome" yaml:"outcome"`
	// Exact holds the codes with an alias spelled exactly like Name.
	Exact []ledger.Code `json:"exact" yaml:"exact"`
	// Signature is the signature of Name, and SignatureCodes the codes
	// reached through it after overrides.
	Signature      string        `json:"signature" yaml:"signature"`
	SignatureCodes []ledger.Code `json:"signature_codes" yaml:"signature_codes"`
}

// index is the name and signature lookup built from one ledger revision.
type index struct {
	revision uint64
	byName   map[string][]ledger.Code
	bySig    map[string][]ledger.Code
}

// Resolver resolves names against a ledger. Indexes are built on first use
// and rebuilt after the ledger revision advances.
type Resolver struct {
	ledger    *ledger.Ledger
	overrides Overrides
	generator *signature.Generator
	logger    *zerolog.Logger

	mu    sync.RWMutex
	idx   *index
	group singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOverrides replaces the override table.
func WithOverrides(ov Overrides) Option {
	return func(r *Resolver) {
		r.overrides = ov
	}
}

// WithGenerator sets the signature generator.
func WithGenerator(g *signature.Generator) Option {
	return func(r *Resolver) {
		r.generator = g
	}
}

// WithLogger sets the logger. When unset the logger is taken from the
// context of each call.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver over l with the default overrides.
func New(l *ledger.Ledger, opts ...Option) *Resolver {
	r := &Resolver{
		ledger:    l,
		overrides: DefaultOverrides(),
		generator: signature.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Overrides returns the override table in use.
func (r *Resolver) Overrides() Overrides {
	return r.overrides
}

func (r *Resolver) log(ctx context.Context) *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}

// Resolve returns the sorted, duplicate-free set of codes for name.
func (r *Resolver) Resolve(ctx context.Context, name string) ([]ledger.Code, error) {
	res, err := r.ResolveDetailed(ctx, name)
	if err != nil {
		return nil, err
	}
	return res.Codes, nil
}

// ResolveDetailed resolves name and reports how the result was reached.
func (r *Resolver) ResolveDetailed(ctx context.Context, name string) (Resolution, error) {
	res := Resolution{
		Name:           name,
		Codes:          []ledger.Code{},
		Exact:          []ledger.Code{},
		SignatureCodes: []ledger.Code{},
	}

	if ov, ok := r.overrides.Lookup(name); ok {
		res.Codes = ov.Codes()
		res.Outcome = OutcomeForced
		if ov.IsSuppress() {
			res.Outcome = OutcomeSuppressed
		}
		return res, nil
	}

	if strings.TrimSpace(name) == "" {
		res.Outcome = OutcomeMiss
		return res, nil
	}

	idx, err := r.currentIndex(ctx)
	if err != nil {
		return res, err
	}

	res.Signature = r.generator.Generate(name)
	if codes, ok := idx.byName[name]; ok {
		res.Exact = slices.Clone(codes)
	}
	if codes, ok := idx.bySig[res.Signature]; ok {
		res.SignatureCodes = slices.Clone(codes)
	}

	res.Codes = res.SignatureCodes
	if len(res.Exact) > 0 {
		res.Codes = res.Exact
		if !slices.Equal(res.Exact, res.SignatureCodes) {
			r.log(ctx).Info().
				Str("name", name).
				Str("signature", res.Signature).
				Strs("exact", codeStrings(res.Exact)).
				Strs("by_signature", codeStrings(res.SignatureCodes)).
				Msg("Exact and signature matches differ")
		}
	}

	switch len(res.Codes) {
	case 0:
		res.Outcome = OutcomeMiss
	case 1:
		res.Outcome = OutcomeUnique
	default:
		res.Outcome = OutcomeAmbiguous
	}
	return res, nil
}

// currentIndex returns an index for the current ledger revision, building
// it if needed. Concurrent callers share one build.
func (r *Resolver) currentIndex(ctx context.Context) (*index, error) {
	rev := r.ledger.Revision()

	r.mu.RLock()
	idx := r.idx
	r.mu.RUnlock()
	if idx != nil && idx.revision >= rev {
		return idx, nil
	}

	// Joined callers share the first caller's ctx and revision. Writes do
	// not overlap serving reads, so a joiner never needs a newer build.
	v, err, _ := r.group.Do("index", func() (any, error) {
		r.mu.RLock()
		idx := r.idx
		r.mu.RUnlock()
		if idx != nil && idx.revision >= rev {
			return idx, nil
		}

		built, err := r.build(ctx)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.idx = built
		r.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*index), nil
}

func (r *Resolver) build(ctx context.Context) (*index, error) {
	// Read the revision first so a write during the scan forces a rebuild.
	rev := r.ledger.Revision()
	pairs, err := r.ledger.NamePairs(ctx)
	if err != nil {
		return nil, err
	}

	idx := &index{
		revision: rev,
		byName:   make(map[string][]ledger.Code),
		bySig:    make(map[string][]ledger.Code),
	}
	for _, p := range pairs {
		idx.byName[p.Name] = append(idx.byName[p.Name], p.Code)
	}
	for sig, codes := range summarise(r.generator, pairs, r.overrides) {
		idx.bySig[sig] = sortedCodes(codes)
	}
	for name, codes := range idx.byName {
		slices.Sort(codes)
		idx.byName[name] = slices.Compact(codes)
	}

	r.log(ctx).Debug().
		Uint64("revision", rev).
		Int("names", len(idx.byName)).
		Int("signatures", len(idx.bySig)).
		Msg("Built resolver index")
	return idx, nil
}

// Summary groups every code in the ledger by the signatures of its names,
// after overrides.
func (r *Resolver) Summary(ctx context.Context) (map[string]map[ledger.Code]struct{}, error) {
	pairs, err := r.ledger.NamePairs(ctx)
	if err != nil {
		return nil, err
	}
	return summarise(r.generator, pairs, r.overrides), nil
}

// Summarise groups codes by the signature of their names. Every name
// creates its signature key. A suppressed name adds no code to it, and a
// forced name adds the forced code instead of its own.
func Summarise(pairs []ledger.NamePair, overrides Overrides) map[string]map[ledger.Code]struct{} {
	return summarise(signature.New(), pairs, overrides)
}

func summarise(g *signature.Generator, pairs []ledger.NamePair, overrides Overrides) map[string]map[ledger.Code]struct{} {
	out := make(map[string]map[ledger.Code]struct{})
	for _, p := range pairs {
		sig := g.Generate(p.Name)
		codes, ok := out[sig]
		if !ok {
			codes = make(map[ledger.Code]struct{})
			out[sig] = codes
		}
		if ov, ok := overrides.Lookup(p.Name); ok {
			for _, c := range ov.Codes() {
				codes[c] = struct{}{}
			}
			continue
		}
		codes[p.Code] = struct{}{}
	}
	return out
}

func sortedCodes(set map[ledger.Code]struct{}) []ledger.Code {
	out := make([]ledger.Code, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

func codeStrings(codes []ledger.Code) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}
