// Package memory provides an in-memory ledger.Store for tests, dry runs and
// the memory backend.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/sources"
)

type classificationKey struct {
	code   ledger.Code
	source sources.ID
	level  int
}

type translationKey struct {
	code   ledger.Code
	source sources.ID
}

// Store keeps ledger relations in maps guarded by a RWMutex. Aliases and
// edges are also kept in slices to preserve insertion order.
type Store struct {
	mu     sync.RWMutex
	closed bool

	aliases    []ledger.AliasRecord
	aliasIndex map[ledger.AliasRecord]struct{}

	classifications map[classificationKey]ledger.ClassificationRecord
	translations    map[translationKey]ledger.TranslationRecord

	edges     []ledger.Edge
	edgeIndex map[ledger.Edge]struct{}

	attributes map[ledger.Code]ledger.Attributes
}

var _ ledger.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		aliasIndex:      make(map[ledger.AliasRecord]struct{}),
		classifications: make(map[classificationKey]ledger.ClassificationRecord),
		translations:    make(map[translationKey]ledger.TranslationRecord),
		edgeIndex:       make(map[ledger.Edge]struct{}),
		attributes:      make(map[ledger.Code]ledger.Attributes),
	}
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.closed {
		return errors.ErrClosed
	}
	return nil
}

// UpsertAlias implements ledger.Store.
func (s *Store) UpsertAlias(ctx context.Context, r ledger.AliasRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return err
	}
	if _, ok := s.aliasIndex[r]; ok {
		return nil
	}
	s.aliasIndex[r] = struct{}{}
	s.aliases = append(s.aliases, r)
	return nil
}

// UpsertClassification implements ledger.Store.
func (s *Store) UpsertClassification(ctx context.Context, r ledger.ClassificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return err
	}
	s.classifications[classificationKey{r.Code, r.Source, r.Level}] = r
	return nil
}

// UpsertTranslation implements ledger.Store.
func (s *Store) UpsertTranslation(ctx context.Context, r ledger.TranslationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return err
	}
	s.translations[translationKey{r.Code, r.Source}] = r
	return nil
}

// UpsertEdge implements ledger.Store.
func (s *Store) UpsertEdge(ctx context.Context, e ledger.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return err
	}
	if _, ok := s.edgeIndex[e]; ok {
		return nil
	}
	s.edgeIndex[e] = struct{}{}
	s.edges = append(s.edges, e)
	return nil
}

// UpsertAttributes implements ledger.Store.
func (s *Store) UpsertAttributes(ctx context.Context, patch ledger.Attributes) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx); err != nil {
		return err
	}
	current, ok := s.attributes[patch.Code]
	if !ok {
		current = ledger.Attributes{Code: patch.Code}
	}
	current.Merge(patch.Clone())
	s.attributes[patch.Code] = current
	return nil
}

// Aliases implements ledger.Store.
func (s *Store) Aliases(ctx context.Context, f ledger.AliasFilter) ([]ledger.AliasRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	out := make([]ledger.AliasRecord, 0)
	for _, r := range s.aliases {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Classifications implements ledger.Store.
func (s *Store) Classifications(ctx context.Context, code ledger.Code) ([]ledger.ClassificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	out := make([]ledger.ClassificationRecord, 0)
	for _, r := range s.classifications {
		if code == "" || r.Code == code {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b ledger.ClassificationRecord) int {
		if c := strings.Compare(string(a.Code), string(b.Code)); c != 0 {
			return c
		}
		if c := strings.Compare(string(a.Source), string(b.Source)); c != 0 {
			return c
		}
		return a.Level - b.Level
	})
	return out, nil
}

// Translations implements ledger.Store.
func (s *Store) Translations(ctx context.Context, code ledger.Code) ([]ledger.TranslationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	out := make([]ledger.TranslationRecord, 0)
	for _, r := range s.translations {
		if code == "" || r.Code == code {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b ledger.TranslationRecord) int {
		if c := strings.Compare(string(a.Code), string(b.Code)); c != 0 {
			return c
		}
		return strings.Compare(string(a.Source), string(b.Source))
	})
	return out, nil
}

// Edges implements ledger.Store.
func (s *Store) Edges(ctx context.Context, f ledger.EdgeFilter) ([]ledger.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	out := make([]ledger.Edge, 0)
	for _, e := range s.edges {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// HasEdge implements ledger.Store.
func (s *Store) HasEdge(ctx context.Context, e ledger.Edge) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return false, err
	}
	_, ok := s.edgeIndex[e]
	return ok, nil
}

// Attributes implements ledger.Store.
func (s *Store) Attributes(ctx context.Context, code ledger.Code) (ledger.Attributes, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return ledger.Attributes{}, false, err
	}
	a, ok := s.attributes[code]
	if !ok {
		return ledger.Attributes{}, false, nil
	}
	return a.Clone(), true, nil
}

// AllAttributes implements ledger.Store.
func (s *Store) AllAttributes(ctx context.Context) ([]ledger.Attributes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	out := make([]ledger.Attributes, 0, len(s.attributes))
	for _, a := range s.attributes {
		out = append(out, a.Clone())
	}
	slices.SortFunc(out, func(a, b ledger.Attributes) int {
		return strings.Compare(string(a.Code), string(b.Code))
	})
	return out, nil
}

// Close marks the store closed. Later calls return errors.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
