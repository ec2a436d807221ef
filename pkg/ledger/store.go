package ledger

import (
	"context"

	"github.com/agentstation/langmap/pkg/sources"
)

// Store persists the five ledger relations. Each write is an upsert on the
// entity's unique key and is atomic for that one record. Implementations
// do not validate; Ledger does that before calling them.
type Store interface {
	// UpsertAlias inserts the alias; an identical alias is a no-op.
	UpsertAlias(ctx context.Context, r AliasRecord) error
	// UpsertClassification inserts or replaces the name at (code, source, level).
	UpsertClassification(ctx context.Context, r ClassificationRecord) error
	// UpsertTranslation inserts or replaces the record at (code, source).
	UpsertTranslation(ctx context.Context, r TranslationRecord) error
	// UpsertEdge inserts the edge; an identical edge is a no-op.
	UpsertEdge(ctx context.Context, e Edge) error
	// UpsertAttributes writes only the fields set in the patch.
	UpsertAttributes(ctx context.Context, patch Attributes) error

	// Aliases returns aliases matching the filter in insertion order.
	Aliases(ctx context.Context, f AliasFilter) ([]AliasRecord, error)
	// Classifications returns a code's classifications ordered by source
	// then level. An empty code returns all.
	Classifications(ctx context.Context, code Code) ([]ClassificationRecord, error)
	// Translations returns a code's records. An empty code returns all.
	Translations(ctx context.Context, code Code) ([]TranslationRecord, error)
	// Edges returns edges matching the filter in insertion order.
	Edges(ctx context.Context, f EdgeFilter) ([]Edge, error)
	// HasEdge reports whether exactly this edge is stored.
	HasEdge(ctx context.Context, e Edge) (bool, error)
	// Attributes returns the attributes of a code.
	Attributes(ctx context.Context, code Code) (Attributes, bool, error)
	// AllAttributes returns every attribute row.
	AllAttributes(ctx context.Context) ([]Attributes, error)

	// Close releases the backend.
	Close() error
}

// AliasFilter selects aliases. Zero fields match anything.
type AliasFilter struct {
	Code   Code
	Kind   AliasKind
	Source sources.ID
	Name   string
}

// Match reports whether r passes the filter.
func (f AliasFilter) Match(r AliasRecord) bool {
	return (f.Code == "" || f.Code == r.Code) &&
		(f.Kind == "" || f.Kind == r.Kind) &&
		(f.Source == "" || f.Source == r.Source) &&
		(f.Name == "" || f.Name == r.Name)
}

// EdgeFilter selects edges. Zero fields match anything.
type EdgeFilter struct {
	Subject Code
	Verb    Verb
	Source  sources.ID
}

// Match reports whether e passes the filter.
func (f EdgeFilter) Match(e Edge) bool {
	return (f.Subject == "" || f.Subject == e.Subject) &&
		(f.Verb == "" || f.Verb == e.Verb) &&
		(f.Source == "" || f.Source == e.Source)
}
