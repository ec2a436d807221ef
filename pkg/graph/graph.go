// Package graph stores source-tagged relationships between language codes
// and derives the implied reverse of each reversible relationship.
//
// Edges live in the ledger so that the views see them and their writes
// advance the ledger revision. A source reporting "gbc was split into wrk"
// (gbc S wrk, SI) lets ReverseInfer add "wrk split from gbc" under the
// implied source SII.
package graph

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/logging"
	"github.com/agentstation/langmap/pkg/sources"
)

// Verb is a relationship verb.
type Verb = ledger.Verb

// Relation is one (verb, object) pair reported by an adapter for a subject.
type Relation struct {
	Verb   Verb        `json:"verb" yaml:"verb"`
	Object ledger.Code `json:"object,omitempty" yaml:"object,omitempty"`
}

// Relationship is an outgoing edge of a code as seen by a reader.
type Relationship struct {
	Source sources.ID  `json:"source" yaml:"source"`
	Verb   Verb        `json:"verb" yaml:"verb"`
	Object ledger.Code `json:"object,omitempty" yaml:"object,omitempty"`
}

// Label renders the relationship for display, e.g. "is similar to wrk".
func (r Relationship) Label() string {
	if r.Object == "" {
		return r.Verb.Label()
	}
	return r.Verb.Label() + " " + string(r.Object)
}

// Graph is the relationship store.
type Graph struct {
	ledger *ledger.Ledger
	logger *zerolog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used by ReverseInfer. When unset the logger
// is taken from the context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Graph) {
		g.logger = logger
	}
}

// New creates a Graph over l.
func New(l *ledger.Ledger, opts ...Option) *Graph {
	g := &Graph{ledger: l}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Graph) log(ctx context.Context) *zerolog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return logging.FromContext(ctx)
}

// AddEdge records subject --verb--> object as reported by source. Adding
// the same edge twice stores it once.
func (g *Graph) AddEdge(ctx context.Context, subject ledger.Code, verb Verb, object ledger.Code, source sources.ID) error {
	return g.ledger.PutEdge(ctx, ledger.Edge{Subject: subject, Verb: verb, Object: object, Source: source})
}

// AddEdges records every relation of subject. Malformed relations are
// skipped and returned joined; the rest are still written.
func (g *Graph) AddEdges(ctx context.Context, subject ledger.Code, rels []Relation, source sources.ID) error {
	var errs []error
	for _, r := range rels {
		if err := g.AddEdge(ctx, subject, r.Verb, r.Object, source); err != nil {
			if !errors.IsMalformedRecord(err) {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Relationships returns the outgoing edges of code sorted by source, verb
// and object.
func (g *Graph) Relationships(ctx context.Context, code ledger.Code) ([]Relationship, error) {
	edges, err := g.ledger.Edges(ctx, ledger.EdgeFilter{Subject: code})
	if err != nil {
		return nil, err
	}
	out := make([]Relationship, 0, len(edges))
	for _, e := range edges {
		out = append(out, Relationship{Source: e.Source, Verb: e.Verb, Object: e.Object})
	}
	SortRelationships(out)
	return out, nil
}

// SortRelationships orders relationships by source, verb and object.
func SortRelationships(rs []Relationship) {
	slices.SortFunc(rs, func(a, b Relationship) int {
		if c := strings.Compare(string(a.Source), string(b.Source)); c != 0 {
			return c
		}
		if c := strings.Compare(string(a.Verb), string(b.Verb)); c != 0 {
			return c
		}
		return strings.Compare(string(a.Object), string(b.Object))
	})
}

// Subjects returns the codes that are the subject of an edge with verb,
// sorted. An empty verb matches every edge.
func (g *Graph) Subjects(ctx context.Context, verb Verb) ([]ledger.Code, error) {
	edges, err := g.ledger.Edges(ctx, ledger.EdgeFilter{Verb: verb})
	if err != nil {
		return nil, err
	}
	codes := make([]ledger.Code, 0, len(edges))
	for _, e := range edges {
		codes = append(codes, e.Subject)
	}
	slices.Sort(codes)
	return slices.Compact(codes), nil
}
