package graph

import (
	"context"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
)

var inverses = map[Verb]Verb{
	ledger.RetiredSplitInto:    ledger.SplitFrom,
	ledger.SplitFrom:           ledger.RetiredSplitInto,
	ledger.RetiredMergedInto:   ledger.MergedFrom,
	ledger.MergedFrom:          ledger.RetiredMergedInto,
	ledger.SimilarTo:           ledger.SimilarTo,
	ledger.RelatedTo:           ledger.RelatedTo,
	ledger.DifferentFrom:       ledger.DifferentFrom,
	ledger.MayBeIntelligible:   ledger.MayBeIntelligible,
	ledger.LimitedIntelligible: ledger.LimitedIntelligible,
}

// Inverse returns the verb that reads v in the opposite direction. Verbs
// without one (C, D, N) return an *errors.UnreversibleError.
func Inverse(v Verb) (Verb, error) {
	if inv, ok := inverses[v]; ok {
		return inv, nil
	}
	return "", errors.NewUnreversibleError(string(v))
}

// Inference counts the outcome of a ReverseInfer run.
type Inference struct {
	// Considered is the number of edges from primary sources examined.
	Considered int `json:"considered" yaml:"considered"`
	// Added is the number of implied edges written.
	Added int `json:"added" yaml:"added"`
	// Skipped counts edges whose reverse was already present.
	Skipped int `json:"skipped" yaml:"skipped"`
	// Unreversible counts edges whose verb has no inverse.
	Unreversible int `json:"unreversible" yaml:"unreversible"`
}

// ReverseInfer adds, for every edge (S, V, O, src) from a primary source,
// the implied edge (O, inverse(V), S, src+"I"), unless the source already
// states the reverse itself. Running it again adds nothing new.
func (g *Graph) ReverseInfer(ctx context.Context) (Inference, error) {
	var result Inference
	logger := g.log(ctx)

	edges, err := g.ledger.AllEdges(ctx)
	if err != nil {
		return result, err
	}

	for _, e := range edges {
		if !e.Source.IsPrimary() {
			continue
		}
		result.Considered++

		inv, err := Inverse(e.Verb)
		if err != nil {
			result.Unreversible++
			logger.Warn().
				Str("subject", string(e.Subject)).
				Str("verb", string(e.Verb)).
				Str("source", string(e.Source)).
				Msg("Cannot reverse relationship")
			continue
		}

		stated := ledger.Edge{Subject: e.Object, Verb: inv, Object: e.Subject, Source: e.Source}
		implied := ledger.Edge{Subject: e.Object, Verb: inv, Object: e.Subject, Source: e.Source.Implied()}

		exists, err := g.anyExists(ctx, stated, implied)
		if err != nil {
			return result, err
		}
		if exists {
			result.Skipped++
			continue
		}

		if err := g.ledger.PutEdge(ctx, implied); err != nil {
			return result, err
		}
		result.Added++
		logger.Debug().
			Str("subject", string(implied.Subject)).
			Str("verb", string(implied.Verb)).
			Str("object", string(implied.Object)).
			Str("source", string(implied.Source)).
			Msg("Inferred relationship")
	}

	logger.Info().
		Int("considered", result.Considered).
		Int("added", result.Added).
		Int("skipped", result.Skipped).
		Int("unreversible", result.Unreversible).
		Msg("Reverse inference complete")
	return result, nil
}

func (g *Graph) anyExists(ctx context.Context, edges ...ledger.Edge) (bool, error) {
	for _, e := range edges {
		ok, err := g.ledger.HasEdge(ctx, e)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}
