package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/internal/store/memory"
	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/logging"
	"github.com/agentstation/langmap/pkg/sources"
)

func newGraph(t *testing.T) (*graph.Graph, *ledger.Ledger, *logging.TestLogger) {
	t.Helper()
	l := ledger.New(memory.New())
	t.Cleanup(func() { _ = l.Close() })
	logger := logging.NewTestLogger(t)
	return graph.New(l, graph.WithLogger(logger.Logger)), l, logger
}

func TestReverseInferSplit(t *testing.T) {
	ctx := context.Background()
	g, l, _ := newGraph(t)

	require.NoError(t, g.AddEdge(ctx, "gbc", ledger.RetiredSplitInto, "wrk", sources.SILRetired))

	first, err := g.ReverseInfer(ctx)
	require.NoError(t, err)
	assert.Equal(t, graph.Inference{Considered: 1, Added: 1}, first)

	all, err := l.AllEdges(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Edge{
		{Subject: "gbc", Verb: ledger.RetiredSplitInto, Object: "wrk", Source: sources.SILRetired},
		{Subject: "wrk", Verb: ledger.SplitFrom, Object: "gbc", Source: sources.SILRetiredImplied},
	}, all)

	second, err := g.ReverseInfer(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.Added)
	assert.Equal(t, 1, second.Skipped)

	all, err = l.AllEdges(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReverseInferRespectsStatedReverse(t *testing.T) {
	ctx := context.Background()
	g, l, _ := newGraph(t)

	require.NoError(t, g.AddEdge(ctx, "aaa", ledger.SimilarTo, "bbb", sources.Ethnologue))
	require.NoError(t, g.AddEdge(ctx, "bbb", ledger.SimilarTo, "aaa", sources.Ethnologue))

	got, err := g.ReverseInfer(ctx)
	require.NoError(t, err)
	assert.Equal(t, graph.Inference{Considered: 2, Skipped: 2}, got)

	implied, err := l.Edges(ctx, ledger.EdgeFilter{Source: sources.EthnologueImplied})
	require.NoError(t, err)
	assert.Empty(t, implied)
}

func TestReverseInferSimilarity(t *testing.T) {
	ctx := context.Background()
	g, l, _ := newGraph(t)

	require.NoError(t, g.AddEdge(ctx, "aly", ledger.MayBeIntelligible, "are", sources.Ethnologue))

	got, err := g.ReverseInfer(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Added)

	ok, err := l.HasEdge(ctx, ledger.Edge{Subject: "are", Verb: ledger.MayBeIntelligible, Object: "aly", Source: sources.EthnologueImplied})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReverseInferSkipsUnreversible(t *testing.T) {
	ctx := context.Background()
	g, l, logger := newGraph(t)

	require.NoError(t, g.AddEdge(ctx, "fri", ledger.RetiredChange, "fry", sources.SILRetired))
	require.NoError(t, g.AddEdge(ctx, "bgh", ledger.RetiredDuplicate, "bbh", sources.SILRetired))
	require.NoError(t, g.AddEdge(ctx, "aay", ledger.RetiredNonExistent, "", sources.SILRetired))

	got, err := g.ReverseInfer(ctx)
	require.NoError(t, err)
	assert.Equal(t, graph.Inference{Considered: 3, Unreversible: 3}, got)
	assert.Equal(t, 3, logger.CountContaining("Cannot reverse relationship"))

	all, err := l.AllEdges(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReverseInferIgnoresImpliedSources(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newGraph(t)

	require.NoError(t, g.AddEdge(ctx, "wrk", ledger.SplitFrom, "gbc", sources.SILRetiredImplied))

	got, err := g.ReverseInfer(ctx)
	require.NoError(t, err)
	assert.Equal(t, graph.Inference{}, got)
}

func TestInverse(t *testing.T) {
	tests := []struct {
		verb ledger.Verb
		want ledger.Verb
	}{
		{ledger.RetiredSplitInto, ledger.SplitFrom},
		{ledger.SplitFrom, ledger.RetiredSplitInto},
		{ledger.RetiredMergedInto, ledger.MergedFrom},
		{ledger.MergedFrom, ledger.RetiredMergedInto},
		{ledger.SimilarTo, ledger.SimilarTo},
		{ledger.RelatedTo, ledger.RelatedTo},
		{ledger.DifferentFrom, ledger.DifferentFrom},
		{ledger.MayBeIntelligible, ledger.MayBeIntelligible},
		{ledger.LimitedIntelligible, ledger.LimitedIntelligible},
	}
	for _, tt := range tests {
		t.Run(string(tt.verb), func(t *testing.T) {
			got, err := graph.Inverse(tt.verb)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, v := range []ledger.Verb{ledger.RetiredChange, ledger.RetiredDuplicate, ledger.RetiredNonExistent} {
		_, err := graph.Inverse(v)
		assert.ErrorIs(t, err, errors.ErrUnreversible, string(v))
	}
}

func TestRelationshipsSorted(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newGraph(t)

	require.NoError(t, g.AddEdges(ctx, "aly", []graph.Relation{
		{Verb: ledger.SimilarTo, Object: "are"},
		{Verb: ledger.DifferentFrom, Object: "axl"},
	}, sources.Ethnologue))
	require.NoError(t, g.AddEdge(ctx, "aly", ledger.RelatedTo, "adg", sources.AustLang))

	got, err := g.Relationships(ctx, "aly")
	require.NoError(t, err)
	assert.Equal(t, []graph.Relationship{
		{Source: sources.AustLang, Verb: ledger.RelatedTo, Object: "adg"},
		{Source: sources.Ethnologue, Verb: ledger.DifferentFrom, Object: "axl"},
		{Source: sources.Ethnologue, Verb: ledger.SimilarTo, Object: "are"},
	}, got)
	assert.Equal(t, "is similar to are", got[2].Label())
}

func TestAddEdgesKeepsValidRelations(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newGraph(t)

	err := g.AddEdges(ctx, "aly", []graph.Relation{
		{Verb: ledger.SimilarTo, Object: "are"},
		{Verb: ledger.SimilarTo, Object: "ARE"},
		{Verb: "ZZ", Object: "axl"},
	}, sources.Ethnologue)
	require.Error(t, err)
	assert.True(t, errors.IsMalformedRecord(err))

	got, err := g.Relationships(ctx, "aly")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSubjects(t *testing.T) {
	ctx := context.Background()
	g, _, _ := newGraph(t)

	require.NoError(t, g.AddEdge(ctx, "gbc", ledger.RetiredSplitInto, "wrk", sources.SILRetired))
	require.NoError(t, g.AddEdge(ctx, "gbc", ledger.RetiredSplitInto, "wny", sources.SILRetired))
	require.NoError(t, g.AddEdge(ctx, "pun", ledger.RetiredMergedInto, "ljp", sources.SILRetired))

	got, err := g.Subjects(ctx, ledger.RetiredSplitInto)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Code{"gbc"}, got)

	got, err = g.Subjects(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []ledger.Code{"gbc", "pun"}, got)
}
