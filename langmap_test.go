package langmap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/logging"
	"github.com/agentstation/langmap/pkg/resolver"
	"github.com/agentstation/langmap/pkg/sources"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"manifest.yaml": "languages: [ethnologue.yaml]\nretirements: retired.tsv\n",
		"ethnologue.yaml": `source: EL
languages:
  - code: mwp
    primary: Mudburra
    alternates: [Mudbura]
    translation: {status: 3, year: 1985}
    speakers: 50
  - code: aer
    primary: Arrernte
  - code: are
    primary: Arrernte
`,
		"retired.tsv": "Id\tRef_Name\tRet_Reason\tChange_To\tRet_Remedy\tEffective\n" +
			"gbc\tGarawa\tS\t\tSplit into Garrwa [wrk] and Wanyi [wny]\t2012-02-03\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return filepath.Join(dir, "manifest.yaml")
}

func newLangmap(t *testing.T, opts ...Option) Langmap {
	t.Helper()
	opts = append([]Option{WithLogger(logging.NewNopLogger())}, opts...)
	lm, err := New(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lm.Close() })
	return lm
}

func TestLoadAndQuery(t *testing.T) {
	ctx := context.Background()
	lm := newLangmap(t)

	var loaded *LoadStats
	lm.OnLoaded(func(stats *LoadStats) { loaded = stats })

	stats, err := lm.Load(ctx, writeFixture(t))
	require.NoError(t, err)
	assert.Same(t, stats, loaded)
	assert.Equal(t, 2, stats.Inference.Added)

	codes, err := lm.Resolve(ctx, "Mudburra")
	require.NoError(t, err)
	assert.Equal(t, []ledger.Code{"mwp"}, codes)

	res, err := lm.ResolveDetailed(ctx, "Moodburra")
	require.NoError(t, err)
	assert.Equal(t, resolver.OutcomeUnique, res.Outcome)
	assert.Empty(t, res.Exact)

	res, err = lm.ResolveDetailed(ctx, "Arrernte")
	require.NoError(t, err)
	assert.Equal(t, resolver.OutcomeAmbiguous, res.Outcome)
	assert.Equal(t, []ledger.Code{"aer", "are"}, res.Codes)

	rows, err := lm.Table(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	shared, err := lm.SharedNames(ctx)
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, []string{"Arrernte"}, shared[0].Names)

	sigs, err := lm.SignatureReport(ctx)
	require.NoError(t, err)
	assert.Len(t, sigs.Collisions(), 1)
}

func TestShow(t *testing.T) {
	ctx := context.Background()
	lm := newLangmap(t)
	_, err := lm.Load(ctx, writeFixture(t))
	require.NoError(t, err)

	p, err := lm.Show(ctx, "mwp")
	require.NoError(t, err)
	assert.Equal(t, "Mudburra", p.DisplayName)
	assert.Equal(t, map[sources.ID][]string{sources.Ethnologue: {"Mudbura"}}, p.AlternateNames)
	assert.Equal(t, ledger.Portions, p.BestTranslation)
	assert.Equal(t, 50, p.Attributes.Speakers[sources.Ethnologue])
	assert.True(t, p.HasSpeakers)
	assert.False(t, p.Retired)

	p, err = lm.Show(ctx, "gbc")
	require.NoError(t, err)
	assert.True(t, p.Retired)
	assert.Len(t, p.Relationships, 2)

	p, err = lm.Show(ctx, "wrk")
	require.NoError(t, err)
	assert.Equal(t, []graph.Relationship{{Source: sources.SILRetiredImplied, Verb: ledger.SplitFrom, Object: "gbc"}}, p.Relationships)

	_, err = lm.Show(ctx, "zzz")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = lm.Show(ctx, "ZZ")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestInferHook(t *testing.T) {
	ctx := context.Background()
	lm := newLangmap(t)
	require.NoError(t, lm.Ledger().PutEdge(ctx, ledger.Edge{Subject: "aly", Verb: ledger.SimilarTo, Object: "are", Source: sources.Ethnologue}))

	var got []graph.Inference
	lm.OnInferred(func(r graph.Inference) { got = append(got, r) })

	result, err := lm.Infer(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	require.Len(t, got, 1)
	assert.Equal(t, result, got[0])
}

func TestDatabasePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "langmap.db")
	manifest := writeFixture(t)

	lm, err := New(ctx, WithDatabase(path), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	_, err = lm.Load(ctx, manifest)
	require.NoError(t, err)
	require.NoError(t, lm.Close())

	lm = newLangmap(t, WithDatabase(path))
	codes, err := lm.Resolve(ctx, "Mudbura")
	require.NoError(t, err)
	assert.Equal(t, []ledger.Code{"mwp"}, codes)
}

func TestOptions(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, WithDatabase(""))
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = New(ctx, WithOverridesFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)

	overrides := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(overrides, []byte("overrides:\n  - name: Mudburra\n    code: aer\n"), 0o644))
	lm := newLangmap(t, WithOverridesFile(overrides))
	_, err = lm.Load(ctx, writeFixture(t))
	require.NoError(t, err)

	codes, err := lm.Resolve(ctx, "Mudburra")
	require.NoError(t, err)
	assert.Equal(t, []ledger.Code{"aer"}, codes)

	lm = newLangmap(t, WithOverrides(resolver.Overrides{"Arrernte": resolver.Suppress()}))
	_, err = lm.Load(ctx, writeFixture(t))
	require.NoError(t, err)
	codes, err = lm.Resolve(ctx, "Arrernte")
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestStoresAgree(t *testing.T) {
	ctx := context.Background()
	manifest := writeFixture(t)

	memory := newLangmap(t)
	sqlite := newLangmap(t, WithDatabase(filepath.Join(t.TempDir(), "langmap.db")))
	for _, lm := range []Langmap{memory, sqlite} {
		_, err := lm.Load(ctx, manifest)
		require.NoError(t, err)
	}

	want, err := memory.Table(ctx)
	require.NoError(t, err)
	got, err := sqlite.Table(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, name := range []string{"Mudburra", "Moodburra", "Arrernte", "Garawa", "Nowhere"} {
		want, err := memory.ResolveDetailed(ctx, name)
		require.NoError(t, err)
		got, err := sqlite.ResolveDetailed(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}
