package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/internal/store/memory"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/logging"
	"github.com/agentstation/langmap/pkg/signature"
	"github.com/agentstation/langmap/pkg/sources"
)

func TestBuildSignatures(t *testing.T) {
	g := signature.New()
	pairs := []ledger.NamePair{
		{Code: "aaa", Name: "Mudbura"},
		{Code: "aaa", Name: "Mudburra"},
		{Code: "bbb", Name: "Madbara"},
		{Code: "bbb", Name: "Yowera"},
		{Code: "ccc", Name: "Alywarr"},
	}
	mudburra := g.Generate("Mudburra")
	require.Equal(t, mudburra, g.Generate("Mudbura"))
	require.Equal(t, mudburra, g.Generate("Madbara"))

	r := BuildSignatures(pairs, nil)

	require.Len(t, r.Groups, 3)
	var group SignatureGroup
	for _, gr := range r.Groups {
		if gr.Signature == mudburra {
			group = gr
		}
	}
	assert.Equal(t, []CodeNames{
		{Code: "aaa", Names: []string{"Mudbura", "Mudburra"}},
		{Code: "bbb", Names: []string{"Madbara"}},
	}, group.Codes)

	require.Len(t, r.Codes, 3)
	assert.Equal(t, ledger.Code("aaa"), r.Codes[0].Code)
	assert.Len(t, r.Codes[0].Signatures, 1)
	assert.Len(t, r.Codes[1].Signatures, 2)
	assert.Len(t, r.Codes[2].Signatures, 1)

	assert.Equal(t, Histogram{{Size: 1, Count: 2}, {Size: 2, Count: 1}}, r.SignaturesPerCode)
	assert.Equal(t, Histogram{{Size: 1, Count: 2}, {Size: 2, Count: 1}}, r.CodesPerSignature)
	assert.Equal(t, "1:2 2:1", r.SignaturesPerCode.String())

	collisions := r.Collisions()
	require.Len(t, collisions, 1)
	assert.Equal(t, mudburra, collisions[0].Signature)
}

func TestBuildSignaturesEmpty(t *testing.T) {
	r := BuildSignatures(nil, signature.New())
	assert.Empty(t, r.Groups)
	assert.Empty(t, r.Codes)
	assert.Empty(t, r.SignaturesPerCode)
	assert.Empty(t, r.Collisions())
}

func newLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	ctx := context.Background()
	l := ledger.New(memory.New())
	t.Cleanup(func() { _ = l.Close() })

	require.NoError(t, l.PutPrimaryName(ctx, "aer", "Arrernte", sources.Ethnologue))
	require.NoError(t, l.PutAlternateName(ctx, "aer", "Aranda", sources.Ethnologue))
	require.NoError(t, l.PutPrimaryName(ctx, "are", "Arrernte", sources.ABS))
	require.NoError(t, l.PutAlternateName(ctx, "are", "Aranda", sources.JoshuaProject))
	require.NoError(t, l.PutPrimaryName(ctx, "aly", "Alyawarr", sources.Ethnologue))
	return l
}

func TestLoadSignatures(t *testing.T) {
	l := newLedger(t)
	r, err := LoadSignatures(context.Background(), l, nil)
	require.NoError(t, err)
	require.Len(t, r.Codes, 3)

	tl := logging.NewTestLogger(t)
	r.Log(tl.Logger)
	assert.Equal(t, len(r.Groups)+len(r.Codes)+2, tl.Count())
	tl.AssertContains(t, "Codes per signature")
}

func TestSharedNames(t *testing.T) {
	l := newLedger(t)
	got, err := SharedNames(context.Background(), l)
	require.NoError(t, err)
	assert.Equal(t, []SharedName{
		{Codes: []ledger.Code{"aer", "are"}, Names: []string{"Aranda", "Arrernte"}},
	}, got)
}
