package loader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/internal/store/memory"
	"github.com/agentstation/langmap/pkg/constants"
	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/sources"
)

func TestReadCensus(t *testing.T) {
	input := strings.Join([]string{
		"language,count,english_pessimistic,english_optimistic",
		"Alyawarr,1500,40.5,61",
		"Warlpiri,2000",
		"\"Arrernte, nfd\",900,,",
		"Gudanji,lots",
		"Broken,1,2",
	}, "\n") + "\n"

	rows, bad, err := readCensus(strings.NewReader(input), "census.csv")
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, CensusRow{Language: "Alyawarr", Count: 1500, Competency: &ledger.Competency{Pessimistic: 40.5, Optimistic: 61}}, rows[0])
	assert.Equal(t, CensusRow{Language: "Warlpiri", Count: 2000}, rows[1])
	assert.Equal(t, CensusRow{Language: "Arrernte, nfd", Count: 900}, rows[2])

	require.Len(t, bad, 2)
	var pe *errors.ParseError
	require.ErrorAs(t, bad[0], &pe)
	assert.Equal(t, 5, pe.Line)
	assert.ErrorIs(t, bad[1], errors.ErrMalformedRecord)
}

// censusLedger holds the names the attribution tests look up.
func censusLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	ctx := context.Background()
	l := ledger.New(memory.New())
	t.Cleanup(func() { _ = l.Close() })

	names := []struct {
		code ledger.Code
		name string
	}{
		{"aly", "Alyawarr"},
		{"aer", "Arrernte"},
		{"are", "Arrernte"},
		{"rop", "Kriol"},
		{"rop", "Roper River Kriol"},
		{"xrd", "Gudanji"},
		{"tcs", "Yumplatok, Torres Strait Creole"},
		{"amx", "Anmatyerr"},
		{"amx", "Central Anmatyerr"},
	}
	for _, n := range names {
		require.NoError(t, l.PutPrimaryName(ctx, n.code, n.name, sources.ABS))
	}
	return l
}

func TestAttributeCensus(t *testing.T) {
	ctx := context.Background()
	l := censusLedger(t)

	rows := []CensusRow{
		{Language: "Alyawarr", Count: 1500, Competency: &ledger.Competency{Pessimistic: 40, Optimistic: 60}},
		{Language: "Arrernte, nfd", Count: 900},
		{Language: "Kriol", Count: 4000, Competency: &ledger.Competency{Pessimistic: 70, Optimistic: 80}},
		{Language: "Roper River Kriol", Count: 50},
		{Language: "Gudanji", Count: 15},
		{Language: "Yumplatok, Torres Strait Creole", Count: 5000},
		{Language: "Anmatyerr", Count: 1000},
		{Language: "Central Anmatyerr", Count: 300},
		{Language: "Yolngu Matha, nfd", Count: 800},
	}

	a, err := AttributeCensus(ctx, rows, l)
	require.NoError(t, err)

	tests := []struct {
		code ledger.Code
		want int
	}{
		{"aly", 1500},
		{"aer", constants.SpeakerCountAmbiguous},
		{"are", constants.SpeakerCountAmbiguous},
		{"rop", 4050},
		{"xrd", constants.SpeakerCountUnknown},
		{"tcs", 5000},
		{"amx", 1000},
		{"zzz", constants.SpeakerCountUnknown},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, a.SpeakerCount(tt.code))
		})
	}

	assert.Equal(t, []string{"Kriol", "Roper River Kriol"}, a.Languages("rop"))
	assert.Equal(t, []string{"Anmatyerr"}, a.Languages("amx"))
}

func TestEnglishCompetency(t *testing.T) {
	ctx := context.Background()
	l := censusLedger(t)

	rows := []CensusRow{
		{Language: "Alyawarr", Count: 1500, Competency: &ledger.Competency{Pessimistic: 40, Optimistic: 60}},
		{Language: "Arrernte", Count: 900, Competency: &ledger.Competency{Pessimistic: 10, Optimistic: 20}},
		{Language: "Kriol", Count: 4000, Competency: &ledger.Competency{Pessimistic: 70, Optimistic: 80}},
		{Language: "Roper River Kriol", Count: 50},
		{Language: "Anmatyerr", Count: 1000},
	}
	a, err := AttributeCensus(ctx, rows, l)
	require.NoError(t, err)

	got, ok := a.EnglishCompetency("aly")
	require.True(t, ok)
	assert.Equal(t, ledger.Competency{Pessimistic: 40, Optimistic: 60}, got)

	// Shared with another code.
	_, ok = a.EnglishCompetency("aer")
	assert.False(t, ok)
	// More than one census language.
	_, ok = a.EnglishCompetency("rop")
	assert.False(t, ok)
	// No competency columns.
	_, ok = a.EnglishCompetency("amx")
	assert.False(t, ok)
	_, ok = a.EnglishCompetency("zzz")
	assert.False(t, ok)
}
