package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/sources"
)

func TestParseRetirement(t *testing.T) {
	edge := func(subject ledger.Code, verb ledger.Verb, object ledger.Code) ledger.Edge {
		return ledger.Edge{Subject: subject, Verb: verb, Object: object, Source: sources.SILRetired}
	}

	tests := []struct {
		name   string
		fields []string
		want   []ledger.Edge
	}{
		{
			name:   "split names every bracketed code",
			fields: []string{"gbc", "Garawa", "S", "", "Split into Garrwa [wrk] and Wanyi [wny]", "2012-02-03"},
			want:   []ledger.Edge{edge("gbc", ledger.RetiredSplitInto, "wrk"), edge("gbc", ledger.RetiredSplitInto, "wny")},
		},
		{
			name:   "merge",
			fields: []string{"pun", "Pubian", "M", "ljp", "", "2008-01-14"},
			want:   []ledger.Edge{edge("pun", ledger.RetiredMergedInto, "ljp")},
		},
		{
			name:   "change",
			fields: []string{"fri", "Western Frisian", "C", "fry", "", "2007-07-18"},
			want:   []ledger.Edge{edge("fri", ledger.RetiredChange, "fry")},
		},
		{
			name:   "duplicate",
			fields: []string{"bgh", "Bogan", "D", "bgh", "", "2008-01-14"},
			want:   []ledger.Edge{edge("bgh", ledger.RetiredDuplicate, "bgh")},
		},
		{
			name:   "non-existent has no object",
			fields: []string{"aay", "Aariya", "N", "", "", "2008-01-14"},
			want:   []ledger.Edge{edge("aay", ledger.RetiredNonExistent, "")},
		},
		{
			name:   "split without codes",
			fields: []string{"xyz", "Nobody", "S", "", "Split into two", "2010-01-01"},
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRetirement(tt.fields)
			require.NoError(t, err)
			assert.Equal(t, ledger.Code(tt.fields[0]), got.Code)
			assert.Equal(t, tt.fields[2], got.Reason)
			assert.Equal(t, tt.want, got.Edges)
		})
	}
}

func TestParseRetirementMalformed(t *testing.T) {
	got, err := ParseRetirement([]string{"abc", "Whatever", "X", "def", "", "2010-01-01"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedRecord)
	assert.Equal(t, ledger.Code("abc"), got.Code)
	assert.Empty(t, got.Edges)

	_, err = ParseRetirement([]string{"abc", "Whatever", "C"})
	assert.ErrorIs(t, err, errors.ErrMalformedRecord)
}

func TestReadRetirements(t *testing.T) {
	input := strings.Join([]string{
		"Id\tRef_Name\tRet_Reason\tChange_To\tRet_Remedy\tEffective",
		"gbc\tGarawa\tS\t\tSplit into Garrwa [wrk] and Wanyi [wny]\t2012-02-03",
		"abc\tWhatever\tX\t\t\t2010-01-01",
		"aay\tAariya\tN\t\t\t2008-01-14",
		"short\trow",
	}, "\n") + "\n"

	rets, bad, err := readRetirements(strings.NewReader(input), "retired.tsv")
	require.NoError(t, err)

	require.Len(t, rets, 2)
	assert.Equal(t, ledger.Code("gbc"), rets[0].Code)
	assert.Len(t, rets[0].Edges, 2)
	assert.Equal(t, ledger.Code("aay"), rets[1].Code)

	require.Len(t, bad, 2)
	var pe *errors.ParseError
	require.ErrorAs(t, bad[0], &pe)
	assert.Equal(t, "retired.tsv", pe.File)
	assert.Equal(t, 3, pe.Line)
	assert.ErrorIs(t, bad[0], errors.ErrMalformedRecord)
	require.ErrorAs(t, bad[1], &pe)
	assert.Equal(t, 5, pe.Line)
}

func TestReadRetirementsQuotedRemedy(t *testing.T) {
	input := strings.Join([]string{
		"Id\tRef_Name\tRet_Reason\tChange_To\tRet_Remedy\tEffective",
		"xyz\tXyz\tS\t\t\"Xyz\" split into [aaa] and [bbb]\t2014-01-01",
		"fri\tFriulian\tC\tfry\t\t2009-01-16",
		"gbc\tGarawa\tS\t\tSplit into [wrk]\t2012-02-03",
	}, "\r\n") + "\r\n"

	rets, bad, err := readRetirements(strings.NewReader(input), "retired.tsv")
	require.NoError(t, err)
	assert.Empty(t, bad)

	require.Len(t, rets, 3)
	assert.Equal(t, ledger.Code("xyz"), rets[0].Code)
	require.Len(t, rets[0].Edges, 2)
	assert.Equal(t, ledger.Code("aaa"), rets[0].Edges[0].Object)
	assert.Equal(t, ledger.Code("bbb"), rets[0].Edges[1].Object)
	assert.Equal(t, ledger.Code("fri"), rets[1].Code)
	require.Len(t, rets[1].Edges, 1)
	assert.Equal(t, ledger.Code("fry"), rets[1].Edges[0].Object)
	assert.Equal(t, ledger.Code("gbc"), rets[2].Code)
}

func TestReadRetirementsEmpty(t *testing.T) {
	rets, bad, err := readRetirements(strings.NewReader(""), "empty.tsv")
	require.NoError(t, err)
	assert.Empty(t, rets)
	assert.Empty(t, bad)
}

func TestReadRetirementsMissingFile(t *testing.T) {
	_, _, err := ReadRetirements("testdata/does-not-exist.tsv")
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
