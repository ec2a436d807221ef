package table

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/langmap"
	"github.com/agentstation/langmap/internal/report"
	"github.com/agentstation/langmap/pkg/constants"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/resolver"
	"github.com/agentstation/langmap/pkg/sources"
	"github.com/agentstation/langmap/pkg/views"
)

func TestFormatSpeakers(t *testing.T) {
	assert.Equal(t, "none expected", FormatSpeakers(constants.SpeakerCountNoneExpected))
	assert.Equal(t, "unknown", FormatSpeakers(constants.SpeakerCountUnknown))
	assert.Equal(t, "ambiguous", FormatSpeakers(constants.SpeakerCountAmbiguous))
	assert.Equal(t, "0", FormatSpeakers(0))
	assert.Equal(t, "1500", FormatSpeakers(1500))
}

func TestFormatCodes(t *testing.T) {
	assert.Equal(t, "-", FormatCodes(nil))
	assert.Equal(t, "aer, are", FormatCodes([]ledger.Code{"aer", "are"}))
}

func TestRowsToTableData(t *testing.T) {
	rows := []views.Row{{
		Code:        "gbc",
		Name:        "Garawa",
		Speakers:    constants.SpeakerCountUnknown,
		Band:        views.BandUnknown,
		Translation: ledger.NoRecord,
		Retired:     true,
		Relationships: []graph.Relationship{
			{Source: sources.SILRetired, Verb: ledger.RetiredSplitInto, Object: "wny"},
		},
	}}

	narrow := RowsToTableData(rows, false)
	assert.Len(t, narrow.Headers, 6)
	assert.Len(t, narrow.ColumnAlignment, 6)
	assert.Equal(t, []string{"gbc", "Garawa", "unknown", "unknown", ledger.NoRecord.String(), "yes"}, narrow.Rows[0])

	wide := RowsToTableData(rows, true)
	assert.Equal(t, "Relationships", wide.Headers[6])
	assert.Len(t, wide.ColumnAlignment, 7)
	assert.Equal(t, ledger.RetiredSplitInto.Label()+" wny (SI)", wide.Rows[0][6])
}

func TestResolutionsToTableData(t *testing.T) {
	data := ResolutionsToTableData([]resolver.Resolution{
		{Name: "Arrernte", Codes: []ledger.Code{"aer", "are"}, Outcome: resolver.OutcomeAmbiguous, Signature: "arAnt"},
		{Name: "Nowhere", Outcome: resolver.OutcomeMiss, Signature: "nowhere"},
	})
	assert.Equal(t, [][]string{
		{"Arrernte", "aer, are", "ambiguous", "arAnt"},
		{"Nowhere", "-", "miss", "nowhere"},
	}, data.Rows)
}

func TestProfileToTableData(t *testing.T) {
	p := &langmap.Profile{
		Code:           "mwp",
		DisplayName:    "Mudburra",
		PrimaryNames:   map[sources.ID][]string{sources.Ethnologue: {"Mudburra"}},
		AlternateNames: map[sources.ID][]string{sources.Ethnologue: {"Mudbura"}, sources.JoshuaProject: {"Mudbarra"}},
		Translations: map[sources.ID][]ledger.TranslationRecord{
			sources.Ethnologue: {{Code: "mwp", Source: sources.Ethnologue, Status: ledger.Portions, Year: 1985}},
			sources.FindABible: {{Code: "mwp", Source: sources.FindABible, Status: ledger.Portions, Year: constants.TranslationYearUnknown}},
		},
		Attributes: ledger.Attributes{
			Speakers:          map[sources.ID]int{sources.Ethnologue: 50},
			Coordinates:       map[sources.ID]ledger.Coordinate{sources.WALS: {Latitude: -17.5, Longitude: 133.25}},
			EnglishCompetency: map[sources.ID]ledger.Competency{sources.Census2011: {Pessimistic: 40, Optimistic: 80}},
		},
		BestTranslation: ledger.Portions,
		HasSpeakers:     true,
	}

	data := ProfileToTableData(p)
	assert.Equal(t, []string{"Property", "Source", "Value"}, data.Headers)
	assert.Contains(t, data.Rows, []string{"Name", "", "Mudburra"})
	assert.Contains(t, data.Rows, []string{"Alternate names", "EL", "Mudbura"})
	assert.Contains(t, data.Rows, []string{"Alternate names", "JP", "Mudbarra"})
	assert.Contains(t, data.Rows, []string{"Translation", "EL", ledger.Portions.String() + " (1985)"})
	assert.Contains(t, data.Rows, []string{"Translation", "FB", ledger.Portions.String() + " (-)"})
	assert.Contains(t, data.Rows, []string{"Speakers", "EL", "50"})
	assert.Contains(t, data.Rows, []string{"Coordinates", "WA", "-17.5, 133.25"})
	assert.Contains(t, data.Rows, []string{"English competency", "CN", "40% - 80%"})
	assert.Contains(t, data.Rows, []string{"Retired", "", "no"})
	assert.Contains(t, data.Rows, []string{"Could have speakers", "", "yes"})
}

func TestSignaturesToTableData(t *testing.T) {
	s := &report.Signatures{
		Groups: []report.SignatureGroup{
			{Signature: "arAnt", Codes: []report.CodeNames{{Code: "aer", Names: []string{"Arrernte"}}, {Code: "are", Names: []string{"Arrernte"}}}},
			{Signature: "mtbrA", Codes: []report.CodeNames{{Code: "mwp", Names: []string{"Mudbura", "Mudburra"}}}},
		},
	}

	all := SignaturesToTableData(s, false)
	assert.Len(t, all.Rows, 2)
	assert.Equal(t, []string{"mtbrA", "1", "mwp: Mudbura, Mudburra"}, all.Rows[1])

	collisions := SignaturesToTableData(s, true)
	assert.Equal(t, [][]string{{"arAnt", "2", "aer: Arrernte; are: Arrernte"}}, collisions.Rows)
}

func TestHistogramToTableData(t *testing.T) {
	data := HistogramToTableData("Codes per signature", report.Histogram{{Size: 1, Count: 5}, {Size: 2, Count: 1}})
	assert.Equal(t, []string{"Codes per signature", "Count"}, data.Headers)
	assert.Equal(t, [][]string{{"1", "5"}, {"2", "1"}}, data.Rows)
}

func TestSharedNamesToTableData(t *testing.T) {
	data := SharedNamesToTableData([]report.SharedName{{Codes: []ledger.Code{"aer", "are"}, Names: []string{"Aranda", "Arrernte"}}})
	assert.Equal(t, [][]string{{"aer, are", "Aranda, Arrernte"}}, data.Rows)
}

func TestStatsToTableData(t *testing.T) {
	stats := &langmap.LoadStats{
		RunID:    uuid.New(),
		Accepted: map[string]int{"alias": 4, "edge": 2},
		Rejected: map[string]int{"alias": 1},
		Excluded: map[string]int{"language": 1},
	}

	data := StatsToTableData(stats)
	assert.Equal(t, []string{"Kind", "Accepted", "Rejected", "Excluded"}, data.Headers)
	assert.Contains(t, data.Rows, []string{"alias", "4", "1", "0"})
	assert.Contains(t, data.Rows, []string{"edge", "2", "0", "0"})
	assert.Contains(t, data.Rows, []string{"language", "0", "0", "1"})
}
