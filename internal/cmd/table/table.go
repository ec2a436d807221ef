// Package table converts langmap results into rows for table output.
package table

import (
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/langmap"
	"github.com/agentstation/langmap/internal/report"
	"github.com/agentstation/langmap/pkg/constants"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/resolver"
	"github.com/agentstation/langmap/pkg/signature"
	"github.com/agentstation/langmap/pkg/sources"
	"github.com/agentstation/langmap/pkg/views"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// FormatSpeakers renders a speaker count, naming the sentinel values.
func FormatSpeakers(count int) string {
	switch count {
	case constants.SpeakerCountNoneExpected:
		return "none expected"
	case constants.SpeakerCountUnknown:
		return "unknown"
	case constants.SpeakerCountAmbiguous:
		return "ambiguous"
	}
	return strconv.Itoa(count)
}

// FormatCodes joins codes with commas, or "-" when there are none.
func FormatCodes(codes []ledger.Code) string {
	if len(codes) == 0 {
		return "-"
	}
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// RowsToTableData converts aggregate rows to table format.
func RowsToTableData(rows []views.Row, wide bool) Data {
	headers := []string{"Code", "Name", "Speakers", "Band", "Translation", "Retired"}
	if wide {
		headers = append(headers, "Relationships")
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{
			r.Code.String(),
			r.Name,
			FormatSpeakers(r.Speakers),
			string(r.Band),
			r.Translation.String(),
			yesNo(r.Retired),
		}
		if wide {
			row = append(row, formatRelationships(r.Relationships))
		}
		out = append(out, row)
	}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignCenter}
	if wide {
		align = append(align, AlignLeft)
	}
	return Data{Headers: headers, Rows: out, ColumnAlignment: align}
}

func formatRelationships(rs []graph.Relationship) string {
	if len(rs) == 0 {
		return "-"
	}
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.Label() + " (" + r.Source.String() + ")"
	}
	return strings.Join(parts, "; ")
}

// ResolutionsToTableData converts resolutions to table format.
func ResolutionsToTableData(rs []resolver.Resolution) Data {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{r.Name, FormatCodes(r.Codes), string(r.Outcome), r.Signature})
	}
	return Data{Headers: []string{"Name", "Codes", "Outcome", "Signature"}, Rows: rows}
}

// TraceToTableData converts the steps of a signature trace to table format.
func TraceToTableData(steps []signature.Step) Data {
	rows := make([][]string, 0, len(steps))
	for i, s := range steps {
		rows = append(rows, []string{strconv.Itoa(i), s.Rule, s.Result})
	}
	return Data{Headers: []string{"Step", "Rule", "Result"}, Rows: rows, ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft}}
}

// ProfileToTableData converts a profile to a key-value table, one row per
// source for each per-source field.
func ProfileToTableData(p *langmap.Profile) Data {
	rows := [][]string{
		{"Code", "", p.Code.String()},
		{"Name", "", p.DisplayName},
	}
	addNames := func(label string, bySource map[sources.ID][]string) {
		for _, src := range sortedSources(bySource) {
			rows = append(rows, []string{label, src.String(), strings.Join(bySource[src], ", ")})
		}
	}
	addNames("Primary name", p.PrimaryNames)
	addNames("Alternate names", p.AlternateNames)
	addNames("Dialects", p.Dialects)
	addNames("Classification", p.Classifications)

	for _, src := range sortedSources(p.Translations) {
		for _, t := range p.Translations[src] {
			year := "-"
			if t.Year != constants.TranslationYearUnknown {
				year = strconv.Itoa(t.Year)
			}
			rows = append(rows, []string{"Translation", src.String(), t.Status.String() + " (" + year + ")"})
		}
	}
	for _, src := range sortedSources(p.Attributes.Speakers) {
		rows = append(rows, []string{"Speakers", src.String(), FormatSpeakers(p.Attributes.Speakers[src])})
	}
	for _, src := range sortedSources(p.Attributes.Coordinates) {
		c := p.Attributes.Coordinates[src]
		rows = append(rows, []string{"Coordinates", src.String(),
			strconv.FormatFloat(c.Latitude, 'f', -1, 64) + ", " + strconv.FormatFloat(c.Longitude, 'f', -1, 64)})
	}
	for _, src := range sortedSources(p.Attributes.EnglishCompetency) {
		c := p.Attributes.EnglishCompetency[src]
		rows = append(rows, []string{"English competency", src.String(),
			strconv.FormatFloat(c.Pessimistic, 'f', -1, 64) + "% - " + strconv.FormatFloat(c.Optimistic, 'f', -1, 64) + "%"})
	}
	if p.Attributes.WritingState != "" {
		rows = append(rows, []string{"Writing", "", p.Attributes.WritingState.String()})
	}
	for _, r := range p.Relationships {
		rows = append(rows, []string{"Relationship", r.Source.String(), r.Label()})
	}
	rows = append(rows,
		[]string{"Best translation", "", p.BestTranslation.String()},
		[]string{"Retired", "", yesNo(p.Retired)},
		[]string{"Could have speakers", "", yesNo(p.HasSpeakers)},
	)
	return Data{Headers: []string{"Property", "Source", "Value"}, Rows: rows}
}

// SignaturesToTableData converts a signature report to table format, one
// row per signature.
func SignaturesToTableData(s *report.Signatures, collisionsOnly bool) Data {
	groups := s.Groups
	if collisionsOnly {
		groups = s.Collisions()
	}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		parts := make([]string, len(g.Codes))
		for i, c := range g.Codes {
			parts[i] = c.Code.String() + ": " + strings.Join(c.Names, ", ")
		}
		rows = append(rows, []string{g.Signature, strconv.Itoa(len(g.Codes)), strings.Join(parts, "; ")})
	}
	return Data{
		Headers:         []string{"Signature", "Codes", "Names"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
}

// HistogramToTableData converts a histogram to table format.
func HistogramToTableData(label string, h report.Histogram) Data {
	rows := make([][]string, 0, len(h))
	for _, b := range h {
		rows = append(rows, []string{strconv.Itoa(b.Size), strconv.Itoa(b.Count)})
	}
	return Data{Headers: []string{label, "Count"}, Rows: rows, ColumnAlignment: []Align{AlignRight, AlignRight}}
}

// SharedNamesToTableData converts shared-name groups to table format.
func SharedNamesToTableData(groups []report.SharedName) Data {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{FormatCodes(g.Codes), strings.Join(g.Names, ", ")})
	}
	return Data{Headers: []string{"Codes", "Shared names"}, Rows: rows}
}

// StatsToTableData converts load stats to table format, one row per kind.
func StatsToTableData(s *langmap.LoadStats) Data {
	rows := make([][]string, 0)
	for _, kind := range s.Kinds() {
		rows = append(rows, []string{
			kind,
			strconv.Itoa(s.Accepted[kind]),
			strconv.Itoa(s.Rejected[kind]),
			strconv.Itoa(s.Excluded[kind]),
		})
	}
	return Data{
		Headers:         []string{"Kind", "Accepted", "Rejected", "Excluded"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}

func sortedSources[V any](m map[sources.ID]V) []sources.ID {
	out := make([]sources.ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
