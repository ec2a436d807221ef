// Package filter narrows the rows of the language table.
package filter

import (
	"github.com/agentstation/langmap/internal/matcher"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/views"
)

// RowFilter applies filters to table rows.
type RowFilter struct {
	Band           views.Band
	Search         matcher.Matcher // Matched against the code and display name
	MinTranslation ledger.TranslationState
	RetiredOnly    bool
	ActiveOnly     bool
	Limit          int
}

// Apply filters a slice of rows, keeping their order.
func (f *RowFilter) Apply(rows []views.Row) []views.Row {
	if f == nil || f.isEmpty() {
		return rows
	}

	var filtered []views.Row
	for _, row := range rows {
		if !f.matches(row) {
			continue
		}
		filtered = append(filtered, row)
		if f.Limit > 0 && len(filtered) == f.Limit {
			break
		}
	}
	return filtered
}

func (f *RowFilter) isEmpty() bool {
	return f.Band == "" &&
		f.Search == nil &&
		f.MinTranslation == ledger.NoRecord &&
		!f.RetiredOnly &&
		!f.ActiveOnly &&
		f.Limit == 0
}

func (f *RowFilter) matches(row views.Row) bool {
	if f.Band != "" && row.Band != f.Band {
		return false
	}
	if f.RetiredOnly && !row.Retired {
		return false
	}
	if f.ActiveOnly && row.Retired {
		return false
	}
	if row.Translation < f.MinTranslation {
		return false
	}
	if f.Search != nil && !f.Search.MatchAny(string(row.Code), row.Name) {
		return false
	}
	return true
}
