package list

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/internal/cmd/cmdtest"
	"github.com/agentstation/langmap/internal/cmd/globals"
	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/views"
)

func listCodes(t *testing.T, args ...string) []ledger.Code {
	t.Helper()
	lm := cmdtest.NewLangmap(t, true)

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")), args...)
	require.NoError(t, err)

	var rows []views.Row
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	codes := make([]ledger.Code, len(rows))
	for i, r := range rows {
		codes[i] = r.Code
	}
	return codes
}

func TestTableCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []ledger.Code
	}{
		{name: "all", want: []ledger.Code{"aer", "are", "mwp"}},
		{name: "band", args: []string{"--band", "none"}, want: []ledger.Code{"are"}},
		{name: "search code", args: []string{"--search", "MWP"}, want: []ledger.Code{"mwp"}},
		{name: "search name", args: []string{"--search", "arr"}, want: []ledger.Code{"aer", "are"}},
		{name: "search glob", args: []string{"--search", "ar?"}, want: []ledger.Code{"are"}},
		{name: "search regex", args: []string{"--search", "^mud"}, want: []ledger.Code{"mwp"}},
		{name: "limit", args: []string{"--limit", "1"}, want: []ledger.Code{"aer"}},
		{name: "translation", args: []string{"--min-translation", "3"}, want: []ledger.Code{"mwp"}},
		{name: "active", args: []string{"--active"}, want: []ledger.Code{"aer", "are", "mwp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listCodes(t, tt.args...))
		})
	}
}

func TestTableCommandWide(t *testing.T) {
	lm := cmdtest.NewLangmap(t, true)

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "wide")))
	require.NoError(t, err)
	assert.Contains(t, out, "Mudburra")
	assert.Contains(t, out, "Portions of scripture")
}

func TestNewFilter(t *testing.T) {
	_, err := newFilter(&globals.TableFlags{Retired: true, Active: true})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = newFilter(&globals.TableFlags{MinTranslation: 9})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = newFilter(&globals.TableFlags{Band: "lots"})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = newFilter(&globals.TableFlags{Search: "(unclosed"})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	f, err := newFilter(&globals.TableFlags{Band: "few", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, views.BandFew, f.Band)
	assert.Equal(t, 2, f.Limit)
}
