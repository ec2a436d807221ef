package load

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap"
	"github.com/agentstation/langmap/internal/cmd/cmdtest"
	"github.com/agentstation/langmap/internal/cmd/emoji"
	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
)

func TestLoadCommand(t *testing.T) {
	lm := cmdtest.NewLangmap(t, false)

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")), cmdtest.WriteFixture(t))
	require.NoError(t, err)

	var got struct {
		Accepted  map[string]int  `json:"accepted"`
		Inference graph.Inference `json:"inference"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.Accepted["alias"])
	assert.Equal(t, 3, got.Accepted["attributes"])
	assert.Equal(t, 1, got.Accepted["retirement"])
	assert.Equal(t, 2, got.Inference.Added)

	codes, err := lm.Resolve(t.Context(), "Mudbura")
	require.NoError(t, err)
	assert.Equal(t, []ledger.Code{"mwp"}, codes)
}

func TestLoadCommandTable(t *testing.T) {
	lm := cmdtest.NewLangmap(t, false)

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "table")), cmdtest.WriteFixture(t))
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(out), "accepted")
	assert.Contains(t, out, "retirement")
	assert.Contains(t, out, "2 relationships inferred")
}

func TestSummary(t *testing.T) {
	stats := &langmap.LoadStats{Rejected: map[string]int{}}
	stats.Inference.Added = 3
	assert.Equal(t, emoji.Success+" Loaded, 3 relationships inferred", summary(stats))

	stats.Rejected["alias"] = 2
	assert.Equal(t, emoji.Warning+" Loaded with 2 malformed records skipped, 3 relationships inferred", summary(stats))
}

func TestLoadCommandMissingManifest(t *testing.T) {
	lm := cmdtest.NewLangmap(t, false)

	_, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")), "/nonexistent/manifest.yaml")
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadCommandArgs(t *testing.T) {
	lm := cmdtest.NewLangmap(t, false)

	_, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")))
	assert.Error(t, err)
}
