package report

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/internal/appcontext"
	"github.com/agentstation/langmap/internal/cmd/cmdtest"
	"github.com/agentstation/langmap/internal/report"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/logging"
)

func TestSignaturesCommand(t *testing.T) {
	lm := cmdtest.NewLangmap(t, true)

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")), "signatures")
	require.NoError(t, err)

	var got report.Signatures
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Codes, 3)
	assert.NotEmpty(t, got.Groups)
}

func TestSignaturesCollisions(t *testing.T) {
	lm := cmdtest.NewLangmap(t, true)

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")), "signatures", "--collisions")
	require.NoError(t, err)

	var got []report.SignatureGroup
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	require.Len(t, got[0].Codes, 2)
	assert.Equal(t, ledger.Code("aer"), got[0].Codes[0].Code)
	assert.Equal(t, ledger.Code("are"), got[0].Codes[1].Code)
}

func TestSignaturesTable(t *testing.T) {
	lm := cmdtest.NewLangmap(t, true)

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "table")), "signatures")
	require.NoError(t, err)
	assert.Contains(t, out, "aer: Arrernte; are: Arrernte")
}

func TestSignaturesLog(t *testing.T) {
	lm := cmdtest.NewLangmap(t, true)
	logger := logging.NewTestLogger(t)
	app := cmdtest.NewApp(lm, "json")
	app.LoggerFunc = func() *zerolog.Logger { return logger.Logger }

	out, err := cmdtest.Execute(t, NewCommand(app), "signatures", "--log")
	require.NoError(t, err)
	assert.Empty(t, out)
	logger.AssertContains(t, "Arrernte")
}

func TestSharedNamesCommand(t *testing.T) {
	lm := cmdtest.NewLangmap(t, true)

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")), "shared-names")
	require.NoError(t, err)

	var got []report.SharedName
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []report.SharedName{{Codes: []ledger.Code{"aer", "are"}, Names: []string{"Arrernte"}}}, got)
}

func TestLangmapError(t *testing.T) {
	_, err := cmdtest.Execute(t, NewCommand(&appcontext.Mock{}), "shared-names")
	assert.Error(t, err)
}
