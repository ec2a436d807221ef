package show

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/internal/cmd/cmdtest"
	"github.com/agentstation/langmap/pkg/errors"
)

func TestShowCommand(t *testing.T) {
	lm := cmdtest.NewLangmap(t, true)

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")), "mwp")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "mwp", got["code"])
	assert.Equal(t, "Mudburra", got["display_name"])
	assert.Equal(t, false, got["retired"])
	assert.Equal(t, true, got["could_have_speakers"])
}

func TestShowCommandTable(t *testing.T) {
	lm := cmdtest.NewLangmap(t, true)

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "table")), "gbc")
	require.NoError(t, err)
	assert.Contains(t, out, "wrk")
	assert.Contains(t, out, "wny")
}

func TestShowCommandErrors(t *testing.T) {
	lm := cmdtest.NewLangmap(t, true)

	_, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")), "zzz")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")), "ZZ")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
