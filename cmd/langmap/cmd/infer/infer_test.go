package infer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap/internal/cmd/cmdtest"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/sources"
)

func TestInferCommand(t *testing.T) {
	lm := cmdtest.NewLangmap(t, true)
	require.NoError(t, lm.Ledger().PutEdge(t.Context(), ledger.Edge{
		Subject: "aer", Verb: ledger.SimilarTo, Object: "are", Source: sources.Ethnologue,
	}))

	out, err := cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")))
	require.NoError(t, err)

	var got graph.Inference
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Added)

	// A second run finds every reverse already present.
	out, err = cmdtest.Execute(t, NewCommand(cmdtest.NewApp(lm, "json")))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Zero(t, got.Added)
}

func TestInferTable(t *testing.T) {
	data := inferenceTable(graph.Inference{Considered: 3, Added: 2, Skipped: 1})
	assert.Equal(t, []string{"Considered", "Added", "Skipped", "Unreversible"}, data.Headers)
	assert.Equal(t, [][]string{{"3", "2", "1", "0"}}, data.Rows)
}
