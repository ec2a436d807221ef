// Package cmdtest provides fixtures and helpers for command tests.
package cmdtest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/langmap"
	"github.com/agentstation/langmap/internal/appcontext"
	"github.com/agentstation/langmap/pkg/constants"
	"github.com/agentstation/langmap/pkg/logging"
)

var fixture = map[string]string{
	"manifest.yaml": "languages: [ethnologue.yaml]\nretirements: retired.tsv\n",
	"ethnologue.yaml": `source: EL
languages:
  - code: mwp
    primary: Mudburra
    alternates: [Mudbura]
    translation: {status: 3, year: 1985}
    speakers: 50
  - code: aer
    primary: Arrernte
    speakers: 1500
  - code: are
    primary: Arrernte
    speakers: 0
`,
	"retired.tsv": "Id\tRef_Name\tRet_Reason\tChange_To\tRet_Remedy\tEffective\n" +
		"gbc\tGarawa\tS\t\tSplit into Garrwa [wrk] and Wanyi [wny]\t2012-02-03\n",
}

// WriteFixture writes a small manifest and its files to a temporary
// directory and returns the manifest path.
func WriteFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range fixture {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), constants.FilePermissions))
	}
	return filepath.Join(dir, "manifest.yaml")
}

// NewLangmap opens an in-memory langmap, loading the fixture when load is
// set.
func NewLangmap(t *testing.T, load bool) langmap.Langmap {
	t.Helper()
	lm, err := langmap.New(context.Background(), langmap.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lm.Close() })
	if load {
		_, err = lm.Load(context.Background(), WriteFixture(t))
		require.NoError(t, err)
	}
	return lm
}

// NewApp returns a mock app context serving lm in format.
func NewApp(lm langmap.Langmap, format string) *appcontext.Mock {
	return &appcontext.Mock{
		LangmapFunc:      func() (langmap.Langmap, error) { return lm, nil },
		OutputFormatFunc: func() string { return format },
	}
}

// Execute runs cmd with args and returns what it wrote to stdout.
func Execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
