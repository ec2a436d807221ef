package logging_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/langmap/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.InfoLevel))

	logging.Debug().Msg("debug message")
	logging.Info().Str("source", "EL").Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, `"source":"EL"`)
	assert.Contains(t, output, "warning message")
	assert.Contains(t, output, "error message")
}

func TestNewWritesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)
	logger.Warn().Str("code", "aly").Msg("hello")

	assert.Contains(t, buf.String(), `"code":"aly"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)
	tl.Info().Msg("first")
	tl.Warn().Str("verb", "C").Msg("unreversible verb")
	tl.Warn().Str("verb", "D").Msg("unreversible verb")

	assert.Equal(t, 3, tl.Count())
	assert.Equal(t, 2, tl.CountContaining("unreversible verb"))
	tl.AssertContains(t, `"verb":"D"`)
	tl.AssertNotContains(t, "second")
}
