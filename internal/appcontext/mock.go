package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/langmap"
	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/logging"
)

// Mock provides a mock implementation of Interface for testing.
// If a function field is nil, the method returns a default value.
type Mock struct {
	LangmapFunc      func() (langmap.Langmap, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

var _ Interface = (*Mock)(nil)

// Langmap returns the instance from LangmapFunc, or an error.
func (m *Mock) Langmap() (langmap.Langmap, error) {
	if m.LangmapFunc != nil {
		return m.LangmapFunc()
	}
	return nil, errNoLangmap
}

// Logger returns the logger from LoggerFunc or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the format from OutputFormatFunc or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Version returns the version from VersionFunc or "test".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

// Commit returns "none".
func (m *Mock) Commit() string { return "none" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

var errNoLangmap = errors.New("mock has no langmap")
