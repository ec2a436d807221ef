package langmap

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/resolver"
	"github.com/agentstation/langmap/pkg/signature"
)

// config holds the settings applied by Options.
type config struct {
	databasePath  string
	overridesPath string
	overrides     resolver.Overrides
	excludedCodes []string
	generator     *signature.Generator
	logger        *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		overrides: resolver.DefaultOverrides(),
	}
}

// Option is a function that configures a Langmap instance
type Option func(*config) error

// WithDatabase stores the ledger in the SQLite database at path. Without
// it the ledger lives in memory.
func WithDatabase(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("database", path, "path cannot be empty")
		}
		c.databasePath = path
		return nil
	}
}

// WithOverridesFile merges the name overrides in the YAML file at path
// over the built-in ones.
func WithOverridesFile(path string) Option {
	return func(c *config) error {
		c.overridesPath = path
		return nil
	}
}

// WithOverrides merges overrides over the built-in ones.
func WithOverrides(overrides resolver.Overrides) Option {
	return func(c *config) error {
		c.overrides = c.overrides.Merge(overrides)
		return nil
	}
}

// WithExcludedCodes replaces the codes the load pass skips.
func WithExcludedCodes(codes ...string) Option {
	return func(c *config) error {
		c.excludedCodes = codes
		return nil
	}
}

// WithSignatureRules replaces the signature rules used by the resolver.
func WithSignatureRules(rules ...signature.Rule) Option {
	return func(c *config) error {
		c.generator = signature.New(rules...)
		return nil
	}
}

// WithLogger configures the logger shared by every component.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
