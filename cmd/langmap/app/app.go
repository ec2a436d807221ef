// Package app provides the application context and dependency management
// for the langmap CLI. It centralizes configuration, logging and the
// lifecycle of the shared langmap instance.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/langmap"
	"github.com/agentstation/langmap/internal/cmd/output"
	"github.com/agentstation/langmap/pkg/errors"
)

// App represents the langmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// ctx is the context of the running command, used when the langmap
	// instance is first opened.
	ctx context.Context

	// Langmap instance (lazy-initialized, singleton)
	mu      sync.RWMutex
	langmap langmap.Langmap
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment that can
// be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		ctx:     context.Background(),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format, detecting one from
// the terminal when none is configured.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Output))
}

// Langmap returns the langmap instance, opening it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Langmap() (langmap.Langmap, error) {
	a.mu.RLock()
	if a.langmap != nil {
		lm := a.langmap
		a.mu.RUnlock()
		return lm, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.langmap != nil {
		return a.langmap, nil
	}

	lm, err := langmap.New(a.ctx, a.buildLangmapOptions()...)
	if err != nil {
		return nil, errors.WrapResource("open", "langmap", a.config.Database, err)
	}

	a.langmap = lm
	return lm, nil
}

// Shutdown closes the langmap instance if one was opened.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.langmap == nil {
		return nil
	}
	err := a.langmap.Close()
	a.langmap = nil
	if err != nil {
		return errors.WrapResource("close", "langmap", a.config.Database, err)
	}
	return nil
}

// buildLangmapOptions constructs langmap options from the app configuration.
func (a *App) buildLangmapOptions() []langmap.Option {
	opts := []langmap.Option{langmap.WithLogger(a.logger)}

	if a.config.Database != "" {
		opts = append(opts, langmap.WithDatabase(a.config.Database))
	}
	if a.config.OverridesFile != "" {
		opts = append(opts, langmap.WithOverridesFile(a.config.OverridesFile))
	}
	if len(a.config.ExcludedCodes) > 0 {
		opts = append(opts, langmap.WithExcludedCodes(a.config.ExcludedCodes...))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithLangmap sets a custom langmap instance (useful for testing).
func WithLangmap(lm langmap.Langmap) Option {
	return func(a *App) error {
		a.langmap = lm
		return nil
	}
}
