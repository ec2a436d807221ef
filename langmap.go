package langmap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agentstation/langmap/internal/loader"
	"github.com/agentstation/langmap/internal/report"
	"github.com/agentstation/langmap/internal/store/memory"
	"github.com/agentstation/langmap/internal/store/sqlite"
	"github.com/agentstation/langmap/pkg/graph"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/logging"
	"github.com/agentstation/langmap/pkg/resolver"
	"github.com/agentstation/langmap/pkg/views"
)

// LoadStats summarizes one load pass.
type LoadStats = loader.Stats

// Langmap ties the ledger, graph, resolver and views together over one
// store.
type Langmap interface {
	// Load runs the load pass described by the manifest at path
	Load(ctx context.Context, manifestPath string) (*LoadStats, error)

	// Infer re-runs reverse inference over the stored relationships
	Infer(ctx context.Context) (graph.Inference, error)

	// Resolve returns the codes a free text name refers to
	Resolve(ctx context.Context, name string) ([]ledger.Code, error)

	// ResolveDetailed returns the codes and how they were found
	ResolveDetailed(ctx context.Context, name string) (resolver.Resolution, error)

	// Show collects everything recorded about a code
	Show(ctx context.Context, code ledger.Code) (*Profile, error)

	// Table returns one summary row per code
	Table(ctx context.Context) ([]views.Row, error)

	// SignatureReport groups every stored name by signature
	SignatureReport(ctx context.Context) (*report.Signatures, error)

	// SharedNames lists the codes that share a name
	SharedNames(ctx context.Context) ([]report.SharedName, error)

	// OnLoaded registers a callback for completed load passes
	OnLoaded(LoadedHook)

	// OnInferred registers a callback for inference runs
	OnInferred(InferredHook)

	// Ledger returns the underlying ledger
	Ledger() *ledger.Ledger

	// Close releases the store
	Close() error
}

// langmap is the internal implementation of the Langmap interface
type langmap struct {
	config   *config
	ledger   *ledger.Ledger
	graph    *graph.Graph
	resolver *resolver.Resolver
	views    *views.Views
	logger   *zerolog.Logger
	hooks    *hooks
}

// New opens the configured store and wires the components over it.
func New(ctx context.Context, opts ...Option) (Langmap, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	if cfg.overridesPath != "" {
		fromFile, err := resolver.LoadOverrides(cfg.overridesPath)
		if err != nil {
			return nil, fmt.Errorf("loading overrides: %w", err)
		}
		cfg.overrides = cfg.overrides.Merge(fromFile)
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	l := ledger.New(store)
	resolverOpts := []resolver.Option{resolver.WithOverrides(cfg.overrides), resolver.WithLogger(logger)}
	if cfg.generator != nil {
		resolverOpts = append(resolverOpts, resolver.WithGenerator(cfg.generator))
	}

	return &langmap{
		config:   cfg,
		ledger:   l,
		graph:    graph.New(l, graph.WithLogger(logger)),
		resolver: resolver.New(l, resolverOpts...),
		views:    views.New(l, views.WithLogger(logger)),
		logger:   logger,
		hooks:    newHooks(),
	}, nil
}

func openStore(ctx context.Context, cfg *config, logger *zerolog.Logger) (ledger.Store, error) {
	if cfg.databasePath == "" {
		return memory.New(), nil
	}
	store, err := sqlite.Open(ctx, cfg.databasePath, sqlite.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return store, nil
}

// Load runs the load pass described by the manifest at path.
func (m *langmap) Load(ctx context.Context, manifestPath string) (*LoadStats, error) {
	opts := []loader.Option{loader.WithLogger(m.logger)}
	if len(m.config.excludedCodes) > 0 {
		opts = append(opts, loader.WithExcludedCodes(m.config.excludedCodes...))
	}
	stats, err := loader.New(m.ledger, m.graph, opts...).Load(ctx, manifestPath)
	if err != nil {
		return stats, err
	}
	m.hooks.triggerLoaded(stats)
	return stats, nil
}

// Infer re-runs reverse inference.
func (m *langmap) Infer(ctx context.Context) (graph.Inference, error) {
	result, err := m.graph.ReverseInfer(ctx)
	if err != nil {
		return result, err
	}
	m.hooks.triggerInferred(result)
	return result, nil
}

func (m *langmap) Resolve(ctx context.Context, name string) ([]ledger.Code, error) {
	return m.resolver.Resolve(ctx, name)
}

func (m *langmap) ResolveDetailed(ctx context.Context, name string) (resolver.Resolution, error) {
	return m.resolver.ResolveDetailed(ctx, name)
}

func (m *langmap) Table(ctx context.Context) ([]views.Row, error) {
	return m.views.Table(ctx)
}

func (m *langmap) SignatureReport(ctx context.Context) (*report.Signatures, error) {
	return report.LoadSignatures(ctx, m.ledger, m.config.generator)
}

func (m *langmap) SharedNames(ctx context.Context) ([]report.SharedName, error) {
	return report.SharedNames(ctx, m.ledger)
}

func (m *langmap) OnLoaded(fn LoadedHook)     { m.hooks.OnLoaded(fn) }
func (m *langmap) OnInferred(fn InferredHook) { m.hooks.OnInferred(fn) }

func (m *langmap) Ledger() *ledger.Ledger { return m.ledger }

func (m *langmap) Close() error {
	return m.ledger.Close()
}
