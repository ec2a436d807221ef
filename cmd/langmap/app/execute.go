package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/langmap/internal/cmd/globals"
)

// Execute runs the langmap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "langmap",
		Short:   "Reconcile language records from many sources",
		Version: a.version,
		Long: `Langmap loads language records published by several sources into one
ledger keyed by ISO 639-3 code, infers the reverse of every relationship
a source states, and resolves free-text language names to codes.

Load a manifest once, then query the ledger:

  langmap load data/manifest.yaml
  langmap resolve "Moodburra"
  langmap show mwp`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	globals.AddFlags(rootCmd)
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.langmap.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.Database, "database", a.config.Database, "SQLite database holding the ledger")
	rootCmd.PersistentFlags().StringVar(&a.config.OverridesFile, "overrides", a.config.OverridesFile, "YAML file of name overrides")
	rootCmd.PersistentFlags().StringSliceVar(&a.config.ExcludedCodes, "exclude", a.config.ExcludedCodes, "codes the load pass skips (replaces the defaults)")

	rootCmd.SetVersionTemplate("langmap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	a.config.UpdateFromFlags(flags.Verbose, flags.Quiet, flags.NoColor, flags.Output, mustGetString(cmd, "log-level"))

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	a.ctx = cmd.Context()

	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
