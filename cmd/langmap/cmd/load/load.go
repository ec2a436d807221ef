// Package load provides the load command.
package load

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/langmap"
	"github.com/agentstation/langmap/internal/appcontext"
	"github.com/agentstation/langmap/internal/cmd/emoji"
	"github.com/agentstation/langmap/internal/cmd/globals"
	"github.com/agentstation/langmap/internal/cmd/output"
	"github.com/agentstation/langmap/internal/cmd/table"
)

// NewCommand creates the load command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "load <manifest>",
		Short: "Load every source named in a manifest into the ledger",
		Long: `Load reads the manifest and writes its sources into the ledger in a fixed
order: language bundles, translations, relationships and attributes, SIL
retirements, reverse inference, ABS names, coordinates, and finally the
census. Malformed records are counted and skipped; a missing file stops
the load.

Loading is idempotent: running it twice leaves the ledger unchanged.`,
		Args: cobra.ExactArgs(1),
		Example: `  langmap load data/manifest.yaml
  langmap load data/manifest.yaml -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, args[0])
		},
	}
}

func run(cmd *cobra.Command, app appcontext.Interface, manifest string) error {
	lm, err := app.Langmap()
	if err != nil {
		return err
	}

	stats, err := lm.Load(cmd.Context(), manifest)
	if err != nil {
		return err
	}

	format, err := output.FormatFor(cmd, app.OutputFormat())
	if err != nil {
		return err
	}

	app.Logger().Info().
		Int("rejected", stats.TotalRejected()).
		Int("inferred", stats.Inference.Added).
		Dur("duration", stats.Duration).
		Msg("Loaded manifest")

	err = output.Write(cmd.OutOrStdout(), format, stats, func(bool) table.Data {
		return table.StatsToTableData(stats)
	})
	if err != nil || !format.IsTable() {
		return err
	}
	if flags, err := globals.Parse(cmd); err == nil && flags.Quiet {
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), summary(stats))
	return err
}

// summary is the one-line status printed under the stats table.
func summary(stats *langmap.LoadStats) string {
	if n := stats.TotalRejected(); n > 0 {
		return fmt.Sprintf("%s Loaded with %d malformed records skipped, %d relationships inferred",
			emoji.Warning, n, stats.Inference.Added)
	}
	return fmt.Sprintf("%s Loaded, %d relationships inferred", emoji.Success, stats.Inference.Added)
}
