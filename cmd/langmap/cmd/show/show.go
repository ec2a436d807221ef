// Package show provides the show command.
package show

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/langmap/internal/appcontext"
	"github.com/agentstation/langmap/internal/cmd/output"
	"github.com/agentstation/langmap/internal/cmd/table"
	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
)

// NewCommand creates the show command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show everything recorded about a code",
		Long: `Show prints the names, translations, relationships and attributes each
source recorded for a code, with the derived display name, best
translation state and retirement status.`,
		Args:    cobra.ExactArgs(1),
		Example: `  langmap show mwp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := app.Langmap()
			if err != nil {
				return err
			}

			profile, err := lm.Show(cmd.Context(), ledger.Code(args[0]))
			if err != nil {
				if errors.Is(err, errors.ErrNotFound) || errors.Is(err, errors.ErrInvalidInput) {
					cmd.SilenceUsage = true
				}
				return err
			}

			format, err := output.FormatFor(cmd, app.OutputFormat())
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), format, profile, func(bool) table.Data {
				return table.ProfileToTableData(profile)
			})
		},
	}
}
