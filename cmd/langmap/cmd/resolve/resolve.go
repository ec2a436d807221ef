// Package resolve provides the resolve command.
package resolve

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/langmap/internal/appcontext"
	"github.com/agentstation/langmap/internal/cmd/output"
	"github.com/agentstation/langmap/internal/cmd/table"
	"github.com/agentstation/langmap/pkg/resolver"
)

// NewCommand creates the resolve command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var codesOnly bool

	cmd := &cobra.Command{
		Use:   "resolve <name>...",
		Short: "Resolve free-text language names to codes",
		Long: `Resolve looks each name up by exact spelling, then by signature, and
applies the name overrides. A name reaching several codes is reported as
ambiguous rather than guessed.`,
		Args: cobra.MinimumNArgs(1),
		Example: `  langmap resolve Mudbura
  langmap resolve "Moodburra" Arrernte -o json
  langmap resolve --codes Mudburra`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lm, err := app.Langmap()
			if err != nil {
				return err
			}

			results := make([]resolver.Resolution, 0, len(args))
			for _, name := range args {
				res, err := lm.ResolveDetailed(cmd.Context(), name)
				if err != nil {
					return err
				}
				app.Logger().Debug().
					Str("name", name).
					Str("outcome", string(res.Outcome)).
					Int("codes", len(res.Codes)).
					Msg("Resolved name")
				results = append(results, res)
			}

			if codesOnly {
				for _, res := range results {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), table.FormatCodes(res.Codes)); err != nil {
						return err
					}
				}
				return nil
			}

			format, err := output.FormatFor(cmd, app.OutputFormat())
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), format, results, func(bool) table.Data {
				return table.ResolutionsToTableData(results)
			})
		},
	}

	cmd.Flags().BoolVar(&codesOnly, "codes", false, "print only the codes, one line per name")

	return cmd
}
