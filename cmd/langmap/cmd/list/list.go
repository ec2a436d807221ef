// Package list provides the table command, which lists one summary row per
// code.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/langmap/internal/appcontext"
	"github.com/agentstation/langmap/internal/cmd/filter"
	"github.com/agentstation/langmap/internal/cmd/globals"
	"github.com/agentstation/langmap/internal/cmd/output"
	"github.com/agentstation/langmap/internal/cmd/table"
	"github.com/agentstation/langmap/internal/matcher"
	"github.com/agentstation/langmap/pkg/errors"
	"github.com/agentstation/langmap/pkg/ledger"
	"github.com/agentstation/langmap/pkg/views"
)

// NewCommand creates the table command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "table",
		Aliases: []string{"ls", "list"},
		Short:   "List one summary row per code",
		Long: `Table lists every code in the ledger with its display name, Ethnologue
speaker count and band, best translation state and retirement status.
Use -o wide to add the relationships column.`,
		Args: cobra.NoArgs,
		Example: `  langmap table
  langmap table --band few --active
  langmap table --search arr -o wide
  langmap table --search 'ar?'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := newFilter(globals.ParseTable(cmd))
			if err != nil {
				return err
			}

			lm, err := app.Langmap()
			if err != nil {
				return err
			}
			rows, err := lm.Table(cmd.Context())
			if err != nil {
				return err
			}
			rows = f.Apply(rows)

			format, err := output.FormatFor(cmd, app.OutputFormat())
			if err != nil {
				return err
			}
			app.Logger().Debug().Int("rows", len(rows)).Msg("Listing codes")
			return output.Write(cmd.OutOrStdout(), format, rows, func(wide bool) table.Data {
				return table.RowsToTableData(rows, wide)
			})
		},
	}

	globals.AddTableFlags(cmd)

	return cmd
}

func newFilter(flags *globals.TableFlags) (*filter.RowFilter, error) {
	f := &filter.RowFilter{
		Band:           views.Band(flags.Band),
		MinTranslation: ledger.TranslationState(flags.MinTranslation),
		RetiredOnly:    flags.Retired,
		ActiveOnly:     flags.Active,
		Limit:          flags.Limit,
	}
	if flags.Retired && flags.Active {
		return nil, errors.NewValidationError("retired", flags.Retired, "cannot be combined with --active")
	}
	if !f.MinTranslation.IsValid() {
		return nil, errors.NewValidationError("min-translation", flags.MinTranslation, fmt.Sprintf("must be between %d and %d", ledger.NoRecord, ledger.WholeBible))
	}
	if flags.Search != "" {
		m, err := matcher.New(matcher.Auto, flags.Search, matcher.CaseInsensitive())
		if err != nil {
			return nil, err
		}
		f.Search = m
	}
	switch f.Band {
	case "", views.BandNone, views.BandFew, views.BandSome, views.BandMany, views.BandUnknown:
	default:
		return nil, errors.NewValidationError("band", flags.Band, "must be one of none, few, some, many, unknown")
	}
	return f, nil
}
