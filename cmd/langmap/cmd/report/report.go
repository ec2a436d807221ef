// Package report provides the report command and its subcommands.
package report

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/langmap/internal/appcontext"
	"github.com/agentstation/langmap/internal/cmd/output"
	"github.com/agentstation/langmap/internal/cmd/table"
	"github.com/agentstation/langmap/internal/report"
)

// NewCommand creates the report command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Diagnostic reports over the stored names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newSignaturesCommand(app))
	cmd.AddCommand(newSharedNamesCommand(app))
	return cmd
}

func newSignaturesCommand(app appcontext.Interface) *cobra.Command {
	var collisions, toLog bool

	cmd := &cobra.Command{
		Use:   "signatures",
		Short: "Group every stored name by signature",
		Long: `Signatures lists, for every signature, the codes whose names produce it,
followed by histograms of signatures per code and codes per signature.
Name overrides are not applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lm, err := app.Langmap()
			if err != nil {
				return err
			}
			sigs, err := lm.SignatureReport(cmd.Context())
			if err != nil {
				return err
			}

			if toLog {
				sigs.Log(app.Logger())
				return nil
			}

			format, err := output.FormatFor(cmd, app.OutputFormat())
			if err != nil {
				return err
			}
			if !format.IsTable() {
				if collisions {
					return output.Write(cmd.OutOrStdout(), format, sigs.Collisions(), nil)
				}
				return output.Write(cmd.OutOrStdout(), format, sigs, nil)
			}
			return writeSignatureTables(cmd, format, sigs, collisions)
		},
	}

	cmd.Flags().BoolVar(&collisions, "collisions", false, "only signatures shared by more than one code")
	cmd.Flags().BoolVar(&toLog, "log", false, "write the report to the log instead of stdout")

	return cmd
}

func writeSignatureTables(cmd *cobra.Command, format output.Format, sigs *report.Signatures, collisions bool) error {
	w := cmd.OutOrStdout()
	tables := []table.Data{
		table.SignaturesToTableData(sigs, collisions),
		table.HistogramToTableData("Signatures per code", sigs.SignaturesPerCode),
		table.HistogramToTableData("Codes per signature", sigs.CodesPerSignature),
	}
	for i, data := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := output.NewFormatter(format).Format(w, data); err != nil {
			return err
		}
	}
	return nil
}

func newSharedNamesCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "shared-names",
		Short: "List the codes that share a name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lm, err := app.Langmap()
			if err != nil {
				return err
			}
			groups, err := lm.SharedNames(cmd.Context())
			if err != nil {
				return err
			}
			format, err := output.FormatFor(cmd, app.OutputFormat())
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), format, groups, func(bool) table.Data {
				return table.SharedNamesToTableData(groups)
			})
		},
	}
}
