// Package infer provides the infer command.
package infer

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/langmap/internal/appcontext"
	"github.com/agentstation/langmap/internal/cmd/output"
	"github.com/agentstation/langmap/internal/cmd/table"
	"github.com/agentstation/langmap/pkg/graph"
)

// NewCommand creates the infer command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "infer",
		Short: "Write the implied reverse of every stored relationship",
		Long: `Infer walks every relationship stated by a primary source and writes its
reverse under the source's implied tag. The load command already does this;
run it again after writing relationships by other means.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lm, err := app.Langmap()
			if err != nil {
				return err
			}
			result, err := lm.Infer(cmd.Context())
			if err != nil {
				return err
			}
			format, err := output.FormatFor(cmd, app.OutputFormat())
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), format, result, func(bool) table.Data {
				return inferenceTable(result)
			})
		},
	}
}

func inferenceTable(r graph.Inference) table.Data {
	return table.Data{
		Headers: []string{"Considered", "Added", "Skipped", "Unreversible"},
		Rows: [][]string{{
			strconv.Itoa(r.Considered),
			strconv.Itoa(r.Added),
			strconv.Itoa(r.Skipped),
			strconv.Itoa(r.Unreversible),
		}},
		ColumnAlignment: []table.Align{table.AlignRight, table.AlignRight, table.AlignRight, table.AlignRight},
	}
}
