// Package signature provides the signature command.
package signature

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/langmap/internal/appcontext"
	"github.com/agentstation/langmap/internal/cmd/output"
	"github.com/agentstation/langmap/internal/cmd/table"
	"github.com/agentstation/langmap/pkg/signature"
)

// Result is the signature of one name.
type Result struct {
	Name      string           `json:"name" yaml:"name"`
	Signature string           `json:"signature" yaml:"signature"`
	Steps     []signature.Step `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// NewCommand creates the signature command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "signature <name>...",
		Short: "Show the signature a name reduces to",
		Long: `Signature prints the spelling-insensitive key the resolver matches names
by. With --trace it lists the result of every rule in order.`,
		Args: cobra.MinimumNArgs(1),
		Example: `  langmap signature Mudburra Moodburra
  langmap signature --trace "Kriol (Roper River)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]Result, 0, len(args))
			for _, name := range args {
				r := Result{Name: name, Signature: signature.Generate(name)}
				if trace {
					r.Steps = signature.Trace(name)
				}
				results = append(results, r)
			}

			format, err := output.FormatFor(cmd, app.OutputFormat())
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), format, results, func(bool) table.Data {
				return resultsTable(results, trace)
			})
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "show the result of every rule")

	return cmd
}

func resultsTable(results []Result, trace bool) table.Data {
	if trace && len(results) == 1 {
		return table.TraceToTableData(results[0].Steps)
	}
	data := table.Data{Headers: []string{"Name", "Signature"}}
	for _, r := range results {
		data.Rows = append(data.Rows, []string{r.Name, r.Signature})
	}
	return data
}
