// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/langmap/internal/cmd/constants"
	"github.com/agentstation/langmap/pkg/errors"
)

// Flags holds global common flags across all commands.
type Flags struct {
	Output  string
	Quiet   bool
	Verbose bool
	NoColor bool
}

// AddFlags adds common flags to the root command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", "",
		"Output format: "+strings.Join(constants.ValidFormats(), ", ")+" (default: table on a terminal, json otherwise)")
	// --format is a hidden alias for --output
	cmd.PersistentFlags().StringVar(&flags.Output, "format", "", "")
	_ = cmd.PersistentFlags().MarkHidden("format")

	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false,
		"Minimal output")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false,
		"Verbose output")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false,
		"Disable colored output")

	return flags
}

// Parse reads the global flags from the root of cmd's hierarchy. Flags
// the root does not define read as their zero value.
func Parse(cmd *cobra.Command) (*Flags, error) {
	pf := cmd.Root().PersistentFlags()

	output, _ := pf.GetString("output")
	quiet, _ := pf.GetBool("quiet")
	verbose, _ := pf.GetBool("verbose")
	noColor, _ := pf.GetBool("no-color")

	if quiet && verbose {
		return nil, errors.NewValidationError("quiet", quiet, "--quiet and --verbose cannot be used together")
	}

	return &Flags{
		Output:  output,
		Quiet:   quiet,
		Verbose: verbose,
		NoColor: noColor,
	}, nil
}
