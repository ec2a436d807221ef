package output

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/langmap/internal/cmd/globals"
)

// FormatFor returns the format requested by the root --output flag, or
// fallback when the flag is unset.
func FormatFor(cmd *cobra.Command, fallback string) (Format, error) {
	flags, err := globals.Parse(cmd)
	if err != nil {
		return "", err
	}
	requested := flags.Output
	if requested == "" {
		requested = fallback
	}
	format, err := ParseFormat(requested)
	if err != nil {
		return "", err
	}
	if format == "" {
		return DetectFormat(""), nil
	}
	return format, nil
}
