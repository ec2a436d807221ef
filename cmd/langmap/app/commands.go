package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/langmap/cmd/langmap/cmd/infer"
	"github.com/agentstation/langmap/cmd/langmap/cmd/list"
	"github.com/agentstation/langmap/cmd/langmap/cmd/load"
	"github.com/agentstation/langmap/cmd/langmap/cmd/report"
	"github.com/agentstation/langmap/cmd/langmap/cmd/resolve"
	"github.com/agentstation/langmap/cmd/langmap/cmd/show"
	"github.com/agentstation/langmap/cmd/langmap/cmd/signature"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	core := []*cobra.Command{
		load.NewCommand(a),
		resolve.NewCommand(a),
		show.NewCommand(a),
		list.NewCommand(a),
	}
	for _, cmd := range core {
		cmd.GroupID = "core"
		rootCmd.AddCommand(cmd)
	}

	management := []*cobra.Command{
		infer.NewCommand(a),
		report.NewCommand(a),
		signature.NewCommand(a),
	}
	for _, cmd := range management {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("langmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
