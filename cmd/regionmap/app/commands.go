package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/regionmap/cmd/regionmap/cmd/build"
	"github.com/agentstation/regionmap/cmd/regionmap/cmd/fetch"
	"github.com/agentstation/regionmap/cmd/regionmap/cmd/list"
	"github.com/agentstation/regionmap/cmd/regionmap/cmd/profile"
	"github.com/agentstation/regionmap/cmd/regionmap/cmd/validate"
	"github.com/agentstation/regionmap/cmd/regionmap/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(build.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(fetch.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(validate.NewCommand(a))
	rootCmd.AddCommand(profile.NewCommand(a))

	rootCmd.AddCommand(version.NewCommand(a))
}
