package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	groupUtility    = "utility"
	groupUserFacing = "user"
)

var rootCmd = newRootCommand()

func Execute() error {
	return rootCmd.Execute()
}

func NewRootCommand() *cobra.Command {
	return newRootCommand()
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apirecord",
		Short: "Persist in-memory records against a remote HTTP API",
		Long: `apirecord maps record types declared in a configuration file onto the
endpoints of a remote API and drives their persistence lifecycle.

Use the CLI to:
  - fetch, create, update, and delete records of a configured type
  - send ad-hoc requests against the configured server
  - inspect and bootstrap the configuration file`,
		Example: `  # Fetch one record and print its attributes
  apirecord record get user 7

  # Create a record from an inline payload
  apirecord record create user --payload '{"name": "ada"}'

  # Bootstrap a configuration file interactively
  apirecord config init`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetHelpCommandGroupID(groupUtility)
	cmd.SetCompletionCommandGroupID(groupUtility)

	cmd.PersistentFlags().String("config", "", "Path to the configuration file (default ~/.apirecord/config.yaml)")
	cmd.PersistentFlags().Bool("verbose", false, "Log lifecycle and transport activity to stderr")

	cmd.AddGroup(&cobra.Group{ID: groupUserFacing, Title: "Commands:"})
	cmd.AddGroup(&cobra.Group{ID: groupUtility, Title: "Utility Commands:"})

	cmd.AddCommand(newRecordCommand())
	cmd.AddCommand(newRequestCommand())
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}
