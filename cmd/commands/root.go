package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recordlist",
		Short: "Record browsing backend: link browser, record lists and clipboard",
	}

	rootCmd.AddCommand(
		NewStartCommand(),
		NewConfigCommand(),
		NewVersionCommand(),
	)

	return rootCmd
}
