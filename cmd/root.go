package cmd

import (
	"fmt"
	"os"

	"musicapp/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "musicapp",
	Short: "Music catalog API for musicians, albums and tracks.",
	Run: func(cmd *cobra.Command, args []string) {
		// Running the binary without a subcommand starts the server.
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
