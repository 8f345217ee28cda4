package cmd

import (
	"musicapp/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the catalog HTTP server",
	Long:  `Start the music catalog HTTP server, serving the JSON API under /api`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
