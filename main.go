package main

import (
	"fmt"
	"os"

	"github.com/edugroup/site-api/app"
	"github.com/spf13/cobra"
)

// rootCmd serves the API when run without a subcommand
var rootCmd = &cobra.Command{
	Use:           "site-api",
	Short:         "Education group site and admin API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.SetupAndRunServer()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.SetupAndRunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(carouselCmd)
	rootCmd.AddCommand(contentCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
