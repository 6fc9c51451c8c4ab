package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	token  string
	dryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "padel-cli",
	Short: "A CLI to interact with the padel-draw server",
	Long: `A command-line interface for making requests to the various endpoints
of the padel-draw application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("PADEL_TOKEN"), "Bearer token sent with every request")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Ask the server not to persist or notify anything")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
