// Package main provides the jobdash CLI: the job application dashboard
// served over HTTP or printed to the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "jobdash",
	Short: "Job application dashboard backed by a Google Sheet",
	Long: "jobdash reads the Applications, Resume Library and Follow-Up Templates tabs of a " +
		"tracking spreadsheet and shows them as a filterable dashboard, either over HTTP (serve) " +
		"or in the terminal (list, stats, charts, export).",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print a summary of the spreadsheet load")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
