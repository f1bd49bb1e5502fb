package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Estate intake - priced liquidation reports from product photos",
	Long: `Intake converts a directory tree of per-case product photos and optional
hint files into priced, cached estate-liquidation reports.

Each case is fingerprinted for idempotent re-runs, analyzed against
comparable-sales statistics, priced under three strategies (quick, fair,
max), and rolled up into an estate-level report in JSON and HTML.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
