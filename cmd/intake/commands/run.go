package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/estatedesk/intake/internal/config"
	"github.com/estatedesk/intake/internal/pipeline"
	"github.com/estatedesk/intake/internal/printer"
	"github.com/estatedesk/intake/internal/summary"
)

var (
	runProducts string
	runResults  string
	runConfig   string
	runForce    bool
	runDryRun   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every case under the products directory",
	Long: `Process every case directory under --products and write the reports
under --results.

Unchanged cases (identical file listing, sizes, timestamps and hints) are
skipped via the fingerprint cache; use --force to reprocess them. A failing
case is recorded in the batch manifest and does not stop later cases.

Examples:
  # Process all cases
  intake run --products ./products --results ./results

  # Reprocess everything, ignoring the cache
  intake run --products ./products --results ./results --force

  # Compute without writing anything
  intake run --products ./products --results ./results --dry-run`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runProducts, "products", "", "Products directory path (required)")
	runCmd.Flags().StringVar(&runResults, "results", "", "Results output directory path (required)")
	runCmd.Flags().StringVar(&runConfig, "config", "", "Optional config file path")
	runCmd.Flags().BoolVar(&runForce, "force", false, "Ignore the fingerprint cache and reprocess")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Compute everything but write nothing")
	runCmd.MarkFlagRequired("products")
	runCmd.MarkFlagRequired("results")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if _, err := os.Stat(runProducts); err != nil {
		return printer.Error(
			fmt.Sprintf("products directory not found: %s", runProducts),
			"The products directory must exist and contain one subdirectory per case.",
			[]string{"Create a starter workspace:\n  intake init"},
		)
	}

	cfg, err := config.Load(runConfig)
	if err != nil {
		return printer.Error(
			"invalid configuration",
			fmt.Sprintf("Error: %v", err),
			[]string{"Generate a valid starting point:\n  intake init"},
		)
	}

	if runDryRun {
		printer.Warning("Dry run: nothing will be written\n")
	}
	printer.Step("Processing cases under %s\n", runProducts)

	p := pipeline.New(cfg, pipeline.Options{Force: runForce, DryRun: runDryRun})
	manifest, err := p.Run(ctx, runProducts, runResults)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	printer.Println()
	summary.FormatManifestTable(os.Stdout, manifest)

	failed := 0
	for _, c := range manifest.Cases {
		if c.Failed() {
			failed++
		}
	}
	if failed > 0 {
		printer.Warning("%d of %d cases failed; see the manifest for details\n", failed, len(manifest.Cases))
	} else if !runDryRun {
		printer.Success("Manifest written to %s\n", manifest.ResultsDir+"/manifest.json")
	}
	return nil
}
