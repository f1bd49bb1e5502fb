package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/estatedesk/intake/internal/pipeline"
	"github.com/estatedesk/intake/internal/printer"
	"github.com/estatedesk/intake/internal/report"
	"github.com/estatedesk/intake/internal/resolver"
	"github.com/estatedesk/intake/internal/summary"
)

var (
	showResults string
	showJSON    bool
)

var showCmd = &cobra.Command{
	Use:   "show [case] [sku]",
	Short: "Display a stored batch manifest, case report, or item report",
	Long: `Display previously written pipeline results.

With no arguments, shows the batch manifest. With a case id, shows that
case's item reports and rollup totals. With a case id and a SKU (or unique
SKU prefix, minimum 6 characters), shows the single item report.

Use --json for machine-readable output (JSONL for case reports).`,
	Args: cobra.MaximumNArgs(2),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showResults, "results", "results", "Results directory path")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return showManifest()
	case 1:
		return showCase(args[0])
	default:
		return showItem(args[0], args[1])
	}
}

func showManifest() error {
	var manifest pipeline.Manifest
	if err := readJSON(filepath.Join(showResults, "manifest.json"), &manifest); err != nil {
		return printer.Error(
			"no manifest found",
			fmt.Sprintf("Error: %v", err),
			[]string{"Run the pipeline first:\n  intake run --products <dir> --results " + showResults},
		)
	}

	if showJSON {
		return summary.FormatSingleJSON(os.Stdout, manifest)
	}
	summary.FormatManifestTable(os.Stdout, manifest)
	return nil
}

func showCase(caseID string) error {
	rollup, err := readRollup(caseID)
	if err != nil {
		return err
	}

	if showJSON {
		return summary.FormatJSONL(os.Stdout, rollup.Items)
	}
	summary.FormatReportTable(os.Stdout, caseID, rollup.Items)
	printer.Println()
	summary.FormatRollupTotals(os.Stdout, rollup)
	return nil
}

func showItem(caseID, skuRef string) error {
	rollup, err := readRollup(caseID)
	if err != nil {
		return err
	}

	sku, err := resolver.ResolveSKU(rollup.Items, skuRef)
	if err != nil {
		var ambiguous *resolver.AmbiguousError
		if resolver.IsAmbiguousError(err) {
			ambiguous = err.(*resolver.AmbiguousError)
			fmt.Fprintln(os.Stderr, resolver.FormatAmbiguousError(ambiguous))
			return fmt.Errorf("ambiguous SKU prefix '%s'", skuRef)
		}
		return err
	}

	for _, r := range rollup.Items {
		if r.SKU == sku {
			return summary.FormatSingleJSON(os.Stdout, r)
		}
	}
	return fmt.Errorf("no item report for SKU %s", sku)
}

// readRollup loads a case's persisted estate report.
func readRollup(caseID string) (report.EstateRollup, error) {
	var rollup report.EstateRollup
	path := filepath.Join(showResults, caseID, "estate_report.json")
	if err := readJSON(path, &rollup); err != nil {
		return report.EstateRollup{}, printer.Error(
			fmt.Sprintf("no estate report for case '%s'", caseID),
			fmt.Sprintf("Error: %v", err),
			[]string{
				"List processed cases:\n  intake show --results " + showResults,
				"Process the case first:\n  intake run --products <dir> --results " + showResults,
			},
		)
	}
	return rollup, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
