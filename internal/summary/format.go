// Package summary formats batch manifests and item reports for terminal
// display and machine consumption.
package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/estatedesk/intake/internal/pipeline"
	"github.com/estatedesk/intake/internal/pricing"
	"github.com/estatedesk/intake/internal/report"
)

// FormatManifestTable writes the batch manifest as a fixed-width table:
// one row per case with its terminal status, item count and fingerprint.
// Returns the number of cases formatted.
func FormatManifestTable(w io.Writer, manifest pipeline.Manifest) int {
	if len(manifest.Cases) == 0 {
		fmt.Fprintf(w, "No cases found under '%s'\n", manifest.ProductsDir)
		return 0
	}

	fmt.Fprintf(w, "%-20s %-10s %-6s %-12s %s\n",
		"CASE", "STATUS", "ITEMS", "FINGERPRINT", "DETAIL")
	fmt.Fprintf(w, "%-20s %-10s %-6s %-12s %s\n",
		"--------------------", "----------", "------", "------------", "------------------------------")

	var failed int
	for _, c := range manifest.Cases {
		if c.Failed() {
			failed++
		}
		fmt.Fprintf(w, "%-20s %-10s %-6d %-12s %s\n",
			truncate(c.CaseID, 20),
			caseStatus(c),
			c.ItemCount,
			shortFingerprint(c.Fingerprint),
			truncate(c.Error, 60),
		)
	}

	caseWord := "case"
	if len(manifest.Cases) != 1 {
		caseWord = "cases"
	}
	fmt.Fprintf(w, "\n%d %s processed, %d failed\n", len(manifest.Cases), caseWord, failed)
	return len(manifest.Cases)
}

// FormatReportTable writes a case's item reports as a fixed-width table:
// per item its condition, median, sell-through and the recommended
// strategy's ask/net/DOM.
func FormatReportTable(w io.Writer, caseID string, reports []report.ItemReport) int {
	if len(reports) == 0 {
		fmt.Fprintf(w, "No item reports found for case '%s'\n", caseID)
		return 0
	}

	fmt.Fprintf(w, "Item reports for case '%s':\n\n", caseID)
	fmt.Fprintf(w, "%-24s %-12s %-10s %-8s %-6s %-28s %s\n",
		"SKU", "CONDITION", "MEDIAN", "SELL-THR", "REC", "ASK / NET / DOM", "TITLE")
	fmt.Fprintf(w, "%-24s %-12s %-10s %-8s %-6s %-28s %s\n",
		"------------------------", "------------", "----------", "--------", "------", "----------------------------", "------------------------")

	for _, r := range reports {
		rec := r.Quote(r.Recommendation)
		fmt.Fprintf(w, "%-24s %-12s %-10s %-8s %-6s %-28s %s\n",
			truncate(r.SKU, 24),
			truncate(string(r.ConditionGrade), 12),
			fmt.Sprintf("$%.2f", r.Comp.MedianSold),
			fmt.Sprintf("%.1f%%", r.Comp.SellThroughPct*100),
			strings.ToUpper(string(r.Recommendation)),
			fmt.Sprintf("$%.2f / $%.2f / %dd", rec.AskPrice, rec.EstNetProceeds, rec.EstDOMDays),
			truncate(r.Title, 40),
		)
	}

	itemWord := "item"
	if len(reports) != 1 {
		itemWord = "items"
	}
	fmt.Fprintf(w, "\n%d %s\n", len(reports), itemWord)
	return len(reports)
}

// FormatRollupTotals writes the estate rollup's per-strategy totals.
func FormatRollupTotals(w io.Writer, rollup report.EstateRollup) {
	fmt.Fprintf(w, "%-8s %-12s %-12s %s\n", "STRATEGY", "GROSS", "NET", "AVG DOM")
	for _, strategy := range pricing.Strategies() {
		t := rollup.Totals.ByStrategy(strategy)
		fmt.Fprintf(w, "%-8s %-12s %-12s %.1fd\n",
			strings.ToUpper(string(strategy)),
			fmt.Sprintf("$%.2f", t.Gross),
			fmt.Sprintf("$%.2f", t.Net),
			t.AvgDOM,
		)
	}
}

// FormatJSONL writes each report as a single compact JSON object per line,
// suitable for streaming into tools like jq.
func FormatJSONL(w io.Writer, reports []report.ItemReport) error {
	for _, r := range reports {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal item report: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// FormatSingleJSON pretty-prints one value (manifest, rollup or report).
func FormatSingleJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

// caseStatus maps a case result to its display status.
func caseStatus(c pipeline.CaseResult) string {
	switch {
	case c.Failed():
		return "FAILED"
	case c.CacheHit:
		return "cached"
	default:
		return "ok"
	}
}

// shortFingerprint truncates a fingerprint to its first 12 hex characters.
func shortFingerprint(fp string) string {
	if fp == "" {
		return "-"
	}
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}

// truncate shortens s to at most n characters with a trailing ellipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
