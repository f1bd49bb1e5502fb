// Package comps defines the comparable-sales statistics contract between
// the intake pipeline and market-data providers, plus a deterministic stub
// provider suitable for offline runs and tests.
package comps

import (
	"context"
	"fmt"

	"github.com/estatedesk/intake/pkg/catalog"
)

// Stats summarizes comparable sales for one item over a lookback window.
type Stats struct {
	SoldCount      int     `json:"sold_count"`
	ActiveCount    int     `json:"active_count"`
	SellThroughPct float64 `json:"sell_through_pct"`
	MedianSold     float64 `json:"median_sold"`
	P10Sold        float64 `json:"p10_sold"`
	P90Sold        float64 `json:"p90_sold"`
	AvgDOMDays     float64 `json:"avg_dom_days"`
}

// Validate enforces the Stats invariants: percentile ordering
// (p10 ≤ median ≤ p90), sell-through within [0, 1], and non-negative
// counts and days-on-market. The pricing engine assumes its input has
// passed this check.
func (s Stats) Validate() error {
	if s.SoldCount < 0 || s.ActiveCount < 0 {
		return fmt.Errorf("negative listing counts (sold=%d, active=%d)", s.SoldCount, s.ActiveCount)
	}
	if s.SellThroughPct < 0 || s.SellThroughPct > 1 {
		return fmt.Errorf("sell_through_pct %.3f outside [0, 1]", s.SellThroughPct)
	}
	if s.P10Sold < 0 {
		return fmt.Errorf("negative sold prices (p10=%.2f, median=%.2f)", s.P10Sold, s.MedianSold)
	}
	if s.P10Sold > s.MedianSold || s.MedianSold > s.P90Sold {
		return fmt.Errorf("percentile ordering violated: p10=%.2f median=%.2f p90=%.2f",
			s.P10Sold, s.MedianSold, s.P90Sold)
	}
	if s.AvgDOMDays < 0 {
		return fmt.Errorf("negative avg_dom_days %.2f", s.AvgDOMDays)
	}
	return nil
}

// Provider fetches comparable-sales statistics for an item. Implementations
// must either return or fail within bounded time; the pipeline issues one
// concurrent fetch per item of a case and imposes no timeout of its own.
// To support idempotent pipeline runs, a provider should be deterministic
// for a given item identity (SKU + title).
type Provider interface {
	Stats(ctx context.Context, item catalog.Item, windowDays int) (Stats, error)
}
