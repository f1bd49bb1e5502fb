// Package pricing converts comparable-sales statistics into the three
// fixed-policy strategy quotes (quick, fair, max).
package pricing

import (
	"math"

	"github.com/estatedesk/intake/pkg/comps"
)

// Strategy is one of the three pricing postures.
type Strategy string

const (
	// StrategyQuick prices for a fast sale at a discount.
	StrategyQuick Strategy = "quick"

	// StrategyFair prices at the market median.
	StrategyFair Strategy = "fair"

	// StrategyMax prices for a patient sale at a premium.
	StrategyMax Strategy = "max"
)

// Strategies returns the three strategies in priority order. This order is
// load-bearing: it is both the quote output order and the explicit
// tie-break order used by the recommendation heuristic.
func Strategies() []Strategy {
	return []Strategy{StrategyQuick, StrategyFair, StrategyMax}
}

// Quote is one strategy's price and timing estimate for an item.
// Monetary fields are rounded to two decimal places; within that rounding,
// EstNetProceeds = AskPrice − EstFees − EstShippingCost.
type Quote struct {
	Strategy        Strategy `json:"strategy"`
	AskPrice        float64  `json:"ask_price"`
	EstDOMDays      int      `json:"est_dom_days"`
	FeePct          float64  `json:"fee_pct"`
	EstFees         float64  `json:"est_fees"`
	EstShippingCost float64  `json:"est_shipping_cost"`
	EstNetProceeds  float64  `json:"est_net_proceeds"`
}

// QuotesFromComps converts comp stats into the quick, fair and max quotes,
// in that order. The pricing policy is fixed:
//
//	quick ask = max(p10, 0.80·median)     quick DOM = max(3, ⌊0.5·avgDOM⌋)
//	fair  ask = median                    fair  DOM = ⌊avgDOM⌋
//	max   ask = min(p90, 1.20·median)     max   DOM = min(cap, ⌊1.75·avgDOM⌋)
//
// For any stats passing comps.Stats.Validate (and avgDOM ≥ 3, which every
// realistic market window satisfies), ask price and DOM are non-decreasing
// from quick to max. Rounding to two decimal places happens only at this
// output boundary; intermediate math keeps full float precision. Invalid
// stats are a caller contract violation and are not detected here.
func QuotesFromComps(stats comps.Stats, feePct, shippingCost float64, domCapDays int) []Quote {
	quickPrice := math.Max(stats.P10Sold, 0.80*stats.MedianSold)
	fairPrice := stats.MedianSold
	maxPrice := math.Min(stats.P90Sold, 1.20*stats.MedianSold)

	quickDOM := max(3, int(math.Floor(0.5*stats.AvgDOMDays)))
	fairDOM := int(math.Floor(stats.AvgDOMDays))
	maxDOM := min(domCapDays, int(math.Floor(1.75*stats.AvgDOMDays)))

	quotes := make([]Quote, 0, 3)
	for _, q := range []struct {
		strategy Strategy
		price    float64
		dom      int
	}{
		{StrategyQuick, quickPrice, quickDOM},
		{StrategyFair, fairPrice, fairDOM},
		{StrategyMax, maxPrice, maxDOM},
	} {
		fees := q.price * feePct
		net := q.price - fees - shippingCost

		quotes = append(quotes, Quote{
			Strategy:        q.strategy,
			AskPrice:        round2(q.price),
			EstDOMDays:      q.dom,
			FeePct:          feePct,
			EstFees:         round2(fees),
			EstShippingCost: shippingCost,
			EstNetProceeds:  round2(net),
		})
	}
	return quotes
}

// QuoteFor returns the quote matching the given strategy, if present.
func QuoteFor(quotes []Quote, strategy Strategy) (Quote, bool) {
	for _, q := range quotes {
		if q.Strategy == strategy {
			return q, true
		}
	}
	return Quote{}, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
