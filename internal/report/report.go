// Package report builds per-item reports with a recommended strategy and
// aggregates them into the estate-level rollup (JSON and HTML).
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/estatedesk/intake/internal/pricing"
	"github.com/estatedesk/intake/pkg/catalog"
	"github.com/estatedesk/intake/pkg/comps"
)

// noteDelimiter joins the recommendation justifications into the notes field.
const noteDelimiter = " • "

// lowSellThroughThreshold is the sell-through rate below which demand is
// considered weak enough to favor quick liquidation.
const lowSellThroughThreshold = 0.40

// ItemReport is the immutable per-item analysis result: identity and
// condition, the comp stats that drove pricing, the three strategy quotes,
// and a single recommended strategy with human-readable justification.
type ItemReport struct {
	SKU            string            `json:"sku"`
	Title          string            `json:"title"`
	CategoryHint   catalog.Category  `json:"category_hint"`
	ConditionGrade catalog.Condition `json:"condition_grade"`
	Comp           comps.Stats       `json:"comp"`
	Quotes         []pricing.Quote   `json:"quotes"`
	Recommendation pricing.Strategy  `json:"recommendation"`
	Notes          string            `json:"notes,omitempty"`
}

// Quote returns the report's quote for the given strategy, or a zero quote
// when absent. Exported as a method so the HTML template can reach it.
func (r ItemReport) Quote(strategy pricing.Strategy) pricing.Quote {
	q, _ := pricing.QuoteFor(r.Quotes, strategy)
	return q
}

// BuildItemReport derives the recommendation from the quotes using a fixed
// decision order; the first matching rule wins:
//
//  1. The max-strategy premium over fair does not cover one month of
//     storage → recommend fair.
//  2. Sell-through below 40% signals weak demand → recommend quick.
//  3. Otherwise the single highest net proceeds wins, ties broken by the
//     explicit strategy priority order (quick, fair, max — first wins).
//
// Each fired rule contributes one justification line to Notes. The rules
// are exhaustive, but an empty Notes is tolerated rather than trusted away.
func BuildItemReport(item catalog.Item, stats comps.Stats, quotes []pricing.Quote, storageCostPerMonth float64) ItemReport {
	fair, _ := pricing.QuoteFor(quotes, pricing.StrategyFair)
	maxQ, _ := pricing.QuoteFor(quotes, pricing.StrategyMax)

	var recommendation pricing.Strategy
	var notes []string

	switch {
	case maxQ.EstNetProceeds-fair.EstNetProceeds < storageCostPerMonth:
		recommendation = pricing.StrategyFair
		notes = append(notes, "Max premium doesn't justify storage cost")
	case stats.SellThroughPct < lowSellThroughThreshold:
		recommendation = pricing.StrategyQuick
		notes = append(notes, fmt.Sprintf("Low sell-through rate (%.1f%%) suggests quick sale", stats.SellThroughPct*100))
	default:
		recommendation = bestNetStrategy(quotes)
		notes = append(notes, "Highest net proceeds strategy")
	}

	return ItemReport{
		SKU:            item.SKU,
		Title:          item.Title,
		CategoryHint:   item.CategoryHint,
		ConditionGrade: item.ConditionGrade,
		Comp:           stats,
		Quotes:         quotes,
		Recommendation: recommendation,
		Notes:          strings.Join(notes, noteDelimiter),
	}
}

// bestNetStrategy picks the strategy with the highest net proceeds. The
// scan follows the declared priority order and only a strictly greater net
// displaces the incumbent, so ties resolve to the earlier strategy.
func bestNetStrategy(quotes []pricing.Quote) pricing.Strategy {
	best := pricing.StrategyQuick
	bestNet := math.Inf(-1)
	for _, strategy := range pricing.Strategies() {
		q, ok := pricing.QuoteFor(quotes, strategy)
		if !ok {
			continue
		}
		if q.EstNetProceeds > bestNet {
			best = strategy
			bestNet = q.EstNetProceeds
		}
	}
	return best
}

// StrategyTotals aggregates one strategy's quotes across an estate.
type StrategyTotals struct {
	Gross  float64 `json:"gross"`
	Net    float64 `json:"net"`
	AvgDOM float64 `json:"avg_dom"`
}

// RollupTotals holds the per-strategy aggregates.
type RollupTotals struct {
	Quick StrategyTotals `json:"quick"`
	Fair  StrategyTotals `json:"fair"`
	Max   StrategyTotals `json:"max"`
}

// ByStrategy returns the totals for one strategy.
func (t RollupTotals) ByStrategy(strategy pricing.Strategy) StrategyTotals {
	switch strategy {
	case pricing.StrategyQuick:
		return t.Quick
	case pricing.StrategyFair:
		return t.Fair
	case pricing.StrategyMax:
		return t.Max
	default:
		return StrategyTotals{}
	}
}

// EstateRollup is the estate-level aggregation over all item reports.
type EstateRollup struct {
	Totals RollupTotals `json:"totals"`
	Items  []ItemReport `json:"items"`
}

// BuildEstateRollup sums each strategy's ask prices and net proceeds across
// the reports and averages days-on-market with a simple arithmetic mean. An
// empty report list yields all-zero totals.
func BuildEstateRollup(reports []ItemReport) EstateRollup {
	rollup := EstateRollup{Items: reports}
	if len(reports) == 0 {
		rollup.Items = []ItemReport{}
		return rollup
	}

	for _, strategy := range pricing.Strategies() {
		var gross, net float64
		var domTotal int
		for _, r := range reports {
			q, ok := pricing.QuoteFor(r.Quotes, strategy)
			if !ok {
				continue
			}
			gross += q.AskPrice
			net += q.EstNetProceeds
			domTotal += q.EstDOMDays
		}

		totals := StrategyTotals{
			Gross:  round2(gross),
			Net:    round2(net),
			AvgDOM: round1(float64(domTotal) / float64(len(reports))),
		}
		switch strategy {
		case pricing.StrategyQuick:
			rollup.Totals.Quick = totals
		case pricing.StrategyFair:
			rollup.Totals.Fair = totals
		case pricing.StrategyMax:
			rollup.Totals.Max = totals
		}
	}
	return rollup
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
