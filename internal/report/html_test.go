package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estatedesk/intake/internal/pricing"
	"github.com/estatedesk/intake/pkg/catalog"
	"github.com/estatedesk/intake/pkg/comps"
)

func renderedReport(t *testing.T, reports []ItemReport) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, BuildEstateRollup(reports)))
	return buf.String()
}

func TestRenderHTMLRows(t *testing.T) {
	stats := comps.Stats{
		SoldCount: 30, ActiveCount: 10, SellThroughPct: 0.75,
		MedianSold: 100, P10Sold: 70, P90Sold: 130, AvgDOMDays: 20,
	}
	item := catalog.Item{
		SKU:            "est1-001",
		Title:          "Brass Telescope",
		CategoryHint:   catalog.CategoryGeneric,
		ConditionGrade: catalog.ConditionExcellent,
	}
	quotes := pricing.QuotesFromComps(stats, 0.13, 0, 90)
	r := BuildItemReport(item, stats, quotes, 50)

	html := renderedReport(t, []ItemReport{r})

	assert.Contains(t, html, "est1-001")
	assert.Contains(t, html, "Brass Telescope")
	assert.Contains(t, html, "Excellent")
	assert.Contains(t, html, "$100.00") // median
	assert.Contains(t, html, "75.0%")   // sell-through
	assert.Contains(t, html, strings.ToUpper(string(r.Recommendation)))
	assert.Contains(t, html, "TOTALS")
}

func TestRenderHTMLEscapesUntrustedText(t *testing.T) {
	stats := comps.Stats{
		SoldCount: 30, ActiveCount: 10, SellThroughPct: 0.75,
		MedianSold: 100, P10Sold: 70, P90Sold: 130, AvgDOMDays: 20,
	}
	item := catalog.Item{
		SKU:            "est1-001",
		Title:          `<script>alert("pwned")</script>`,
		CategoryHint:   catalog.CategoryGeneric,
		ConditionGrade: catalog.ConditionGood,
	}
	quotes := pricing.QuotesFromComps(stats, 0.13, 0, 90)
	r := BuildItemReport(item, stats, quotes, 50)

	html := renderedReport(t, []ItemReport{r})

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderHTMLEmptyRollup(t *testing.T) {
	html := renderedReport(t, nil)

	assert.Contains(t, html, "Estate Inventory Report")
	assert.Contains(t, html, "$0.00 / $0.00 / 0.0d")
}
