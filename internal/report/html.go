package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/estatedesk/intake/internal/pricing"
)

// estateTemplate renders the static estate report document: one row per
// item with each strategy's price/net/DOM triple, plus a totals footer.
// html/template's contextual autoescaping is deliberate — item titles and
// notes come from hint files and extraction adapters and must not be able
// to inject markup into the report.
const estateTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Estate Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        table { border-collapse: collapse; width: 100%; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        .number { text-align: right; }
        .totals { background-color: #f9f9f9; font-weight: bold; }
    </style>
</head>
<body>
    <h1>Estate Inventory Report</h1>
    <table>
        <thead>
            <tr>
                <th>SKU</th>
                <th>Title</th>
                <th>Condition</th>
                <th>Median Sold</th>
                <th>Sell-Through %</th>
                <th>Quick (Price / Net / Days)</th>
                <th>Fair (Price / Net / Days)</th>
                <th>Max (Price / Net / Days)</th>
                <th>Recommendation</th>
                <th>Notes</th>
            </tr>
        </thead>
        <tbody>
{{- range .Rows}}
            <tr>
                <td>{{.SKU}}</td>
                <td>{{.Title}}</td>
                <td>{{.Condition}}</td>
                <td class="number">{{.MedianSold}}</td>
                <td class="number">{{.SellThrough}}</td>
                <td class="number">{{.Quick}}</td>
                <td class="number">{{.Fair}}</td>
                <td class="number">{{.Max}}</td>
                <td><strong>{{.Recommendation}}</strong></td>
                <td>{{.Notes}}</td>
            </tr>
{{- end}}
        </tbody>
        <tfoot>
            <tr class="totals">
                <td colspan="5">TOTALS</td>
                <td class="number">{{.Totals.Quick}}</td>
                <td class="number">{{.Totals.Fair}}</td>
                <td class="number">{{.Totals.Max}}</td>
                <td colspan="2"></td>
            </tr>
        </tfoot>
    </table>
</body>
</html>
`

var estateTmpl = template.Must(template.New("estate_report").Parse(estateTemplate))

// estateView is the flattened, pre-formatted data the template consumes.
// Formatting happens here in Go so the template stays free of typed
// arguments; escaping of the string values stays with html/template.
type estateView struct {
	Rows   []estateRow
	Totals estateTotalsRow
}

type estateRow struct {
	SKU            string
	Title          string
	Condition      string
	MedianSold     string
	SellThrough    string
	Quick          string
	Fair           string
	Max            string
	Recommendation string
	Notes          string
}

type estateTotalsRow struct {
	Quick string
	Fair  string
	Max   string
}

// RenderHTML writes the estate report document for the rollup.
func RenderHTML(w io.Writer, rollup EstateRollup) error {
	view := estateView{
		Rows: make([]estateRow, 0, len(rollup.Items)),
		Totals: estateTotalsRow{
			Quick: formatTotalsTriple(rollup.Totals.Quick),
			Fair:  formatTotalsTriple(rollup.Totals.Fair),
			Max:   formatTotalsTriple(rollup.Totals.Max),
		},
	}

	for _, r := range rollup.Items {
		view.Rows = append(view.Rows, estateRow{
			SKU:            r.SKU,
			Title:          r.Title,
			Condition:      string(r.ConditionGrade),
			MedianSold:     fmt.Sprintf("$%.2f", r.Comp.MedianSold),
			SellThrough:    fmt.Sprintf("%.1f%%", r.Comp.SellThroughPct*100),
			Quick:          formatQuoteTriple(r.Quote(pricing.StrategyQuick)),
			Fair:           formatQuoteTriple(r.Quote(pricing.StrategyFair)),
			Max:            formatQuoteTriple(r.Quote(pricing.StrategyMax)),
			Recommendation: strings.ToUpper(string(r.Recommendation)),
			Notes:          r.Notes,
		})
	}

	if err := estateTmpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render estate report: %w", err)
	}
	return nil
}

// formatQuoteTriple renders "price / net / DOM" for one strategy quote.
func formatQuoteTriple(q pricing.Quote) string {
	return fmt.Sprintf("$%.2f / $%.2f / %dd", q.AskPrice, q.EstNetProceeds, q.EstDOMDays)
}

func formatTotalsTriple(t StrategyTotals) string {
	return fmt.Sprintf("$%.2f / $%.2f / %.1fd", t.Gross, t.Net, t.AvgDOM)
}
