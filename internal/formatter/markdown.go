package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(vm *view.ViewModel) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Stock PCA Analysis Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	f.writeSummaryTable(&b, vm.Metrics)
	f.writeMarkdownTable(&b, "Recent Prices", vm.Prices.Headers, vm.Prices.Rows)
	f.writeEigenSection(&b, vm)

	if !vm.Returns.Placeholder {
		f.writeMarkdownTable(&b, "Daily Returns", vm.Returns.Headers, vm.Returns.Rows)
	}

	if !vm.Covariance.Placeholder {
		f.writeMarkdownTable(&b, "Covariance Matrix", vm.Covariance.Headers, vm.Covariance.Rows)
	}

	return []byte(b.String()), nil
}

// writeSummaryTable writes the metric summary table
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, m view.Metrics) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Main Trend Stock | %s |\n", m.TrendStock)
	fmt.Fprintf(b, "| Variance Explained | %s |\n", m.VarianceExplained)
	fmt.Fprintf(b, "| Total Variance | %s |\n", m.TotalVariance)
	fmt.Fprintf(b, "| Trading Days | %d |\n\n", m.TradingDays)
}

// writeEigenSection writes the eigenvalue/eigenvector table, bolding the
// primary component row
func (f *markdownFormatter) writeEigenSection(b *strings.Builder, vm *view.ViewModel) {
	headers := view.EigenHeaders()

	if vm.EigenEmpty {
		f.writeMarkdownTable(b, "Principal Components", headers, [][]string{{"no data"}})
		return
	}

	rows := make([][]string, 0, len(vm.Eigen))
	for _, row := range vm.Eigen {
		label := row.Label
		if row.Primary {
			label = "**" + label + "**"
		}
		rows = append(rows, append([]string{label, row.Eigenvalue}, row.Loadings...))
	}

	f.writeMarkdownTable(b, "Principal Components", headers, rows)
}

func (f *markdownFormatter) writeMarkdownTable(b *strings.Builder, title string, headers []string, rows [][]string) {
	fmt.Fprintf(b, "## %s\n\n", title)

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	separators := make([]string, len(headers))
	for i := range separators {
		separators[i] = "---"
	}
	b.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range rows {
		// Pad short rows so the table stays rectangular
		cells := make([]string, len(headers))
		copy(cells, row)
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	b.WriteString("\n")
}
