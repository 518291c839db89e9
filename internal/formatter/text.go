package formatter

import (
	"fmt"
	"strings"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

// textFormatter formats output as plain text with box-drawing accents
type textFormatter struct{}

// NewText creates a new text formatter
func NewText() Formatter {
	return &textFormatter{}
}

func (f *textFormatter) Format(vm *view.ViewModel) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeMetrics(&b, vm.Metrics)
	f.writeTable(&b, "Recent Prices", vm.Prices)
	f.writeEigenTable(&b, vm)

	if !vm.Returns.Placeholder {
		f.writeTable(&b, "Daily Returns", vm.Returns)
	}

	if !vm.Covariance.Placeholder {
		f.writeTable(&b, "Covariance Matrix", vm.Covariance)
	}

	if len(vm.Charts) > 0 {
		names := make([]string, 0, len(vm.Charts))
		for _, chart := range vm.Charts {
			names = append(names, chart.Name)
		}
		fmt.Fprintf(&b, "Charts received: %s\n", strings.Join(names, ", "))
	}

	return []byte(b.String()), nil
}

func (f *textFormatter) writeHeader(b *strings.Builder) {
	header := "Stock PCA Analysis"
	b.WriteString("╔" + strings.Repeat("═", len(header)+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", len(header)+2) + "╝\n\n")
}

func (f *textFormatter) writeMetrics(b *strings.Builder, m view.Metrics) {
	b.WriteString("Summary\n")
	fmt.Fprintf(b, "├─ Main Trend Stock: %s\n", m.TrendStock)
	fmt.Fprintf(b, "├─ Variance Explained: %s\n", m.VarianceExplained)
	fmt.Fprintf(b, "├─ Total Variance: %s\n", m.TotalVariance)
	fmt.Fprintf(b, "└─ Trading Days: %d\n\n", m.TradingDays)
}

func (f *textFormatter) writeTable(b *strings.Builder, title string, t view.Table) {
	fmt.Fprintf(b, "%s\n", title)

	widths := columnWidths(t.Headers, t.Rows)
	writePaddedRow(b, t.Headers, widths)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		writePaddedRow(b, row, widths)
	}
	b.WriteString("\n")
}

func (f *textFormatter) writeEigenTable(b *strings.Builder, vm *view.ViewModel) {
	headers := view.EigenHeaders()

	if vm.EigenEmpty {
		f.writeTable(b, "Principal Components", view.Table{
			Headers: headers,
			Rows:    [][]string{{"no data"}},
		})
		return
	}

	rows := make([][]string, 0, len(vm.Eigen))
	for _, row := range vm.Eigen {
		label := row.Label
		if row.Primary {
			label += " *"
		}
		cells := append([]string{label, row.Eigenvalue}, row.Loadings...)
		rows = append(rows, cells)
	}

	f.writeTable(b, "Principal Components (* = primary)", view.Table{Headers: headers, Rows: rows})
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func writePaddedRow(b *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		width := len(cell)
		if i < len(widths) {
			width = widths[i]
		}
		fmt.Fprintf(b, "%-*s", width, cell)
	}
	b.WriteString("\n")
}
