package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

const latencyPrecision = time.Millisecond

var (
	primaryColor   = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	secondaryColor = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	successColor   = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	errorColor     = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}

	titleStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(secondaryColor)
	valueStyle = lipgloss.NewStyle().Bold(true)

	headerRowStyle  = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	primaryRowStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Foreground(errorColor).
			Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)
)

// View renders the current state
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderInputs(),
		"",
	}

	switch m.state {
	case StateLoading:
		sections = append(sections, fmt.Sprintf("%s Analyzing...", m.spin.View()))
	case StateErrorShown:
		sections = append(sections, m.renderError())
	case StateDisplaying:
		sections = append(sections, m.renderResults())
	}

	sections = append(sections, "", m.renderHelp())

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("Stock PCA Analyzer")

	var status string
	switch m.status {
	case StatusOnline:
		status = lipgloss.NewStyle().Foreground(successColor).Render("● Online")
		if m.latency != "" {
			status += labelStyle.Render(" (" + m.latency + ")")
		}
	case StatusOffline:
		status = lipgloss.NewStyle().Foreground(errorColor).Render("● Offline")
	default:
		status = labelStyle.Render("● Checking...")
	}

	return title + "  " + status + "\n"
}

func (m *Model) renderInputs() string {
	start := labelStyle.Render("Start: ") + m.startInput.View()
	end := labelStyle.Render("End: ") + m.endInput.View()
	return start + "    " + end
}

func (m *Model) renderError() string {
	return errorBoxStyle.Render(m.errMsg) + "\n" +
		labelStyle.Render("Press esc to dismiss")
}

func (m *Model) renderResults() string {
	if m.vm == nil {
		return labelStyle.Render("No analysis available")
	}

	sections := []string{
		m.renderMetrics(),
		"",
		titleStyle.Render("Recent Prices"),
		renderTable(m.vm.Prices.Headers, m.vm.Prices.Rows, -1),
		"",
		titleStyle.Render("Principal Components"),
		m.renderEigenTable(),
	}

	if len(m.savedPaths) > 0 {
		sections = append(sections, "",
			labelStyle.Render("Charts saved: "+strings.Join(m.savedPaths, ", ")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderMetrics() string {
	metrics := m.vm.Metrics
	parts := []string{
		labelStyle.Render("Trend Stock ") + valueStyle.Render(metrics.TrendStock),
		labelStyle.Render("Variance Explained ") + valueStyle.Render(metrics.VarianceExplained),
		labelStyle.Render("Total Variance ") + valueStyle.Render(metrics.TotalVariance),
		labelStyle.Render("Trading Days ") + valueStyle.Render(fmt.Sprintf("%d", metrics.TradingDays)),
	}
	return strings.Join(parts, labelStyle.Render("  │  "))
}

func (m *Model) renderEigenTable() string {
	headers := view.EigenHeaders()

	if m.vm.EigenEmpty {
		return renderTable(headers, [][]string{{"no data"}}, -1)
	}

	rows := make([][]string, 0, len(m.vm.Eigen))
	primaryRow := -1
	for i, row := range m.vm.Eigen {
		if row.Primary {
			primaryRow = i
		}
		rows = append(rows, append([]string{row.Label, row.Eigenvalue}, row.Loadings...))
	}

	return renderTable(headers, rows, primaryRow)
}

func (m *Model) renderHelp() string {
	return labelStyle.Render("enter analyze • tab switch field • esc quit • ctrl+c force quit")
}

// renderTable lays out a padded grid; highlightRow (if >= 0) is rendered in
// the primary-component style.
func renderTable(headers []string, rows [][]string, highlightRow int) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString(headerRowStyle.Render(padRow(headers, widths)))
	b.WriteString("\n")

	for i, row := range rows {
		line := padRow(row, widths)
		if i == highlightRow {
			line = primaryRowStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func padRow(cells []string, widths []int) string {
	parts := make([]string, 0, len(cells))
	for i, cell := range cells {
		width := lipgloss.Width(cell)
		if i < len(widths) {
			width = widths[i]
		}
		parts = append(parts, fmt.Sprintf("%-*s", width, cell))
	}
	return strings.Join(parts, "  ")
}
