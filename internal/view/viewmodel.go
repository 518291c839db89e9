// Package view maps a decoded analysis into plain display data. Everything
// here is pure: no I/O, no terminal coupling, so the sorting, slicing, and
// formatting rules are testable on their own.
package view

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/api"
)

// NotAvailable is the sentinel rendered for a missing (date, ticker) price
const NotAvailable = "N/A"

// recentPriceDays is how many trailing dates the prices table shows
const recentPriceDays = 5

// Metrics holds the scalar summary displays
type Metrics struct {
	// TrendStock is the main trend ticker with its exchange suffix stripped
	TrendStock string

	// TrendTicker is the full ticker as reported by the backend
	TrendTicker string

	// VarianceExplained is pre-formatted as a percentage, e.g. "62.35%"
	VarianceExplained string

	// TotalVariance is pre-formatted, e.g. "0.001234"
	TotalVariance string

	// TradingDays is the number of trading days analyzed
	TradingDays int
}

// Table is a generic labeled grid. Placeholder is set when the source data
// was absent and the single row carries a "no data" cell instead.
type Table struct {
	Headers     []string
	Rows        [][]string
	Placeholder bool
}

// EigenRow pairs one principal component with its per-ticker loadings
type EigenRow struct {
	Label      string
	Eigenvalue string
	Loadings   []string

	// Primary marks the largest-variance component (row 0)
	Primary bool
}

// Chart is a decoded chart image plus its display name
type Chart struct {
	Name string
	PNG  []byte
}

// ViewModel is the plain-data projection of one analysis result
type ViewModel struct {
	Metrics    Metrics
	Prices     Table
	Returns    Table
	Eigen      []EigenRow
	EigenEmpty bool
	Covariance Table
	Charts     []Chart
}

// Build projects an analysis result into display data. The result is owned
// wholesale by the caller and replaced on the next successful analysis.
func Build(result *api.AnalysisResult) *ViewModel {
	vm := &ViewModel{
		Metrics:    buildMetrics(result),
		Prices:     buildDateTable(result.StockPrices, 2),
		Returns:    buildDateTable(result.DailyReturns, 6),
		Covariance: buildCovarianceTable(result.CovarianceMatrix),
		Charts:     buildCharts(result),
	}
	vm.Eigen, vm.EigenEmpty = buildEigenRows(result.Eigenvalues, result.Eigenvectors)
	return vm
}

func buildMetrics(result *api.AnalysisResult) Metrics {
	return Metrics{
		TrendStock:        ShortTicker(result.MainTrendStock),
		TrendTicker:       result.MainTrendStock,
		VarianceExplained: decimalString(result.VarianceExplainedPct, 2) + "%",
		TotalVariance:     decimalString(result.TotalVariance, 6),
		TradingDays:       result.TradingDays,
	}
}

// buildDateTable renders the last recentPriceDays distinct dates in ascending
// order, one fixed-order ticker column each. Missing values render the
// NotAvailable sentinel rather than erroring. Prices and daily returns share
// this shape and differ only in decimal places.
func buildDateTable(data map[string]map[string]float64, places int) Table {
	headers := append([]string{"Date"}, shortTickers()...)

	if len(data) == 0 {
		return placeholderTable(headers)
	}

	dates := make([]string, 0, len(data))
	for date := range data {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if len(dates) > recentPriceDays {
		dates = dates[len(dates)-recentPriceDays:]
	}

	rows := make([][]string, 0, len(dates))
	for _, date := range dates {
		row := make([]string, 0, len(api.Tickers)+1)
		row = append(row, date)
		for _, ticker := range api.Tickers {
			value, ok := data[date][ticker]
			if !ok {
				row = append(row, NotAvailable)
				continue
			}
			row = append(row, decimalString(value, places))
		}
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}
}

// buildEigenRows labels components PC1..PCn and flags the first row as the
// primary (largest-variance) component.
func buildEigenRows(eigenvalues []float64, eigenvectors [][]float64) ([]EigenRow, bool) {
	if len(eigenvalues) == 0 || len(eigenvectors) == 0 {
		return nil, true
	}

	rows := make([]EigenRow, 0, len(eigenvalues))
	for i, value := range eigenvalues {
		row := EigenRow{
			Label:      fmt.Sprintf("PC%d", i+1),
			Eigenvalue: decimalString(value, 6),
			Primary:    i == 0,
		}
		if i < len(eigenvectors) {
			row.Loadings = make([]string, 0, len(eigenvectors[i]))
			for _, loading := range eigenvectors[i] {
				row.Loadings = append(row.Loadings, decimalString(loading, 4))
			}
		}
		rows = append(rows, row)
	}

	return rows, false
}

// EigenHeaders returns the eigen table column labels: component, eigenvalue,
// then one loading column per ticker.
func EigenHeaders() []string {
	return append([]string{"Component", "Eigenvalue"}, shortTickers()...)
}

func buildCovarianceTable(matrix map[string]map[string]float64) Table {
	headers := append([]string{""}, shortTickers()...)

	if len(matrix) == 0 {
		return placeholderTable(headers)
	}

	rows := make([][]string, 0, len(api.Tickers))
	for _, rowTicker := range api.Tickers {
		row := make([]string, 0, len(api.Tickers)+1)
		row = append(row, ShortTicker(rowTicker))
		for _, colTicker := range api.Tickers {
			value, ok := matrix[rowTicker][colTicker]
			if !ok {
				row = append(row, NotAvailable)
				continue
			}
			row = append(row, decimalString(value, 6))
		}
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}
}

func buildCharts(result *api.AnalysisResult) []Chart {
	var charts []Chart
	if len(result.TrendChart) > 0 {
		charts = append(charts, Chart{Name: "trend", PNG: result.TrendChart})
	}
	if len(result.ReturnsChart) > 0 {
		charts = append(charts, Chart{Name: "returns", PNG: result.ReturnsChart})
	}
	if len(result.CorrelationChart) > 0 {
		charts = append(charts, Chart{Name: "correlation", PNG: result.CorrelationChart})
	}
	return charts
}

func placeholderTable(headers []string) Table {
	row := make([]string, len(headers))
	row[0] = "no data"
	for i := 1; i < len(row); i++ {
		row[i] = ""
	}
	return Table{Headers: headers, Rows: [][]string{row}, Placeholder: true}
}

// decimalString renders v rounded half-up at the given number of decimal
// places. %f rounds the binary value, so a wire value like 62.345 (stored as
// 62.34499...) would render "62.34"; rounding the shortest decimal form keeps
// the digits the backend sent.
func decimalString(v float64, places int) string {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return strconv.FormatFloat(v, 'f', places, 64)
	}
	return r.FloatString(places)
}

// ShortTicker strips the exchange suffix for display ("RELIANCE.NS" -> "RELIANCE")
func ShortTicker(ticker string) string {
	if i := strings.Index(ticker, "."); i > 0 {
		return ticker[:i]
	}
	return ticker
}

func shortTickers() []string {
	short := make([]string, 0, len(api.Tickers))
	for _, t := range api.Tickers {
		short = append(short, ShortTicker(t))
	}
	return short
}
