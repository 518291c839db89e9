package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// jsonOutput is the machine-readable report structure
type jsonOutput struct {
	Summary    *summaryOutput    `json:"summary"`
	Prices     *tableOutput      `json:"recent_prices"`
	Components []componentOutput `json:"principal_components"`
	Charts     []string          `json:"charts,omitempty"`
}

type summaryOutput struct {
	MainTrendStock    string `json:"main_trend_stock"`
	MainTrendTicker   string `json:"main_trend_ticker"`
	VarianceExplained string `json:"variance_explained"`
	TotalVariance     string `json:"total_variance"`
	TradingDays       int    `json:"trading_days"`
}

type tableOutput struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Empty   bool       `json:"empty,omitempty"`
}

type componentOutput struct {
	Label      string   `json:"label"`
	Eigenvalue string   `json:"eigenvalue"`
	Loadings   []string `json:"loadings"`
	Primary    bool     `json:"primary"`
}

func (f *jsonFormatter) Format(vm *view.ViewModel) ([]byte, error) {
	output := &jsonOutput{
		Summary: &summaryOutput{
			MainTrendStock:    vm.Metrics.TrendStock,
			MainTrendTicker:   vm.Metrics.TrendTicker,
			VarianceExplained: vm.Metrics.VarianceExplained,
			TotalVariance:     vm.Metrics.TotalVariance,
			TradingDays:       vm.Metrics.TradingDays,
		},
		Prices: &tableOutput{
			Headers: vm.Prices.Headers,
			Rows:    vm.Prices.Rows,
			Empty:   vm.Prices.Placeholder,
		},
	}

	for _, row := range vm.Eigen {
		output.Components = append(output.Components, componentOutput{
			Label:      row.Label,
			Eigenvalue: row.Eigenvalue,
			Loadings:   row.Loadings,
			Primary:    row.Primary,
		})
	}

	for _, chart := range vm.Charts {
		output.Charts = append(output.Charts, chart.Name)
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}
