package formatter

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/api"
	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

func sampleViewModel() *view.ViewModel {
	return view.Build(&api.AnalysisResult{
		MainTrendStock:       "RELIANCE.NS",
		VarianceExplainedPct: 62.345,
		TotalVariance:        0.001234,
		TradingDays:          22,
		StockPrices: map[string]map[string]float64{
			"2024-01-30": {
				"RELIANCE.NS": 2890.1, "TCS.NS": 3601.2, "INFY.NS": 1502.3,
				"HDFCBANK.NS": 1451.4, "ITC.NS": 441.5,
			},
			"2024-01-31": {"RELIANCE.NS": 2900.5},
		},
		DailyReturns: map[string]map[string]float64{
			"2024-01-31": {"RELIANCE.NS": 0.0036},
		},
		Eigenvalues:  []float64{0.0008, 0.0003},
		Eigenvectors: [][]float64{{0.5, 0.5, 0.5, 0.4, 0.3}, {0.1, -0.2, 0.3, 0.1, -0.1}},
		TrendChart:   []byte("png"),
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: "text"},
		{format: ""},
		{format: "json"},
		{format: "markdown"},
		{format: "md"},
		{format: "csv"},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("format_"+tt.format, func(t *testing.T) {
			f, err := New(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f == nil {
				t.Fatal("expected a formatter")
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	output, err := NewText().Format(sampleViewModel())
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}

	text := string(output)
	for _, want := range []string{
		"Stock PCA Analysis",
		"Main Trend Stock: RELIANCE",
		"Variance Explained: 62.35%",
		"Trading Days: 22",
		"Recent Prices",
		"2024-01-31",
		"2900.50",
		"N/A",
		"Principal Components (* = primary)",
		"PC1 *",
		"PC2",
		"Daily Returns",
		"0.003600",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain '%s'", want)
		}
	}

	if strings.Contains(text, "PC2 *") {
		t.Error("only the first component should carry the primary marker")
	}
}

func TestTextFormatter_EmptyEigen(t *testing.T) {
	vm := sampleViewModel()
	vm.Eigen = nil
	vm.EigenEmpty = true

	output, err := NewText().Format(vm)
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if !strings.Contains(string(output), "no data") {
		t.Error("expected 'no data' placeholder for empty eigen table")
	}
}

func TestJSONFormatter(t *testing.T) {
	output, err := NewJSON().Format(sampleViewModel())
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}

	var decoded struct {
		Summary struct {
			MainTrendStock    string `json:"main_trend_stock"`
			MainTrendTicker   string `json:"main_trend_ticker"`
			VarianceExplained string `json:"variance_explained"`
			TradingDays       int    `json:"trading_days"`
		} `json:"summary"`
		Prices struct {
			Headers []string   `json:"headers"`
			Rows    [][]string `json:"rows"`
		} `json:"recent_prices"`
		Components []struct {
			Label   string `json:"label"`
			Primary bool   `json:"primary"`
		} `json:"principal_components"`
		Charts []string `json:"charts"`
	}
	if err := json.Unmarshal(output, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Summary.MainTrendStock != "RELIANCE" {
		t.Errorf("unexpected trend stock: %s", decoded.Summary.MainTrendStock)
	}
	if decoded.Summary.MainTrendTicker != "RELIANCE.NS" {
		t.Errorf("unexpected trend ticker: %s", decoded.Summary.MainTrendTicker)
	}
	if decoded.Summary.VarianceExplained != "62.35%" {
		t.Errorf("unexpected variance: %s", decoded.Summary.VarianceExplained)
	}
	if len(decoded.Prices.Rows) != 2 {
		t.Errorf("expected 2 price rows, got %d", len(decoded.Prices.Rows))
	}
	if len(decoded.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(decoded.Components))
	}
	if !decoded.Components[0].Primary || decoded.Components[1].Primary {
		t.Error("expected only the first component marked primary")
	}
	if len(decoded.Charts) != 1 || decoded.Charts[0] != "trend" {
		t.Errorf("unexpected charts: %v", decoded.Charts)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	output, err := NewMarkdown().Format(sampleViewModel())
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}

	md := string(output)
	for _, want := range []string{
		"# Stock PCA Analysis Report",
		"## Summary",
		"| Main Trend Stock | RELIANCE |",
		"## Recent Prices",
		"## Principal Components",
		"**PC1**",
		"## Daily Returns",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected output to contain '%s'", want)
		}
	}

	if strings.Contains(md, "**PC2**") {
		t.Error("only the primary component should be bolded")
	}
}

func TestCSVFormatter(t *testing.T) {
	output, err := NewCSV().Format(sampleViewModel())
	if err != nil {
		t.Fatalf("format failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(output))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][0] != "Date" || records[0][1] != "RELIANCE" {
		t.Errorf("unexpected header row: %v", records[0])
	}
	if records[2][0] != "2024-01-31" || records[2][1] != "2900.50" {
		t.Errorf("unexpected data row: %v", records[2])
	}
	if records[2][2] != view.NotAvailable {
		t.Errorf("expected sentinel for missing price, got '%s'", records[2][2])
	}
}
