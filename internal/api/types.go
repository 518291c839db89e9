package api

import (
	"time"
)

// DateFormat is the wire format for analysis dates
const DateFormat = "2006-01-02"

// Tickers is the fixed set of equities the backend analyzes, in display order
var Tickers = []string{"RELIANCE.NS", "TCS.NS", "INFY.NS", "HDFCBANK.NS", "ITC.NS"}

// DateRange is an analysis window. Start must precede End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate checks the range invariant
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return NewError(KindValidation, "analyze", "both start and end dates are required")
	}
	if !r.Start.Before(r.End) {
		return NewError(KindValidation, "analyze", "start date must be before end date")
	}
	return nil
}

// ParseDateRange builds a DateRange from YYYY-MM-DD strings
func ParseDateRange(start, end string) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, NewError(KindValidation, "analyze", "both start and end dates are required")
	}
	s, err := time.Parse(DateFormat, start)
	if err != nil {
		return DateRange{}, NewErrorWithCause(KindValidation, "analyze", "start date must be in YYYY-MM-DD form", err)
	}
	e, err := time.Parse(DateFormat, end)
	if err != nil {
		return DateRange{}, NewErrorWithCause(KindValidation, "analyze", "end date must be in YYYY-MM-DD form", err)
	}
	r := DateRange{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// DefaultDateRange returns the pre-filled window: one month back through today
func DefaultDateRange(now time.Time) DateRange {
	return DateRange{Start: now.AddDate(0, -1, 0), End: now}
}

// HealthInfo is the (mostly opaque) health endpoint payload
type HealthInfo struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`

	// Latency is measured by the client, not part of the wire body
	Latency time.Duration `json:"-"`
}

// analyzeRequest is the POST /analyze body
type analyzeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// envelope is the common response wrapper: success flag plus data or error
type envelope struct {
	Success bool         `json:"success"`
	Data    *analyzeData `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
}

// analysisSummary carries the scalar analysis metrics
type analysisSummary struct {
	MainTrendStock    string  `json:"main_trend_stock"`
	VarianceExplained float64 `json:"variance_explained"`
	TotalVariance     float64 `json:"total_variance"`
	NumberOfDays      int     `json:"number_of_days"`
}

// analyzeData is the wire shape of a successful analysis payload
type analyzeData struct {
	Analysis         analysisSummary               `json:"analysis"`
	StockPrices      map[string]map[string]float64 `json:"stock_prices"`
	DailyReturns     map[string]map[string]float64 `json:"daily_returns,omitempty"`
	CovarianceMatrix map[string]map[string]float64 `json:"covariance_matrix,omitempty"`
	Eigenvalues      []float64                     `json:"eigenvalues"`
	Eigenvectors     [][]float64                   `json:"eigenvectors"`
	TrendChart       string                        `json:"trend_chart"`
	ReturnsChart     string                        `json:"returns_chart"`
	CorrelationChart string                        `json:"correlation_chart,omitempty"`
}

// AnalysisResult is the decoded analysis owned by the caller for one display
// cycle. Chart fields hold raw PNG bytes; CorrelationChart may be nil.
type AnalysisResult struct {
	MainTrendStock       string
	VarianceExplainedPct float64
	TotalVariance        float64
	TradingDays          int

	StockPrices      map[string]map[string]float64
	DailyReturns     map[string]map[string]float64
	CovarianceMatrix map[string]map[string]float64
	Eigenvalues      []float64
	Eigenvectors     [][]float64

	TrendChart       []byte
	ReturnsChart     []byte
	CorrelationChart []byte
}
