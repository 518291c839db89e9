package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client wraps the two analysis backend endpoints. It holds no state beyond
// the base URL and per-endpoint time bounds; every call is attempted exactly
// once with no retries.
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

// Config holds API client configuration
type Config struct {
	// BaseURL is the analysis backend endpoint
	BaseURL string `yaml:"base_url" json:"base_url"`

	// HealthTimeout bounds the health probe
	HealthTimeout time.Duration `yaml:"health_timeout" json:"health_timeout"`

	// AnalyzeTimeout bounds the analyze request
	AnalyzeTimeout time.Duration `yaml:"analyze_timeout" json:"analyze_timeout"`
}

// DefaultConfig returns the default client configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "http://localhost:5000/api",
		HealthTimeout:  5 * time.Second,
		AnalyzeTimeout: 30 * time.Second,
	}
}

// Validate validates the client configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return NewError(KindValidation, "", "base URL is required")
	}
	if c.HealthTimeout <= 0 {
		return NewError(KindValidation, "", "health timeout must be positive")
	}
	if c.AnalyzeTimeout <= 0 {
		return NewError(KindValidation, "", "analyze timeout must be positive")
	}
	return nil
}

// New creates an API client for the configured backend
func New(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, NewErrorWithCause(KindValidation, "", "invalid base URL: "+err.Error(), err)
	}

	return &Client{
		config:  config,
		client:  &http.Client{},
		baseURL: baseURL,
	}, nil
}

// BaseURL returns the configured backend endpoint
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// CheckHealth probes the backend liveness endpoint. Any 2xx response with a
// JSON body counts as healthy; the body content is opaque beyond existence.
func (c *Client) CheckHealth(ctx context.Context) (*HealthInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	defer cancel()

	endpoint := c.baseURL.JoinPath("/health")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, NewErrorWithCause(KindNetwork, "health", "failed to create request", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransportError("health", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewStatusError("health", resp.StatusCode)
	}

	var info HealthInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, classifyDecodeError("health", err)
	}
	info.Latency = time.Since(start)

	return &info, nil
}

// Analyze requests a precomputed PCA analysis for the given date range and
// decodes the full payload, including the base64 chart images.
func (c *Client) Analyze(ctx context.Context, r DateRange) (*AnalysisResult, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.AnalyzeTimeout)
	defer cancel()

	endpoint := c.baseURL.JoinPath("/analyze")

	body := analyzeRequest{
		StartDate: r.Start.Format(DateFormat),
		EndDate:   r.End.Format(DateFormat),
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, NewErrorWithCause(KindDecode, "analyze", "failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, NewErrorWithCause(KindNetwork, "analyze", "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransportError("analyze", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	// A rejected request may arrive with a 500 and a success:false body;
	// prefer the server's message over a bare status code when both exist.
	if decodeErr == nil && !env.Success && env.Error != "" {
		return nil, NewError(KindServerRejected, "analyze", env.Error)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewStatusError("analyze", resp.StatusCode)
	}

	if decodeErr != nil {
		return nil, classifyDecodeError("analyze", decodeErr)
	}

	if !env.Success {
		return nil, NewError(KindServerRejected, "analyze", "analysis rejected with no error message")
	}

	if env.Data == nil {
		return nil, NewError(KindDecode, "analyze", "success response carried no data payload")
	}

	return decodeResult(env.Data)
}

// decodeResult converts the wire payload into the caller-owned result
func decodeResult(data *analyzeData) (*AnalysisResult, error) {
	trend, err := decodeChart("trend_chart", data.TrendChart)
	if err != nil {
		return nil, err
	}

	returns, err := decodeChart("returns_chart", data.ReturnsChart)
	if err != nil {
		return nil, err
	}

	var correlation []byte
	if data.CorrelationChart != "" {
		correlation, err = decodeChart("correlation_chart", data.CorrelationChart)
		if err != nil {
			return nil, err
		}
	}

	return &AnalysisResult{
		MainTrendStock:       data.Analysis.MainTrendStock,
		VarianceExplainedPct: data.Analysis.VarianceExplained,
		TotalVariance:        data.Analysis.TotalVariance,
		TradingDays:          data.Analysis.NumberOfDays,
		StockPrices:          data.StockPrices,
		DailyReturns:         data.DailyReturns,
		CovarianceMatrix:     data.CovarianceMatrix,
		Eigenvalues:          data.Eigenvalues,
		Eigenvectors:         data.Eigenvectors,
		TrendChart:           trend,
		ReturnsChart:         returns,
		CorrelationChart:     correlation,
	}, nil
}

// decodeChart decodes a base64 chart image
func decodeChart(name, encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, NewErrorWithCause(KindDecode, "analyze", fmt.Sprintf("failed to decode %s image", name), err)
	}
	return raw, nil
}
