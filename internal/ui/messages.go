package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/api"
	"github.com/Akash89-eng/StockMarketAnalysis/internal/charts"
	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

// Backend is the slice of the API client the view controller needs
type Backend interface {
	CheckHealth(ctx context.Context) (*api.HealthInfo, error)
	Analyze(ctx context.Context, r api.DateRange) (*api.AnalysisResult, error)
}

// healthResultMsg carries the background health probe outcome. It only ever
// flips the status indicator, never the analyze flow states.
type healthResultMsg struct {
	info *api.HealthInfo
	err  error
}

// analyzeResultMsg carries one analyze outcome. seq identifies the request
// that produced it; stale sequence numbers are discarded on arrival.
type analyzeResultMsg struct {
	seq        int
	result     *api.AnalysisResult
	vm         *view.ViewModel
	savedPaths []string
	err        error
}

// checkHealthCmd fires the liveness probe without blocking the event loop
func checkHealthCmd(backend Backend) tea.Cmd {
	return func() tea.Msg {
		info, err := backend.CheckHealth(context.Background())
		return healthResultMsg{info: info, err: err}
	}
}

// analyzeCmd issues one analyze request. On success the view model is built
// and charts are written here, off the event loop, so Update stays pure.
func analyzeCmd(backend Backend, r api.DateRange, seq int, chartsDir string) tea.Cmd {
	return func() tea.Msg {
		result, err := backend.Analyze(context.Background(), r)
		if err != nil {
			return analyzeResultMsg{seq: seq, err: err}
		}

		vm := view.Build(result)

		var savedPaths []string
		if chartsDir != "" {
			// Chart write failures are not analysis failures; the tables
			// still render and the notice line simply stays empty.
			savedPaths, _ = charts.WriteAll(chartsDir, vm.Charts)
		}

		return analyzeResultMsg{seq: seq, result: result, vm: vm, savedPaths: savedPaths}
	}
}
