package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/api"
)

// fakeBackend records calls and serves canned responses
type fakeBackend struct {
	healthInfo *api.HealthInfo
	healthErr  error

	result     *api.AnalysisResult
	analyzeErr error

	analyzeCalls int
	lastRange    api.DateRange
}

func (f *fakeBackend) CheckHealth(ctx context.Context) (*api.HealthInfo, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return f.healthInfo, nil
}

func (f *fakeBackend) Analyze(ctx context.Context, r api.DateRange) (*api.AnalysisResult, error) {
	f.analyzeCalls++
	f.lastRange = r
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.result, nil
}

func sampleResult() *api.AnalysisResult {
	return &api.AnalysisResult{
		MainTrendStock:       "RELIANCE.NS",
		VarianceExplainedPct: 62.345,
		TotalVariance:        0.001234,
		TradingDays:          22,
		StockPrices: map[string]map[string]float64{
			"2024-01-31": {"RELIANCE.NS": 2900.5},
		},
		Eigenvalues:  []float64{0.0008, 0.0003},
		Eigenvectors: [][]float64{{0.5, 0.5, 0.5, 0.4, 0.3}, {0.1, -0.2, 0.3, 0.1, -0.1}},
	}
}

func newTestModel(backend Backend) *Model {
	return NewModel(Options{
		Backend: backend,
		DateRange: api.DateRange{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	})
}

// drainCmd executes a command tree synchronously and collects every message
func drainCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	var msgs []tea.Msg
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			msgs = append(msgs, drainCmd(c)...)
		}
		return msgs
	}
	return append(msgs, msg)
}

func findAnalyzeResult(t *testing.T, msgs []tea.Msg) analyzeResultMsg {
	t.Helper()
	for _, msg := range msgs {
		if result, ok := msg.(analyzeResultMsg); ok {
			return result
		}
	}
	t.Fatal("no analyze result message produced")
	return analyzeResultMsg{}
}

func pressEnter(m *Model) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func TestNewModel_InitialState(t *testing.T) {
	m := newTestModel(&fakeBackend{})

	if m.State() != StateChecking {
		t.Errorf("expected initial state Checking, got %v", m.State())
	}
	if m.Status() != StatusUnknown {
		t.Errorf("expected initial status Unknown, got %v", m.Status())
	}
	if m.startInput.Value() != "2024-01-01" {
		t.Errorf("expected start input pre-filled, got '%s'", m.startInput.Value())
	}
	if m.endInput.Value() != "2024-02-01" {
		t.Errorf("expected end input pre-filled, got '%s'", m.endInput.Value())
	}
	if !m.startInput.Focused() {
		t.Error("expected start input focused")
	}
}

func TestHealthResult_FlipsStatusOnly(t *testing.T) {
	m := newTestModel(&fakeBackend{})

	m.Update(healthResultMsg{info: &api.HealthInfo{Status: "healthy", Latency: 12 * time.Millisecond}})

	if m.Status() != StatusOnline {
		t.Errorf("expected status Online, got %v", m.Status())
	}
	if m.State() != StateIdle {
		t.Errorf("expected Checking to end in Idle, got %v", m.State())
	}
}

func TestHealthResult_Offline(t *testing.T) {
	m := newTestModel(&fakeBackend{})

	m.Update(healthResultMsg{err: api.NewError(api.KindNetwork, "health", "request failed")})

	if m.Status() != StatusOffline {
		t.Errorf("expected status Offline, got %v", m.Status())
	}
	if m.State() != StateIdle {
		t.Errorf("expected state Idle, got %v", m.State())
	}
}

func TestHealthResult_NeverTouchesLoading(t *testing.T) {
	backend := &fakeBackend{result: sampleResult()}
	m := newTestModel(backend)
	m.state = StateIdle

	pressEnter(m)
	if m.State() != StateLoading {
		t.Fatalf("expected Loading after enter, got %v", m.State())
	}

	m.Update(healthResultMsg{err: api.NewError(api.KindNetwork, "health", "request failed")})

	if m.State() != StateLoading {
		t.Errorf("health result must not leave Loading, got %v", m.State())
	}
	if m.Status() != StatusOffline {
		t.Errorf("expected the indicator itself to flip, got %v", m.Status())
	}
}

func TestTriggerAnalyze_InvalidDatesNoNetworkCall(t *testing.T) {
	backend := &fakeBackend{result: sampleResult()}
	m := newTestModel(backend)
	m.state = StateIdle
	m.startInput.SetValue("2024-02-01")
	m.endInput.SetValue("2024-01-01") // start after end

	cmd := pressEnter(m)

	if m.State() != StateErrorShown {
		t.Errorf("expected ErrorShown for invalid range, got %v", m.State())
	}
	if m.ErrorMessage() == "" {
		t.Error("expected an error message on the surface")
	}
	drainCmd(cmd)
	if backend.analyzeCalls != 0 {
		t.Errorf("expected no network call for invalid input, got %d", backend.analyzeCalls)
	}
}

func TestTriggerAnalyze_EmptyDates(t *testing.T) {
	backend := &fakeBackend{result: sampleResult()}
	m := newTestModel(backend)
	m.state = StateIdle
	m.startInput.SetValue("")
	m.endInput.SetValue("")

	pressEnter(m)

	if m.State() != StateErrorShown {
		t.Errorf("expected ErrorShown for empty dates, got %v", m.State())
	}
	if backend.analyzeCalls != 0 {
		t.Errorf("expected no network call, got %d", backend.analyzeCalls)
	}
}

func TestTriggerAnalyze_Success(t *testing.T) {
	backend := &fakeBackend{result: sampleResult()}
	m := newTestModel(backend)
	m.state = StateIdle

	cmd := pressEnter(m)

	if m.State() != StateLoading {
		t.Fatalf("expected Loading, got %v", m.State())
	}
	if m.startInput.Focused() || m.endInput.Focused() {
		t.Error("expected inputs blurred while loading")
	}

	result := findAnalyzeResult(t, drainCmd(cmd))
	if backend.analyzeCalls != 1 {
		t.Fatalf("expected exactly one analyze call, got %d", backend.analyzeCalls)
	}
	if backend.lastRange.Start.Format(api.DateFormat) != "2024-01-01" {
		t.Errorf("unexpected start date sent: %s", backend.lastRange.Start)
	}

	m.Update(result)

	if m.State() != StateDisplaying {
		t.Errorf("expected Displaying, got %v", m.State())
	}
	if m.ViewModel() == nil {
		t.Fatal("expected a view model after success")
	}
	if m.ViewModel().Metrics.TrendStock != "RELIANCE" {
		t.Errorf("unexpected trend stock: %s", m.ViewModel().Metrics.TrendStock)
	}
	if !m.startInput.Focused() && !m.endInput.Focused() {
		t.Error("expected an input re-focused after the terminal transition")
	}
}

func TestTriggerAnalyze_IgnoredWhileLoading(t *testing.T) {
	backend := &fakeBackend{result: sampleResult()}
	m := newTestModel(backend)
	m.state = StateIdle

	first := pressEnter(m)
	second := pressEnter(m)

	if second != nil {
		t.Error("expected second trigger to produce no command")
	}
	drainCmd(first)
	if backend.analyzeCalls != 1 {
		t.Errorf("expected one analyze call, got %d", backend.analyzeCalls)
	}
}

func TestAnalyzeError_ShowsUserMessage(t *testing.T) {
	backend := &fakeBackend{
		analyzeErr: api.NewError(api.KindTimeout, "analyze", "request exceeded its time bound"),
	}
	m := newTestModel(backend)
	m.state = StateIdle

	cmd := pressEnter(m)
	m.Update(findAnalyzeResult(t, drainCmd(cmd)))

	if m.State() != StateErrorShown {
		t.Fatalf("expected ErrorShown, got %v", m.State())
	}
	if !strings.Contains(m.ErrorMessage(), "timed out") {
		t.Errorf("expected timeout message, got '%s'", m.ErrorMessage())
	}
	if !m.startInput.Focused() && !m.endInput.Focused() {
		t.Error("expected inputs re-enabled after failure")
	}
}

func TestStaleAnalyzeResultDiscarded(t *testing.T) {
	backend := &fakeBackend{result: sampleResult()}
	m := newTestModel(backend)
	m.state = StateIdle

	// First request times out and is dismissed.
	backend.analyzeErr = api.NewError(api.KindTimeout, "analyze", "request exceeded its time bound")
	cmd := pressEnter(m)
	m.Update(findAnalyzeResult(t, drainCmd(cmd)))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.State() != StateIdle {
		t.Fatalf("expected Idle after dismissing the error, got %v", m.State())
	}

	// Second request goes out while the first one's late success arrives.
	backend.analyzeErr = nil
	pressEnter(m)
	if m.State() != StateLoading {
		t.Fatalf("expected Loading, got %v", m.State())
	}

	late := analyzeResultMsg{seq: 1, vm: nil}
	m.Update(late)

	if m.State() != StateLoading {
		t.Errorf("stale result must not change state, got %v", m.State())
	}
	if m.ViewModel() != nil {
		t.Error("stale result must not install a view model")
	}
}

func TestEscape_DismissesError(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.state = StateErrorShown
	m.errMsg = "something went wrong"

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if m.State() != StateIdle {
		t.Errorf("expected Idle after dismissal, got %v", m.State())
	}
	if m.ErrorMessage() != "" {
		t.Error("expected error message cleared")
	}
	if cmd != nil {
		t.Error("dismissal should not quit")
	}
}

func TestEscape_QuitsOutsideError(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.state = StateIdle

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestCycleFocus(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.state = StateIdle

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !m.endInput.Focused() {
		t.Error("expected tab to focus the end input")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !m.startInput.Focused() {
		t.Error("expected tab to wrap back to the start input")
	}
}

func TestView_RendersPerState(t *testing.T) {
	m := newTestModel(&fakeBackend{result: sampleResult()})
	m.width = 100
	m.height = 40

	m.state = StateErrorShown
	m.errMsg = "Analysis failed: no trading days in range"
	if out := m.View(); !strings.Contains(out, "no trading days in range") {
		t.Error("expected error surface to show the message")
	}

	m.state = StateLoading
	if out := m.View(); !strings.Contains(out, "Analyzing") {
		t.Error("expected loading surface")
	}

	m.state = StateDisplaying
	cmd := analyzeCmd(m.backend, api.DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}, 0, "")
	if result, ok := cmd().(analyzeResultMsg); ok {
		m.vm = result.vm
	}
	out := m.View()
	for _, want := range []string{"RELIANCE", "62.35%", "PC1", "2900.50", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected results view to contain '%s'", want)
		}
	}
}
