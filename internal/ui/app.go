package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akash89-eng/StockMarketAnalysis/internal/api"
	"github.com/Akash89-eng/StockMarketAnalysis/internal/logger"
	"github.com/Akash89-eng/StockMarketAnalysis/internal/view"
)

// RequestState tracks the analyze flow. Exactly one state is active at a time.
type RequestState int

const (
	// StateChecking is the construction state while the first health probe
	// is in flight; analyze actions are already allowed.
	StateChecking RequestState = iota

	// StateIdle awaits user action
	StateIdle

	// StateLoading has exactly one analyze request in flight
	StateLoading

	// StateDisplaying shows the last successful analysis
	StateDisplaying

	// StateErrorShown shows a dismissible error surface
	StateErrorShown
)

// BackendStatus is the health indicator, independent of the analyze flow
type BackendStatus int

const (
	StatusUnknown BackendStatus = iota
	StatusOnline
	StatusOffline
)

const (
	inputStart = iota
	inputEnd
)

// Model is the view controller: it owns the request state machine, the date
// inputs, and the last result, and maps API outcomes to display updates.
type Model struct {
	backend   Backend
	chartsDir string
	log       *logger.Logger

	state   RequestState
	status  BackendStatus
	latency string

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	spin spinner.Model

	// seq numbers analyze requests; a result whose seq does not match was
	// superseded or lost the timeout race and is discarded.
	seq int

	vm         *view.ViewModel
	savedPaths []string
	errMsg     string

	width    int
	height   int
	quitting bool
}

// Options configures the interactive model
type Options struct {
	Backend   Backend
	ChartsDir string
	Logger    *logger.Logger
	DateRange api.DateRange
}

// NewModel creates the view controller with the default date range pre-filled
func NewModel(opts Options) *Model {
	start := textinput.New()
	start.Placeholder = "YYYY-MM-DD"
	start.CharLimit = 10
	start.Width = 12
	start.Prompt = ""
	start.SetValue(opts.DateRange.Start.Format(api.DateFormat))
	start.Focus()

	end := textinput.New()
	end.Placeholder = "YYYY-MM-DD"
	end.CharLimit = 10
	end.Width = 12
	end.Prompt = ""
	end.SetValue(opts.DateRange.End.Format(api.DateFormat))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	log := opts.Logger
	if log == nil {
		log = logger.NewWithCallback("ui", func() bool { return false })
	}

	return &Model{
		backend:    opts.Backend,
		chartsDir:  opts.ChartsDir,
		log:        log,
		state:      StateChecking,
		status:     StatusUnknown,
		startInput: start,
		endInput:   end,
		spin:       sp,
	}
}

// State returns the active request state
func (m *Model) State() RequestState {
	return m.state
}

// Status returns the backend health indicator
func (m *Model) Status() BackendStatus {
	return m.status
}

// ErrorMessage returns the message on the error surface, if any
func (m *Model) ErrorMessage() string {
	return m.errMsg
}

// ViewModel returns the currently displayed analysis, if any
func (m *Model) ViewModel() *view.ViewModel {
	return m.vm
}

// Init fires the background health check and starts cursor blinking
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		checkHealthCmd(m.backend),
	)
}

// Update handles messages and state transitions
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case spinner.TickMsg:
		if m.state != StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case healthResultMsg:
		return m.handleHealthResult(msg)
	case analyzeResultMsg:
		return m.handleAnalyzeResult(msg)
	}

	return m.updateInputs(msg)
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		return m.handleEscape()
	case "tab", "shift+tab", "up", "down":
		return m.cycleFocus(msg.String())
	case "enter":
		return m.triggerAnalyze()
	}

	return m.updateInputs(msg)
}

// handleEscape dismisses the error surface; anywhere else it quits
func (m *Model) handleEscape() (tea.Model, tea.Cmd) {
	if m.state == StateErrorShown {
		m.state = StateIdle
		m.errMsg = ""
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// cycleFocus moves focus between the two date inputs
func (m *Model) cycleFocus(key string) (tea.Model, tea.Cmd) {
	if m.state == StateLoading {
		return m, nil
	}

	if key == "shift+tab" || key == "up" {
		m.focusIndex--
	} else {
		m.focusIndex++
	}
	if m.focusIndex < inputStart {
		m.focusIndex = inputEnd
	}
	if m.focusIndex > inputEnd {
		m.focusIndex = inputStart
	}

	var cmd tea.Cmd
	if m.focusIndex == inputStart {
		m.endInput.Blur()
		cmd = m.startInput.Focus()
	} else {
		m.startInput.Blur()
		cmd = m.endInput.Focus()
	}
	return m, cmd
}

// triggerAnalyze validates the dates and enters Loading. Validation failures
// surface locally; no network call is issued for them.
func (m *Model) triggerAnalyze() (tea.Model, tea.Cmd) {
	if m.state == StateLoading {
		// One request in flight at a time; a second trigger is ignored.
		return m, nil
	}

	r, err := api.ParseDateRange(
		strings.TrimSpace(m.startInput.Value()),
		strings.TrimSpace(m.endInput.Value()),
	)
	if err != nil {
		m.state = StateErrorShown
		m.errMsg = userMessage(err)
		return m, nil
	}

	m.seq++
	m.state = StateLoading
	m.errMsg = ""
	m.startInput.Blur()
	m.endInput.Blur()

	m.log.Info("analyze requested: %s .. %s",
		r.Start.Format(api.DateFormat), r.End.Format(api.DateFormat))

	return m, tea.Batch(m.spin.Tick, analyzeCmd(m.backend, r, m.seq, m.chartsDir))
}

// handleHealthResult flips the status indicator only. The background probe
// never touches the analyze flow states beyond ending Checking.
func (m *Model) handleHealthResult(msg healthResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = StatusOffline
		m.log.Warn("health check failed: %v", msg.err)
	} else {
		m.status = StatusOnline
		m.latency = msg.info.Latency.Round(latencyPrecision).String()
	}

	if m.state == StateChecking {
		m.state = StateIdle
	}
	return m, nil
}

// handleAnalyzeResult applies the terminal Loading transition. Inputs are
// re-enabled on both branches; stale results are dropped before anything
// else happens.
func (m *Model) handleAnalyzeResult(msg analyzeResultMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		m.log.Info("discarding stale analyze response (seq %d, current %d)", msg.seq, m.seq)
		return m, nil
	}
	if m.state != StateLoading {
		return m, nil
	}

	// Guaranteed cleanup: re-enable input on every terminal transition
	focusCmd := m.refocusInputs()

	if msg.err != nil {
		m.state = StateErrorShown
		m.errMsg = userMessage(msg.err)
		m.log.Warn("analyze failed: %v", msg.err)
		return m, focusCmd
	}

	m.state = StateDisplaying
	m.vm = msg.vm
	m.savedPaths = msg.savedPaths
	m.errMsg = ""
	return m, focusCmd
}

func (m *Model) refocusInputs() tea.Cmd {
	if m.focusIndex == inputEnd {
		return m.endInput.Focus()
	}
	return m.startInput.Focus()
}

// updateInputs forwards a message to the focused date input
func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateLoading {
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusIndex == inputStart {
		m.startInput, cmd = m.startInput.Update(msg)
	} else {
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return m, cmd
}

// userMessage maps an error to the text shown on the error surface
func userMessage(err error) string {
	var ae *api.APIError
	if apiErr, ok := err.(*api.APIError); ok {
		ae = apiErr
	}
	if ae != nil {
		return ae.UserMessage()
	}
	return err.Error()
}

// Run starts the interactive program
func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
