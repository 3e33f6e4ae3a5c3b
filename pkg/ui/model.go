package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/primewatch/primewatch/internal/history"
	"github.com/primewatch/primewatch/pkg/config"
	"github.com/primewatch/primewatch/pkg/debug"
	"github.com/primewatch/primewatch/pkg/metrics"
	"github.com/primewatch/primewatch/pkg/search"
	"github.com/primewatch/primewatch/pkg/stats"
	"github.com/primewatch/primewatch/pkg/watcher"
)

type screen int

const (
	screenInput screen = iota
	screenRunning
	screenDone
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Model drives the interactive prime search session: an input screen for
// picking the limit, a running screen fed by worker messages, and a result
// screen with gap statistics and run history.
type Model struct {
	cfg        config.Config
	cfgPath    string
	ctrl       *search.Controller
	store      *history.Store
	cfgWatcher *watcher.Watcher

	input   textinput.Model
	results viewport.Model

	screen      screen
	spinnerIdx  int
	activeLimit int

	// Progress of the in-flight request.
	percent int
	checked int
	found   int

	result  *search.CompleteMsg
	summary *stats.Summary

	statusMsg   string
	historyRuns []history.Run

	showHelp    bool
	showHistory bool

	width  int
	height int
	ready  bool
}

// Options configures the interactive model.
type Options struct {
	Config     config.Config
	ConfigPath string
	Store      *history.Store // may be nil when history is disabled
	Watcher    *watcher.Watcher
}

func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("%d", opts.Config.Limits.Max/10)
	ti.CharLimit = 12
	ti.Width = 24
	ti.Focus()

	ctrl := search.NewController(opts.Config.Limits.Min, opts.Config.Limits.Max)

	return Model{
		cfg:        opts.Config,
		cfgPath:    opts.ConfigPath,
		ctrl:       ctrl,
		store:      opts.Store,
		cfgWatcher: opts.Watcher,
		input:      ti,
		screen:     screenInput,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.cfgWatcher != nil {
		cmds = append(cmds, watchConfigCmd(m.cfgWatcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.results = viewport.New(msg.Width-4, max(msg.Height-12, 3))
			m.ready = true
		} else {
			m.results.Width = msg.Width - 4
			m.results.Height = max(msg.Height-12, 3)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinnerTickMsg:
		if m.screen != screenRunning {
			return m, nil
		}
		m.spinnerIdx = (m.spinnerIdx + 1) % len(spinnerFrames)
		return m, spinnerTickCmd()

	case search.ProgressMsg:
		if !m.ctrl.Owns(msg.RequestID) {
			return m, nil
		}
		m.percent = msg.Percent
		m.checked = msg.Checked
		m.found = msg.Found
		return m, waitForSearchMsgCmd(m.ctrl.Active())

	case search.CompleteMsg:
		return m.handleComplete(msg)

	case search.ErrorMsg:
		if !m.ctrl.Owns(msg.RequestID) {
			return m, nil
		}
		m.ctrl.Release(msg.RequestID)
		m.screen = screenInput
		m.statusMsg = errorStyle.Render("search failed: " + msg.Err.Error())
		m.input.Focus()
		return m, nil

	case summaryMsg:
		if m.result == nil || m.result.RequestID != msg.requestID {
			return m, nil
		}
		s := msg.summary
		m.summary = &s
		return m, nil

	case configChangedMsg:
		return m, tea.Batch(reloadConfigCmd(m.cfgPath), watchConfigCmd(m.cfgWatcher))

	case configReloadedMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render("config reload failed: " + msg.err.Error())
			return m, nil
		}
		m.cfg = msg.cfg
		m.ctrl.SetBounds(msg.cfg.Limits.Min, msg.cfg.Limits.Max)
		m.statusMsg = statusStyle.Render(fmt.Sprintf("config reloaded, limits %d..%d",
			msg.cfg.Limits.Min, msg.cfg.Limits.Max))
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render("history: " + msg.err.Error())
			return m, nil
		}
		m.historyRuns = msg.runs
		m.showHistory = true
		return m, nil

	case historyRecordedMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render("history: " + msg.err.Error())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays swallow everything except their dismiss keys.
	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}
	if m.showHistory {
		switch msg.String() {
		case "esc", "h", "q":
			m.showHistory = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.ctrl.Cancel()
		return m, tea.Quit

	case "q":
		if m.screen == screenInput || m.screen == screenDone {
			m.ctrl.Cancel()
			return m, tea.Quit
		}

	case "?":
		m.showHelp = true
		return m, nil

	case "h":
		if m.screen != screenRunning && m.store != nil {
			return m, loadHistoryCmd(m.store, 20)
		}

	case "esc":
		switch m.screen {
		case screenRunning:
			m.ctrl.Cancel()
			m.screen = screenInput
			m.statusMsg = statusStyle.Render("search cancelled")
			m.input.Focus()
			return m, nil
		case screenDone:
			m.screen = screenInput
			m.input.Focus()
			return m, nil
		}

	case "enter":
		if m.screen == screenInput || m.screen == screenDone {
			return m.startSearch()
		}

	case "y":
		if m.screen == screenDone && m.result != nil {
			if err := clipboard.WriteAll(joinInts(m.result.Primes)); err != nil {
				m.statusMsg = errorStyle.Render("clipboard: " + err.Error())
			} else {
				m.statusMsg = successStyle.Render(fmt.Sprintf("copied %d primes", len(m.result.Primes)))
			}
			return m, nil
		}
	}

	if m.screen == screenInput || m.screen == screenDone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		m.statusMsg = errorStyle.Render("enter an upper bound first")
		return m, nil
	}
	limit, err := strconv.Atoi(strings.ReplaceAll(raw, "_", ""))
	if err != nil {
		m.statusMsg = errorStyle.Render("not a number: " + raw)
		return m, nil
	}

	w, err := m.ctrl.Start(limit)
	if err != nil {
		m.statusMsg = errorStyle.Render(err.Error())
		return m, nil
	}

	debug.Log("ui: started search limit=%d id=%d", limit, w.Request().ID)

	m.screen = screenRunning
	m.activeLimit = limit
	m.percent = 0
	m.checked = 0
	m.found = 0
	m.result = nil
	m.summary = nil
	m.statusMsg = ""
	m.input.Blur()

	return m, tea.Batch(waitForSearchMsgCmd(w), spinnerTickCmd())
}

func (m Model) handleComplete(msg search.CompleteMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.Owns(msg.RequestID) {
		return m, nil
	}
	done := metrics.Timer(metrics.UIRender)
	defer done()

	m.ctrl.Release(msg.RequestID)
	m.screen = screenDone
	m.result = &msg
	m.percent = 100
	m.statusMsg = ""
	m.input.Focus()

	if m.ready {
		m.results.SetContent(previewPrimes(msg.Primes, m.cfg.UI.ResultPreview))
	}

	cmds := []tea.Cmd{summarizeCmd(msg.RequestID, msg.Primes)}
	if m.store != nil {
		cmds = append(cmds, recordRunCmd(m.store, history.Run{
			Limit:   m.activeLimit,
			Found:   len(msg.Primes),
			Elapsed: msg.Elapsed,
		}, m.cfg.History.Keep))
	}
	return m, tea.Batch(cmds...)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
