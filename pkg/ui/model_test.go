package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/primewatch/primewatch/pkg/config"
	"github.com/primewatch/primewatch/pkg/search"
)

func testModel() Model {
	cfg := config.DefaultConfig()
	cfg.Limits = config.Limits{Min: 1, Max: 100_000}
	m := NewModel(Options{Config: cfg})
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return mm.(Model)
}

func TestStartSearchRejectsNonNumber(t *testing.T) {
	m := testModel()
	m.input.SetValue("lots")

	mm, _ := m.startSearch()
	m = mm.(Model)

	if m.screen != screenInput {
		t.Fatalf("screen = %v, want input", m.screen)
	}
	if !strings.Contains(m.statusMsg, "not a number") {
		t.Errorf("statusMsg = %q, want parse error", m.statusMsg)
	}
}

func TestStartSearchRejectsOutOfRange(t *testing.T) {
	m := testModel()
	m.input.SetValue("200000")

	mm, _ := m.startSearch()
	m = mm.(Model)

	if m.screen != screenInput {
		t.Fatalf("screen = %v, want input", m.screen)
	}
	if m.statusMsg == "" {
		t.Error("expected a validation message")
	}
}

func TestFullSearchFlow(t *testing.T) {
	m := testModel()
	m.input.SetValue("30")

	mm, _ := m.startSearch()
	m = mm.(Model)
	if m.screen != screenRunning {
		t.Fatalf("screen = %v, want running", m.screen)
	}

	w := m.ctrl.Active()
	if w == nil {
		t.Fatal("no active worker after start")
	}

	deadline := time.After(5 * time.Second)
	for {
		var msg search.Message
		select {
		case msg = <-w.Messages():
		case <-deadline:
			t.Fatal("timed out waiting for worker messages")
		}
		mm, _ := m.Update(msg)
		m = mm.(Model)
		if _, ok := msg.(search.CompleteMsg); ok {
			break
		}
	}

	if m.screen != screenDone {
		t.Fatalf("screen = %v, want done", m.screen)
	}
	if m.result == nil || len(m.result.Primes) != 10 {
		t.Fatalf("result = %+v, want 10 primes up to 30", m.result)
	}
	if m.ctrl.Active() != nil {
		t.Error("worker handle not released after completion")
	}
}

func TestStaleProgressDiscarded(t *testing.T) {
	m := testModel()
	m.percent = 42

	mm, _ := m.Update(search.ProgressMsg{RequestID: 999, Percent: 90})
	m = mm.(Model)

	if m.percent != 42 {
		t.Errorf("percent = %d, stale message should not apply", m.percent)
	}
}

func TestErrorMsgReturnsToInput(t *testing.T) {
	m := testModel()
	m.input.SetValue("1000")
	mm, _ := m.startSearch()
	m = mm.(Model)

	id := m.ctrl.Active().Request().ID
	m.ctrl.Cancel()
	<-time.After(10 * time.Millisecond)

	// Cancel drops ownership, so a late error for the old id is ignored.
	mm, _ = m.Update(search.ErrorMsg{RequestID: id, Err: errFake})
	m = mm.(Model)
	if strings.Contains(m.statusMsg, "search failed") {
		t.Error("error for released request should be discarded")
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	m := testModel()

	mm, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = mm.(Model)
	if !m.showHelp {
		t.Fatal("? should open help")
	}
	if !strings.Contains(m.View(), "primewatch") {
		t.Error("help view missing title")
	}

	mm, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	m = mm.(Model)
	if m.showHelp {
		t.Error("esc should close help")
	}
}

func TestConfigReloadUpdatesBounds(t *testing.T) {
	m := testModel()
	cfg := m.cfg
	cfg.Limits = config.Limits{Min: 10, Max: 500}

	mm, _ := m.Update(configReloadedMsg{cfg: cfg})
	m = mm.(Model)

	min, max := m.ctrl.Bounds()
	if min != 10 || max != 500 {
		t.Errorf("bounds = %d..%d, want 10..500", min, max)
	}
}

type fakeErr struct{}

func (fakeErr) Error() string { return "boom" }

var errFake = fakeErr{}
