package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/primewatch/primewatch/internal/history"
	"github.com/primewatch/primewatch/pkg/config"
	"github.com/primewatch/primewatch/pkg/search"
	"github.com/primewatch/primewatch/pkg/stats"
	"github.com/primewatch/primewatch/pkg/watcher"
)

// spinnerTickMsg advances the running-screen spinner.
type spinnerTickMsg struct{}

// configChangedMsg fires when the watched config file changes on disk.
type configChangedMsg struct{}

// configReloadedMsg carries the freshly loaded config.
type configReloadedMsg struct {
	cfg config.Config
	err error
}

// summaryMsg carries the post-completion summary for a request.
type summaryMsg struct {
	requestID uint64
	summary   stats.Summary
}

// historyLoadedMsg carries recent runs for the history overlay.
type historyLoadedMsg struct {
	runs []history.Run
	err  error
}

// historyRecordedMsg reports the outcome of persisting a completed run.
type historyRecordedMsg struct {
	err error
}

func spinnerTickCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// waitForSearchMsgCmd waits for the next worker message and feeds it into the
// Bubble Tea loop. The search message types are tea messages themselves, so
// Update consumes the union in one type switch.
func waitForSearchMsgCmd(w *search.Worker) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return nil
		}
		select {
		case msg := <-w.Messages():
			return msg
		case <-w.Done():
			// Done can close while a terminal message is still buffered.
			select {
			case msg := <-w.Messages():
				return msg
			default:
				return nil
			}
		}
	}
}

// watchConfigCmd blocks until the config file changes.
func watchConfigCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return nil
		}
		<-w.Changed()
		return configChangedMsg{}
	}
}

func reloadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.LoadFrom(path)
		return configReloadedMsg{cfg: cfg, err: err}
	}
}

// summarizeCmd computes gap statistics for a completed result off the UI
// thread; the done screen fills them in when they arrive.
func summarizeCmd(requestID uint64, primes []int) tea.Cmd {
	return func() tea.Msg {
		s, err := stats.Summarize(context.Background(), primes)
		if err != nil {
			return nil
		}
		return summaryMsg{requestID: requestID, summary: s}
	}
}

func recordRunCmd(store *history.Store, run history.Run, keep int) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := store.Record(ctx, run); err != nil {
			return historyRecordedMsg{err: err}
		}
		_, err := store.Prune(ctx, keep)
		return historyRecordedMsg{err: err}
	}
}

func loadHistoryCmd(store *history.Store, n int) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return historyLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		runs, err := store.Recent(ctx, n)
		return historyLoadedMsg{runs: runs, err: err}
	}
}
