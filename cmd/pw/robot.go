package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/primewatch/primewatch/pkg/config"
	"github.com/primewatch/primewatch/pkg/export"
	"github.com/primewatch/primewatch/pkg/search"
)

// robotEvent is one NDJSON line on stdout in robot mode.
type robotEvent struct {
	Event     string `json:"event"`
	Limit     int    `json:"limit,omitempty"`
	Percent   int    `json:"percent,omitempty"`
	Checked   int    `json:"checked,omitempty"`
	Found     int    `json:"found,omitempty"`
	ElapsedMS int64  `json:"elapsed_ms,omitempty"`
	Primes    []int  `json:"primes,omitempty"`
	Error     string `json:"error,omitempty"`
}

// runRobot performs a single headless search, streaming progress and the
// terminal outcome as one JSON object per line. When svgPath is non-empty the
// completed result is also rendered as a growth chart.
func runRobot(w io.Writer, cfg config.Config, limit int, svgPath string) error {
	enc := json.NewEncoder(w)

	ctrl := search.NewController(cfg.Limits.Min, cfg.Limits.Max)
	worker, err := ctrl.Start(limit)
	if err != nil {
		_ = enc.Encode(robotEvent{Event: "error", Limit: limit, Error: err.Error()})
		return err
	}

	if err := enc.Encode(robotEvent{Event: "start", Limit: limit}); err != nil {
		ctrl.Cancel()
		return err
	}

	for {
		var msg search.Message
		select {
		case msg = <-worker.Messages():
		case <-worker.Done():
			// Drain a buffered terminal message if one is left.
			select {
			case msg = <-worker.Messages():
			default:
				return fmt.Errorf("worker stopped without a terminal message")
			}
		}

		switch msg := msg.(type) {
		case search.ProgressMsg:
			if err := enc.Encode(robotEvent{
				Event:   "progress",
				Percent: msg.Percent,
				Checked: msg.Checked,
				Found:   msg.Found,
			}); err != nil {
				ctrl.Cancel()
				return err
			}

		case search.CompleteMsg:
			ctrl.Release(msg.RequestID)
			if err := enc.Encode(robotEvent{
				Event:     "complete",
				Limit:     limit,
				Found:     len(msg.Primes),
				ElapsedMS: msg.Elapsed.Milliseconds(),
				Primes:    msg.Primes,
			}); err != nil {
				return err
			}
			if svgPath != "" {
				return export.WriteGrowthChartFile(svgPath, limit, msg.Primes, export.ChartOptions{
					Title: fmt.Sprintf("π(x) up to %d", limit),
				})
			}
			return nil

		case search.ErrorMsg:
			ctrl.Release(msg.RequestID)
			_ = enc.Encode(robotEvent{Event: "error", Limit: limit, Error: msg.Err.Error()})
			return msg.Err
		}
	}
}
