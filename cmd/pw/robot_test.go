package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/primewatch/primewatch/pkg/config"
)

func robotConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Limits = config.Limits{Min: 1, Max: 1_000_000}
	return cfg
}

func TestRunRobotStreamsEvents(t *testing.T) {
	// Large buffer so no progress event is dropped while the scanner runs.
	t.Setenv("PW_CHANNEL_BUFFER", "512")

	var buf bytes.Buffer
	if err := runRobot(&buf, robotConfig(), 10_000, ""); err != nil {
		t.Fatalf("runRobot: %v", err)
	}

	var events []robotEvent
	sc := bufio.NewScanner(&buf)
	sc.Buffer(make([]byte, 1<<20), 1<<24)
	for sc.Scan() {
		var ev robotEvent
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			t.Fatalf("bad NDJSON line %q: %v", sc.Text(), err)
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(events) < 3 {
		t.Fatalf("got %d events, want start + progress + complete", len(events))
	}
	if events[0].Event != "start" || events[0].Limit != 10_000 {
		t.Errorf("first event = %+v, want start", events[0])
	}

	last := events[len(events)-1]
	if last.Event != "complete" {
		t.Fatalf("last event = %q, want complete", last.Event)
	}
	if last.Found != 1229 {
		t.Errorf("found = %d, want 1229 primes below 10000", last.Found)
	}
	if len(last.Primes) != last.Found {
		t.Errorf("primes len %d != found %d", len(last.Primes), last.Found)
	}

	lastPercent := 0
	for _, ev := range events[1 : len(events)-1] {
		if ev.Event != "progress" {
			t.Fatalf("middle event = %q, want progress", ev.Event)
		}
		if ev.Percent <= lastPercent {
			t.Errorf("percent %d not strictly increasing after %d", ev.Percent, lastPercent)
		}
		lastPercent = ev.Percent
	}
	if lastPercent != 100 {
		t.Errorf("final progress percent = %d, want 100", lastPercent)
	}
}

func TestRunRobotRejectsOutOfRange(t *testing.T) {
	cfg := robotConfig()
	cfg.Limits = config.Limits{Min: 1_000, Max: 10_000}

	var buf bytes.Buffer
	err := runRobot(&buf, cfg, 50, "")
	if err == nil {
		t.Fatal("expected a limit error")
	}
	if !strings.Contains(buf.String(), `"event":"error"`) {
		t.Errorf("output = %q, want an error event", buf.String())
	}
}

func TestRunRobotWritesChart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "growth.svg")

	var buf bytes.Buffer
	if err := runRobot(&buf, robotConfig(), 5_000, path); err != nil {
		t.Fatalf("runRobot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("chart file is not SVG")
	}
}
