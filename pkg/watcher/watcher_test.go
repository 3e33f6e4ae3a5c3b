package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForChange(t *testing.T, w *Watcher, timeout time.Duration) {
	t.Helper()
	select {
	case <-w.Changed():
	case <-time.After(timeout):
		t.Fatal("no change notification before timeout")
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("a: 2\n"), 0o644); err != nil {
		t.Fatalf("rewriting file: %v", err)
	}

	waitForChange(t, w, 5*time.Second)
}

func TestWatcherPollingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	w, err := New(path,
		WithForcePoll(true),
		WithDebounce(20*time.Millisecond),
		WithPollInterval(30*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("watcher not in polling mode despite WithForcePoll")
	}

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("a: 2 # longer\n"), 0o644); err != nil {
		t.Fatalf("rewriting file: %v", err)
	}

	waitForChange(t, w, 5*time.Second)
}

func TestWatcherStartTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	w, err := New(path, WithForcePoll(true))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Fatalf("second Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	w, err := New(path, WithForcePoll(true))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	w.Stop()
	w.Stop() // must not panic
}
