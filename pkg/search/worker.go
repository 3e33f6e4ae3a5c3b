// Package search implements the background prime search: a worker that runs
// the computation off the UI thread and a controller that owns its lifecycle.
// The two sides share no memory; everything crosses the boundary as a copied
// Message on the worker's channel.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/primewatch/primewatch/pkg/metrics"
	"github.com/primewatch/primewatch/pkg/prime"
)

// State represents where a worker is in its lifecycle. Completed, Failed and
// Cancelled are terminal: a worker never leaves them, and a new request needs
// a new worker.
type State int

const (
	// StateIdle means the worker has been created but Start has not run.
	StateIdle State = iota
	// StateRunning means the computation is in flight.
	StateRunning
	// StateCompleted means the worker emitted its CompleteMsg.
	StateCompleted
	// StateFailed means the worker emitted its ErrorMsg.
	StateFailed
	// StateCancelled means the controller tore the worker down before it
	// finished. Nothing was emitted after the cancellation point.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// LogLevel controls worker log verbosity.
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "error"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	default:
		return "none"
	}
}

func parseLogLevel(raw string) LogLevel {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "error", "err", "1":
		return LogLevelError
	case "info", "2":
		return LogLevelInfo
	case "debug", "3":
		return LogLevelDebug
	default:
		return LogLevelNone
	}
}

// SearchError wraps a computation failure with the phase it occurred in.
type SearchError struct {
	Phase string // "start", "probe"
	Cause error
	Time  time.Time
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Cause)
}

func (e *SearchError) Unwrap() error {
	return e.Cause
}

// WorkerConfig configures a Worker.
type WorkerConfig struct {
	Request Request
	// MessageBuffer is the buffer size of the worker -> controller channel
	// (default 8, override via PW_CHANNEL_BUFFER).
	MessageBuffer int
	// Probe is the per-candidate primality test. Defaults to prime.IsPrime;
	// tests substitute it to inject slow or faulty computations.
	Probe func(int) bool
}

// Worker executes one prime search to completion or failure, yielding control
// at each progress-emission point so cancellation can be observed. A worker
// instance serves exactly one Request.
type Worker struct {
	req   Request
	probe func(int) bool

	mu    sync.Mutex
	state State

	msgCh    chan Message
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	logLevel LogLevel
}

// NewWorker creates a worker for the given request. The worker does nothing
// until Start is called.
func NewWorker(cfg WorkerConfig) *Worker {
	if cfg.MessageBuffer <= 0 {
		cfg.MessageBuffer = envPositiveIntOr("PW_CHANNEL_BUFFER", 8)
	}
	if cfg.Probe == nil {
		cfg.Probe = prime.IsPrime
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		req:      cfg.Request,
		probe:    cfg.Probe,
		state:    StateIdle,
		msgCh:    make(chan Message, cfg.MessageBuffer),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		logLevel: parseLogLevel(os.Getenv("PW_WORKER_LOG_LEVEL")),
	}
}

// Messages returns the channel of messages emitted by the worker. The channel
// is owned by the worker and never closed; use Done to stop waiting.
func (w *Worker) Messages() <-chan Message {
	if w == nil {
		return nil
	}
	return w.msgCh
}

// Done is closed once the worker reaches a terminal state.
func (w *Worker) Done() <-chan struct{} {
	if w == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return w.done
}

// Request returns the request this worker was created for.
func (w *Worker) Request() Request {
	return w.req
}

// State returns the current lifecycle state.
func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Start launches the computation. A worker runs exactly one request: starting
// a worker that is already running or spent is a programmer error and fails
// synchronously.
func (w *Worker) Start() error {
	w.mu.Lock()
	if w.state != StateIdle {
		state := w.state
		w.mu.Unlock()
		return &SearchError{
			Phase: "start",
			Cause: fmt.Errorf("worker is %s, want idle", state),
			Time:  time.Now(),
		}
	}
	w.state = StateRunning
	w.mu.Unlock()

	w.logEvent(LogLevelInfo, "search_start", map[string]any{
		"request": w.req.ID,
		"limit":   w.req.Limit,
	})

	go w.run()
	return nil
}

// Cancel abandons the computation. The worker stops at the next
// progress-emission point and emits nothing further; messages already
// buffered are discarded by the controller's ownership check.
// Cancelling a worker that already finished is a no-op.
func (w *Worker) Cancel() {
	if w == nil {
		return
	}
	w.cancel()
}

func (w *Worker) run() {
	defer close(w.done)
	defer metrics.Timer(metrics.SearchRun)()

	start := time.Now()
	primes, err := w.search()
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, context.Canceled):
		w.setState(StateCancelled)
		w.logEvent(LogLevelInfo, "search_cancelled", map[string]any{
			"request":    w.req.ID,
			"elapsed_ms": float64(elapsed.Microseconds()) / 1000.0,
		})

	case err != nil:
		w.setState(StateFailed)
		w.logEvent(LogLevelError, "search_failed", map[string]any{
			"request": w.req.ID,
			"error":   err.Error(),
		})
		w.send(ErrorMsg{RequestID: w.req.ID, Err: err})

	default:
		w.setState(StateCompleted)
		w.logEvent(LogLevelInfo, "search_complete", map[string]any{
			"request":    w.req.ID,
			"found":      len(primes),
			"elapsed_ms": float64(elapsed.Microseconds()) / 1000.0,
		})
		w.send(CompleteMsg{RequestID: w.req.ID, Primes: primes, Elapsed: elapsed})
	}
}

// search iterates the candidate range, accumulating primes and emitting one
// progress message per 1/100th of the range plus an unconditional final one
// at 100%. Percent values are strictly increasing across emissions.
// Cancellation is sampled at the emission points, so ranges below 100
// candidates only observe it at the final one.
func (w *Worker) search() (primes []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SearchError{
				Phase: "probe",
				Cause: fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
				Time:  time.Now(),
			}
		}
	}()

	if err := w.ctx.Err(); err != nil {
		return nil, err
	}

	limit := w.req.Limit
	step := limit / 100
	lastPercent := -1
	checked := 0

	for n := 1; n <= limit; n++ {
		if w.probe(n) {
			primes = append(primes, n)
		}
		checked++

		final := n == limit
		if !final && (step == 0 || n%step != 0) {
			continue
		}
		percent := n * 100 / limit
		if !final && percent <= lastPercent {
			continue
		}

		if err := w.ctx.Err(); err != nil {
			return nil, err
		}
		lastPercent = percent
		w.send(ProgressMsg{
			RequestID: w.req.ID,
			Percent:   percent,
			Checked:   checked,
			Found:     len(primes),
		})
	}

	return primes, nil
}

func (w *Worker) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// send delivers msg without ever blocking the computation. If the channel is
// full, the oldest buffered message is dropped so the newest wins; terminal
// messages are always the last sent, so they are never the ones displaced.
func (w *Worker) send(msg Message) {
	for {
		select {
		case w.msgCh <- msg:
			return
		case <-w.ctx.Done():
			return
		default:
		}

		select {
		case <-w.msgCh:
		default:
		}
	}
}

func (w *Worker) logEvent(level LogLevel, event string, fields map[string]any) {
	if w == nil || level == LogLevelNone || level > w.logLevel {
		return
	}

	payload := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level.String(),
		"component": "search_worker",
		"event":     event,
	}
	for k, v := range fields {
		payload[k] = v
	}
	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("search worker: failed to marshal log event %s: %v", event, err)
		return
	}
	log.Printf("%s", b)
}

func envPositiveIntOr(name string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
