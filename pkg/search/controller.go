package search

import (
	"errors"
	"fmt"
	"sync"
)

// Default limit bounds. A request outside the configured bounds is rejected
// synchronously, before any worker exists.
const (
	DefaultMinLimit = 1_000
	DefaultMaxLimit = 10_000_000
)

// ErrBusy is returned by Start while a search is already in flight. Requests
// are never queued; the caller decides whether to cancel first.
var ErrBusy = errors.New("a search is already running")

// LimitError reports a request outside the accepted bounds.
type LimitError struct {
	Limit, Min, Max int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("limit %d out of range [%d, %d]", e.Limit, e.Min, e.Max)
}

// Controller manages at most one background search at a time. It exclusively
// owns the live worker handle; nothing else holds a reference, so a released
// worker can never be reused.
type Controller struct {
	mu       sync.Mutex
	min, max int
	nextID   uint64
	worker   *Worker
	activeID uint64

	// newWorker builds the worker for a request; tests substitute it.
	newWorker func(Request) *Worker
}

// NewController creates a controller with the given limit bounds. Zero or
// inverted bounds fall back to the defaults.
func NewController(min, max int) *Controller {
	if min <= 0 {
		min = DefaultMinLimit
	}
	if max <= 0 || max < min {
		max = DefaultMaxLimit
	}
	return &Controller{
		min: min,
		max: max,
		newWorker: func(req Request) *Worker {
			return NewWorker(WorkerConfig{Request: req})
		},
	}
}

// Bounds returns the accepted limit range.
func (c *Controller) Bounds() (min, max int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.min, c.max
}

// SetBounds updates the accepted limit range. Bounds only apply to future
// requests; an in-flight search is unaffected.
func (c *Controller) SetBounds(min, max int) {
	if min <= 0 || max < min {
		return
	}
	c.mu.Lock()
	c.min, c.max = min, max
	c.mu.Unlock()
}

// Start validates limit, creates a fresh worker for it and launches the
// computation. It fails fast - with no worker created and nothing emitted -
// when the limit is out of bounds or a search is already running.
func (c *Controller) Start(limit int) (*Worker, error) {
	c.mu.Lock()
	if limit < c.min || limit > c.max {
		err := &LimitError{Limit: limit, Min: c.min, Max: c.max}
		c.mu.Unlock()
		return nil, err
	}
	if c.worker != nil {
		c.mu.Unlock()
		return nil, ErrBusy
	}

	c.nextID++
	req := Request{ID: c.nextID, Limit: limit}
	w := c.newWorker(req)
	c.worker = w
	c.activeID = req.ID
	c.mu.Unlock()

	if err := w.Start(); err != nil {
		c.mu.Lock()
		if c.worker == w {
			c.worker = nil
			c.activeID = 0
		}
		c.mu.Unlock()
		return nil, err
	}
	return w, nil
}

// Cancel unconditionally terminates the in-flight worker, if any, and stops
// trusting anything it might still emit: the handle is dropped immediately,
// so Owns reports false for its request ID from here on. Calling Cancel with
// no active worker is a no-op.
func (c *Controller) Cancel() {
	c.mu.Lock()
	w := c.worker
	c.worker = nil
	c.activeID = 0
	c.mu.Unlock()

	if w != nil {
		w.Cancel()
	}
}

// Release drops the worker handle after its terminal message has been
// consumed. The id guards against releasing a newer search by mistake.
func (c *Controller) Release(id uint64) {
	c.mu.Lock()
	if c.activeID == id {
		c.worker = nil
		c.activeID = 0
	}
	c.mu.Unlock()
}

// Owns reports whether id identifies the currently active search. Receivers
// check it before acting on a message: a message failing the check belongs to
// a cancelled or released worker and must be discarded.
func (c *Controller) Owns(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return id != 0 && id == c.activeID
}

// Active returns the in-flight worker, or nil.
func (c *Controller) Active() *Worker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.worker
}
