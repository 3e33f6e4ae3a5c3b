package search

import "time"

// Request is the single input payload that starts a search. It is immutable
// once handed to a worker and consumed exactly once.
type Request struct {
	// ID identifies the request so receivers can discard notifications from
	// a search that has since been cancelled or superseded.
	ID uint64
	// Limit is the upper bound of the search range, inclusive.
	Limit int
}

// Message is the tagged union a worker emits back to its controller. The set
// of implementations is closed: ProgressMsg, CompleteMsg and ErrorMsg.
// Receivers consume it through an exhaustive type switch rather than a family
// of callback slots.
type Message interface {
	searchMessage()
	// Request returns the ID of the request the message belongs to.
	Request() uint64
}

// ProgressMsg reports how far a running search has advanced. Only the latest
// one matters; a newer progress message supersedes any older one.
type ProgressMsg struct {
	RequestID uint64
	// Percent is an integer in [0, 100]. Successive progress messages carry
	// strictly increasing percents, and the last one is always 100.
	Percent int
	// Checked is the number of candidates examined so far.
	Checked int
	// Found is the number of primes found so far.
	Found int
}

// CompleteMsg is the terminal message of a successful search. After emitting
// it the worker goes quiet for good.
type CompleteMsg struct {
	RequestID uint64
	// Primes holds every prime <= the requested limit, ascending.
	Primes []int
	// Elapsed is the wall-clock duration of the computation.
	Elapsed time.Duration
}

// ErrorMsg is the terminal message of a failed search. A worker emits at most
// one, and never a CompleteMsg alongside it.
type ErrorMsg struct {
	RequestID uint64
	Err       error
}

func (m ProgressMsg) searchMessage() {}
func (m CompleteMsg) searchMessage() {}
func (m ErrorMsg) searchMessage()    {}

func (m ProgressMsg) Request() uint64 { return m.RequestID }
func (m CompleteMsg) Request() uint64 { return m.RequestID }
func (m ErrorMsg) Request() uint64    { return m.RequestID }
