// Package signal defines the basic interfaces for working with the
// output lines of a CHIP-8 machine (display refresh and tone). A
// component which raises one of these lets others poll it without cross
// coupling component logic.
package signal

import "sync/atomic"

type Sender interface {
	// Raised indicates whether the signal is currently held high.
	Raised() bool
}

// Level is a signal which stays in the state last set.
// The zero value is lowered.
type Level struct {
	v atomic.Bool
}

var _ = Sender(&Level{})

// Set drives the level and returns true if this changed its state.
func (l *Level) Set(on bool) bool {
	return l.v.Swap(on) != on
}

// Raised implements the Sender interface.
func (l *Level) Raised() bool {
	return l.v.Load()
}

// Edge is a signal which, once raised, stays high until it's consumed.
// The zero value is lowered.
type Edge struct {
	v atomic.Bool
}

var _ = Sender(&Edge{})

// Raise sets the edge.
func (e *Edge) Raise() {
	e.v.Store(true)
}

// Raised implements the Sender interface. It doesn't clear the edge.
func (e *Edge) Raised() bool {
	return e.v.Load()
}

// Consume clears the edge and returns whether it had been raised.
func (e *Edge) Consume() bool {
	return e.v.Swap(false)
}

// Clear lowers the edge without reporting.
func (e *Edge) Clear() {
	e.v.Store(false)
}
