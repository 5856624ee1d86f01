package lightsync

import (
	"context"
	"errors"
	"sync"

	"github.com/creachadair/lightsync/trigger"
)

// ErrClosed is reported by a receive on a handoff that is closed and empty.
var ErrClosed = errors.New("handoff is closed")

// A Handoff is a single-slot mailbox shared by a producer and one or more
// consumers. A producer calls Send to store a value, and a consumer calls
// Recv to take it.
//
// Sending never blocks: a new value replaces any value not yet taken, so a
// slow consumer sees only the most recent one. Each value is delivered to at
// most one consumer; concurrent receivers race for it, and the losers resume
// waiting.
//
// A zero Handoff is ready for use, but must not be copied after first use.
type Handoff[T any] struct {
	μ      sync.Mutex
	x      T
	full   bool
	closed bool
	wake   trigger.Cond // signaled by Send and Close
}

// NewHandoff constructs a new empty handoff.
func NewHandoff[T any]() *Handoff[T] { return new(Handoff[T]) }

// Send stores v in h, discarding any value not yet received, and wakes any
// goroutines blocked in Recv. Send does not block. After h is closed, Send
// discards v.
func (h *Handoff[T]) Send(v T) {
	h.μ.Lock()
	if h.closed {
		h.μ.Unlock()
		return
	}
	h.x, h.full = v, true
	h.μ.Unlock()

	h.wake.Signal()
}

// Recv blocks until a value is available in h, then removes and returns it.
//
// If ctx ends before a value arrives, Recv returns the error from ctx. If h is
// closed and empty, Recv returns ErrClosed. A value sent before Close is still
// delivered.
func (h *Handoff[T]) Recv(ctx context.Context) (T, error) {
	for {
		// Fetch the wakeup channel before checking the slot, so that a Send
		// landing between the check and the select is not missed.
		ready := h.wake.Ready()
		if v, ok, err := h.take(); ok || err != nil {
			return v, err
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-ready:
			// Woken, but another receiver may have taken the value first.
		}
	}
}

// TryRecv removes and returns the value in h if one is present, and reports
// whether it did so. TryRecv does not block.
func (h *Handoff[T]) TryRecv() (T, bool) {
	v, ok, _ := h.take()
	return v, ok
}

func (h *Handoff[T]) take() (T, bool, error) {
	h.μ.Lock()
	defer h.μ.Unlock()
	var zero T
	if h.full {
		v := h.x
		h.x, h.full = zero, false
		return v, true, nil
	} else if h.closed {
		return zero, false, ErrClosed
	}
	return zero, false, nil
}

// Close closes h, waking any pending receivers. Receivers that find h empty
// after it is closed report ErrClosed. If h is already closed, Close returns
// ErrClosed.
func (h *Handoff[T]) Close() error {
	h.μ.Lock()
	if h.closed {
		h.μ.Unlock()
		return ErrClosed
	}
	h.closed = true
	h.μ.Unlock()

	h.wake.Signal()
	return nil
}
