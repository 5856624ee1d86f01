// Package lightsync defines synchronization types for publishing the state of
// a periodically changing value to goroutines that wait for it.
package lightsync

import (
	"context"
	"sync"

	"github.com/creachadair/lightsync/trigger"
)

// A Value is a mutable container for a single value of type T that can be
// concurrently accessed by multiple goroutines. Unlike a Handoff, every
// goroutine waiting on a Value observes each update.
//
// A zero Value is ready for use, but must not be copied after first use.
type Value[T any] struct {
	μ       sync.Mutex
	x       T
	changed trigger.Cond // signaled by Set
}

// NewValue creates a new Value with the given initial value.
func NewValue[T any](init T) *Value[T] { return &Value[T]{x: init} }

// Set updates the value stored in v to newValue, and wakes any goroutines
// blocked in Wait, even if the value did not change.
func (v *Value[T]) Set(newValue T) {
	v.μ.Lock()
	v.x = newValue
	v.μ.Unlock()
	v.changed.Signal()
}

// Get returns the current value stored in v.
func (v *Value[T]) Get() T {
	v.μ.Lock()
	defer v.μ.Unlock()
	return v.x
}

// Wait blocks until v.Set is called or ctx ends, and returns the current value
// of v. The flag reports whether Set was called (true) or ctx ended (false).
//
// If ctx ends first, Wait returns the value v held when Wait was called. If
// several goroutines call Set concurrently with Wait, the result is the value
// from one of them, not necessarily the first.
func (v *Value[T]) Wait(ctx context.Context) (T, bool) {
	ready := v.changed.Ready()
	old := v.Get()
	select {
	case <-ctx.Done():
		return old, false
	case <-ready:
		return v.Get(), true
	}
}
