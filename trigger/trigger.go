// Package trigger implements a broadcast condition that goroutines can wait
// on with a select statement.
package trigger

import "sync"

// Cond is a condition shared by multiple goroutines. The Ready method returns
// a channel that is closed when the condition is activated.
//
// A new Cond is inactive. Set activates it and leaves it active until Reset
// is called. Signal wakes the goroutines already waiting and leaves the
// condition inactive, so that later arrivals wait for the next Signal.
//
// A zero Cond is ready for use, but must not be copied after first use.
type Cond struct {
	μ      sync.Mutex
	ch     chan struct{} // lazily allocated by Ready or Set
	active bool
}

// New constructs a new inactive Cond.
func New() *Cond { return new(Cond) }

// Signal wakes all goroutines currently waiting on c, and leaves c inactive.
func (c *Cond) Signal() {
	c.μ.Lock()
	defer c.μ.Unlock()
	if c.ch != nil && !c.active {
		close(c.ch)
	}
	c.ch = nil
	c.active = false
}

// Set activates c. If c is already active, Set has no effect.
func (c *Cond) Set() {
	c.μ.Lock()
	defer c.μ.Unlock()
	if c.active {
		return
	}
	if c.ch == nil {
		c.ch = make(chan struct{})
	}
	close(c.ch)
	c.active = true
}

// Reset deactivates c. If c is already inactive, Reset has no effect.
func (c *Cond) Reset() {
	c.μ.Lock()
	defer c.μ.Unlock()
	if c.active {
		c.ch = nil
		c.active = false
	}
}

// Ready returns a channel that is closed when c is activated or signaled.
// If c is active when Ready is called, the channel is already closed.
func (c *Cond) Ready() <-chan struct{} {
	c.μ.Lock()
	defer c.μ.Unlock()
	if c.ch == nil {
		c.ch = make(chan struct{})
	}
	return c.ch
}
