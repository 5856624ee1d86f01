// Package light implements a traffic light whose phase alternates between red
// and green on a randomized timer.
//
// A [Controller] publishes each phase change through a [lightsync.Handoff].
// Goroutines that need to synchronize with the light call
// [Controller.WaitFor], which blocks until the light changes to the requested
// phase:
//
//	c, err := light.New(light.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	d := c.Start(ctx)
//	defer d.Stop()
//
//	if err := c.WaitFor(ctx, light.Green); err != nil {
//		return err
//	}
//	// ... the light is now green
package light

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/creachadair/lightsync"
)

var (
	// ErrRunning is reported by Run if the drive loop is already active.
	ErrRunning = errors.New("light is already running")

	// ErrUninitialized is reported by the methods of a Controller that was
	// not constructed by New.
	ErrUninitialized = errors.New("light controller is not initialized")
)

// A Controller drives a traffic light through its phases. The light starts
// red, and toggles each time its dwell time elapses. Construct a Controller
// with New.
//
// A Controller is safe for concurrent use. Exactly one goroutine at a time
// may execute its drive loop; any number may call Current and WaitFor.
type Controller struct {
	cfg     Config
	log     *slog.Logger
	phase   *lightsync.Value[Phase]
	box     *lightsync.Handoff[Phase]
	running atomic.Bool
	closed  atomic.Bool
	nturns  atomic.Uint64

	μ   sync.Mutex // protects rng
	rng *rand.Rand
}

// New constructs a Controller with the given settings. The light is red and
// does not change until its drive loop is started with Run or Start.
func New(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var src rand.Source
	if cfg.Seed != 0 {
		src = rand.NewPCG(cfg.Seed, cfg.Seed>>32|1)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		cfg:   cfg,
		log:   log,
		phase: lightsync.NewValue(Red),
		box:   lightsync.NewHandoff[Phase](),
		rng:   rand.New(src),
	}, nil
}

// MustNew is as New, but panics if cfg is invalid.
func MustNew(cfg Config) *Controller {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Controller) ok() bool { return c != nil && c.box != nil }

// Current returns the current phase of the light. It does not block.
// An uninitialized controller reports Red.
func (c *Controller) Current() Phase {
	if !c.ok() {
		return Red
	}
	return c.phase.Get()
}

// Transitions reports the number of phase changes made so far.
func (c *Controller) Transitions() uint64 {
	if !c.ok() {
		return 0
	}
	return c.nturns.Load()
}

// WaitFor blocks until the light next changes to target, or until ctx ends.
// Only changes made after WaitFor is called are observed: if the light is
// already showing target, WaitFor waits for it to come around again.
//
// Each change is delivered to a single waiter. If several goroutines wait
// concurrently, a change may be consumed by one of them and not seen by the
// others, and a waiter that falls behind sees only the most recent change.
func (c *Controller) WaitFor(ctx context.Context, target Phase) error {
	if !c.ok() {
		return ErrUninitialized
	}
	c.box.TryRecv() // discard a change made before the call
	for {
		p, err := c.box.Recv(ctx)
		if err != nil {
			return err
		} else if p == target {
			return nil
		}
	}
}

// WaitForGreen is shorthand for c.WaitFor(ctx, Green).
func (c *Controller) WaitForGreen(ctx context.Context) error { return c.WaitFor(ctx, Green) }

// Changed blocks until the light changes phase or ctx ends, and returns the
// current phase. The flag reports whether a change occurred (true) or ctx
// ended (false). Unlike WaitFor, every caller of Changed observes each change,
// so it is suited to displaying the light rather than synchronizing with it.
func (c *Controller) Changed(ctx context.Context) (Phase, bool) {
	if !c.ok() {
		return Red, false
	}
	return c.phase.Wait(ctx)
}

// Run executes the drive loop of the light in the calling goroutine until ctx
// ends, and then returns the error from ctx. If another goroutine is already
// running the loop, Run returns ErrRunning without blocking. If c is closed,
// Run returns [lightsync.ErrClosed].
func (c *Controller) Run(ctx context.Context) error {
	if !c.ok() {
		return ErrUninitialized
	}
	if !c.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer c.running.Store(false)
	if c.closed.Load() {
		return lightsync.ErrClosed
	}

	poll := time.NewTicker(c.cfg.Poll)
	defer poll.Stop()

	dwell := c.nextDwell()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-poll.C:
		}
		if elapsed := time.Since(start); elapsed < dwell {
			continue
		}
		next := c.phase.Get().Next()
		c.phase.Set(next)
		c.nturns.Add(1)
		c.box.Send(next)
		c.log.Debug("light changed", "phase", next, "dwell", dwell)

		start = time.Now()
		dwell = c.nextDwell()
	}
}

// nextDwell draws a duration uniformly from [MinCycle, MaxCycle].
func (c *Controller) nextDwell() time.Duration {
	c.μ.Lock()
	defer c.μ.Unlock()
	span := c.cfg.MaxCycle - c.cfg.MinCycle
	return c.cfg.MinCycle + time.Duration(c.rng.Int64N(int64(span)+1))
}

// Close closes c. Goroutines blocked in WaitFor, and any that call it later,
// report [lightsync.ErrClosed]. Close does not stop a running drive loop; stop
// it first via its context or Driver. If c is already closed, Close returns
// ErrClosed.
func (c *Controller) Close() error {
	if !c.ok() {
		return ErrUninitialized
	}
	c.closed.Store(true)
	return c.box.Close()
}

// Start runs the drive loop of the light in a new goroutine, and returns a
// Driver the caller uses to stop it and wait for it to exit. The loop runs
// until ctx ends or the driver is stopped.
func (c *Controller) Start(ctx context.Context) *Driver {
	ctx, cancel := context.WithCancel(ctx)
	d := &Driver{stop: cancel, done: make(chan struct{})}
	go func() {
		defer close(d.done)
		d.err = c.Run(ctx)
	}()
	return d
}

// A Driver is a handle to a drive loop started by [Controller.Start].
type Driver struct {
	stop context.CancelFunc
	done chan struct{}
	err  error // set before done is closed
}

// Stop signals the drive loop to exit, and waits for it to do so.
// Stop is safe to call more than once.
func (d *Driver) Stop() { d.stop(); <-d.done }

// Done returns a channel that is closed when the drive loop has exited.
func (d *Driver) Done() <-chan struct{} { return d.done }

// Wait blocks until the drive loop exits, and returns its error. A loop that
// exits because it was stopped reports [context.Canceled].
func (d *Driver) Wait() error { <-d.done; return d.err }
