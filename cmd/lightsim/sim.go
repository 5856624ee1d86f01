package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/creachadair/lightsync"
	"github.com/creachadair/lightsync/light"
)

// CLI holds the command-line flags for lightsim.
type CLI struct {
	Config   string           `help:"YAML config file path" short:"c" type:"existingfile"`
	Vehicles int              `help:"number of vehicles waiting at the light" short:"n" default:"3"`
	For      time.Duration    `help:"stop after this long (0 runs until interrupted)" default:"0"`
	Debug    bool             `help:"enable debug logging" short:"d"`
	JSON     bool             `help:"write JSON logs instead of a console display"`
	Version  kong.VersionFlag `help:"print the version and exit"`
}

var (
	redStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
	greenStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// render returns a display line for the light showing p at time t.
func render(p light.Phase, t time.Time) string {
	style := redStyle
	if p == light.Green {
		style = greenStyle
	}
	return timeStyle.Render(t.Format("15:04:05.000")) + " " + style.Render("● "+p.String())
}

// newLogger constructs the logger for the simulation, writing to w.
func (c *CLI) newLogger(w io.Writer) *slog.Logger {
	level := new(slog.LevelVar)
	if c.Debug {
		level.Set(slog.LevelDebug)
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadConfig returns the light settings selected by the flags.
func (c *CLI) loadConfig() (light.Config, error) {
	if c.Config == "" {
		return light.DefaultConfig(), nil
	}
	return light.LoadConfig(c.Config)
}

// Run runs the simulation until ctx ends or the --for duration elapses.
func (c *CLI) Run(ctx context.Context) error {
	if c.Vehicles < 0 {
		return fmt.Errorf("invalid vehicle count %d", c.Vehicles)
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger := c.newLogger(os.Stderr)
	slog.SetDefault(logger)
	cfg.Logger = logger

	if c.For > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.For)
		defer cancel()
	}
	return simulate(ctx, cfg, c.Vehicles, c.display(os.Stdout, logger))
}

// display returns a function that reports a phase change.
func (c *CLI) display(w io.Writer, logger *slog.Logger) func(light.Phase) {
	if c.JSON {
		return func(p light.Phase) { logger.Info("phase", "phase", p) }
	}
	return func(p light.Phase) { fmt.Fprintln(w, render(p, time.Now())) }
}

// simulate runs a light configured by cfg with the given number of vehicles,
// calling show for each phase change, until ctx ends.
func simulate(ctx context.Context, cfg light.Config, vehicles int, show func(light.Phase)) error {
	ctl, err := light.New(cfg)
	if err != nil {
		return err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	show(ctl.Current())

	var wg sync.WaitGroup
	wg.Go(func() {
		for {
			p, ok := ctl.Changed(ctx)
			if !ok {
				return
			}
			show(p)
		}
	})
	for i := range vehicles {
		wg.Go(func() { drive(ctx, ctl, i+1, log) })
	}

	d := ctl.Start(ctx)
	err = d.Wait()
	if cerr := ctl.Close(); cerr != nil {
		log.Error("close light", "error", cerr)
	}
	wg.Wait()

	if ctxDone(err) {
		log.Info("simulation stopped", "transitions", ctl.Transitions())
		return nil
	}
	return err
}

// drive runs a vehicle that crosses each time the light turns green, and then
// waits for the light to turn red before approaching again.
func drive(ctx context.Context, ctl *light.Controller, id int, log *slog.Logger) {
	log = log.With("vehicle", id)
	for {
		log.Debug("waiting at light")
		if err := ctl.WaitFor(ctx, light.Green); err != nil {
			logStop(log, err)
			return
		}
		log.Info("crossing", "phase", ctl.Current())
		if err := ctl.WaitFor(ctx, light.Red); err != nil {
			logStop(log, err)
			return
		}
	}
}

func logStop(log *slog.Logger, err error) {
	if errors.Is(err, lightsync.ErrClosed) || ctxDone(err) {
		log.Debug("vehicle parked")
		return
	}
	log.Error("vehicle stopped", "error", err)
}

func ctxDone(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
