package light

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	DefaultMinCycle = 4 * time.Second
	DefaultMaxCycle = 6 * time.Second
	DefaultPoll     = time.Millisecond
)

// Config carries the settings for a [Controller].
type Config struct {
	// MinCycle and MaxCycle bound the time the light dwells in each phase.
	// Each dwell is drawn uniformly from [MinCycle, MaxCycle].
	MinCycle time.Duration `yaml:"min_cycle"`
	MaxCycle time.Duration `yaml:"max_cycle"`

	// Poll is how long the drive loop sleeps between checks of the clock.
	Poll time.Duration `yaml:"poll"`

	// Seed, if nonzero, makes the sequence of dwell times deterministic.
	Seed uint64 `yaml:"seed"`

	// Logger receives transition records at debug level.
	// If nil, slog.Default() is used.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns a Config with the default cycle bounds.
func DefaultConfig() Config {
	return Config{
		MinCycle: DefaultMinCycle,
		MaxCycle: DefaultMaxCycle,
		Poll:     DefaultPoll,
	}
}

// FixedCycle returns a copy of c whose dwell time is exactly d.
func (c Config) FixedCycle(d time.Duration) Config {
	c.MinCycle, c.MaxCycle = d, d
	return c
}

// Validate reports an error if c cannot be used to construct a controller.
func (c Config) Validate() error {
	var errs []error
	if c.MinCycle <= 0 {
		errs = append(errs, fmt.Errorf("min_cycle must be positive, got %v", c.MinCycle))
	}
	if c.MaxCycle < c.MinCycle {
		errs = append(errs, fmt.Errorf("max_cycle %v is less than min_cycle %v", c.MaxCycle, c.MinCycle))
	}
	if c.Poll <= 0 {
		errs = append(errs, fmt.Errorf("poll must be positive, got %v", c.Poll))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML configuration from path. Fields not set in the file
// keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
