package light_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creachadair/lightsync/light"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "light.yaml")
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		t.Fatalf("Write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := light.LoadConfig(writeConfig(t, "min_cycle: 100ms\nmax_cycle: 250ms\nseed: 17\n"))
		if err != nil {
			t.Fatalf("LoadConfig: unexpected error: %v", err)
		}
		if cfg.MinCycle != 100*time.Millisecond || cfg.MaxCycle != 250*time.Millisecond {
			t.Errorf("Cycle: got %v..%v, want 100ms..250ms", cfg.MinCycle, cfg.MaxCycle)
		}
		if cfg.Poll != light.DefaultPoll {
			t.Errorf("Poll: got %v, want %v", cfg.Poll, light.DefaultPoll)
		}
		if cfg.Seed != 17 {
			t.Errorf("Seed: got %d, want 17", cfg.Seed)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		cfg, err := light.LoadConfig(writeConfig(t, ""))
		if err != nil {
			t.Fatalf("LoadConfig: unexpected error: %v", err)
		}
		if cfg.MinCycle != light.DefaultMinCycle || cfg.MaxCycle != light.DefaultMaxCycle {
			t.Errorf("Cycle: got %v..%v, want defaults", cfg.MinCycle, cfg.MaxCycle)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, text := range []string{
			"min_cycle: 5s\nmax_cycle: 1s\n",
			"poll: 0s\n",
			"min_cycle: [1, 2]\n",
		} {
			if cfg, err := light.LoadConfig(writeConfig(t, text)); err == nil {
				t.Errorf("LoadConfig(%q): got %+v, want error", text, cfg)
			}
		}
	})

	t.Run("Missing", func(t *testing.T) {
		if _, err := light.LoadConfig(filepath.Join(t.TempDir(), "nonesuch.yaml")); err == nil {
			t.Error("LoadConfig of a missing file: got nil, want error")
		}
	})
}
