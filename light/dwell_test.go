package light

import (
	"testing"
	"time"
)

func TestNextDwell(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 20260401

	c1, c2 := MustNew(cfg), MustNew(cfg)
	for i := range 1000 {
		d1, d2 := c1.nextDwell(), c2.nextDwell()
		if d1 < cfg.MinCycle || d1 > cfg.MaxCycle {
			t.Errorf("Draw %d: got %v, want %v to %v", i+1, d1, cfg.MinCycle, cfg.MaxCycle)
		}
		if d1 != d2 {
			t.Errorf("Draw %d: seeded controllers disagree: %v ≠ %v", i+1, d1, d2)
		}
	}

	t.Run("Fixed", func(t *testing.T) {
		c := MustNew(DefaultConfig().FixedCycle(100 * time.Millisecond))
		for range 10 {
			if got := c.nextDwell(); got != 100*time.Millisecond {
				t.Errorf("nextDwell: got %v, want 100ms", got)
			}
		}
	})
}
