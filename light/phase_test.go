package light_test

import (
	"testing"

	"github.com/creachadair/lightsync/light"
	"github.com/creachadair/mds/mtest"
)

func TestPhase(t *testing.T) {
	var zero light.Phase
	if zero != light.Red {
		t.Errorf("Zero phase: got %v, want %v", zero, light.Red)
	}
	if got := light.Red.Next(); got != light.Green {
		t.Errorf("Red.Next: got %v, want %v", got, light.Green)
	}
	if got := light.Green.Next(); got != light.Red {
		t.Errorf("Green.Next: got %v, want %v", got, light.Red)
	}
	mtest.MustPanicf(t, func() { light.Phase(5).Next() }, "Next of an invalid phase should panic")

	tests := []struct {
		input string
		want  light.Phase
		ok    bool
	}{
		{"red", light.Red, true},
		{"GREEN", light.Green, true},
		{"Green", light.Green, true},
		{"amber", light.Red, false},
		{"", light.Red, false},
	}
	for _, tc := range tests {
		var p light.Phase
		err := p.UnmarshalText([]byte(tc.input))
		if (err == nil) != tc.ok {
			t.Errorf("UnmarshalText(%q): got error %v, want ok=%v", tc.input, err, tc.ok)
		} else if p != tc.want {
			t.Errorf("UnmarshalText(%q): got %v, want %v", tc.input, p, tc.want)
		}
	}

	if got := light.Phase(7).String(); got != "Phase(7)" {
		t.Errorf("String: got %q, want Phase(7)", got)
	}
	if _, err := light.Phase(7).MarshalText(); err == nil {
		t.Error("MarshalText of an invalid phase: got nil, want error")
	}
}
