package light

import (
	"fmt"
	"strings"
)

// Phase is the state of a traffic light. The zero value is Red.
type Phase int

const (
	Red Phase = iota
	Green
)

// Valid reports whether p is one of the defined phases.
func (p Phase) Valid() bool { return p == Red || p == Green }

// Next returns the phase that follows p.
func (p Phase) Next() Phase {
	switch p {
	case Red:
		return Green
	case Green:
		return Red
	}
	panic(fmt.Sprintf("invalid phase %d", int(p)))
}

func (p Phase) String() string {
	switch p {
	case Red:
		return "red"
	case Green:
		return "green"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText implements [encoding.TextMarshaler].
func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Names are matched
// without regard to case.
func (p *Phase) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "red":
		*p = Red
	case "green":
		*p = Green
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}
