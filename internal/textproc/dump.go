package textproc

import (
	"strings"

	"github.com/xkilldash9x/randtype/internal/config"
)

// Mode says how a Segment reaches the output.
type Mode int

const (
	// Typed segments go through the typist.
	Typed Mode = iota
	// Instant segments are printed at once.
	Instant
)

func (m Mode) String() string {
	if m == Instant {
		return "instant"
	}
	return "typed"
}

// Segment is one contiguous piece of a line and how to emit it.
type Segment struct {
	Text string
	Mode Mode
}

// Split plans the output of line for the dump marker d. Segments are returned
// in output order and empty segments are omitted.
//
// Left: the text before the marker is printed instantly and the rest is
// typed, starting with the marker unless Kill is set.
//
// Right: the text before the marker is typed and the rest is printed
// instantly, starting with the marker unless Kill is set.
//
// A line without the marker, or any line when d is not enabled, is typed whole.
func Split(line string, d config.DumpConfig) []Segment {
	if !d.Enabled() {
		return plan(Segment{Text: line, Mode: Typed})
	}

	k := strings.Index(line, d.Marker)
	if k < 0 {
		return plan(Segment{Text: line, Mode: Typed})
	}

	rest := line[k:]
	if d.Kill {
		rest = line[k+len(d.Marker):]
	}

	switch d.Direction {
	case config.DirectionRight:
		return plan(
			Segment{Text: line[:k], Mode: Typed},
			Segment{Text: rest, Mode: Instant},
		)
	default:
		return plan(
			Segment{Text: line[:k], Mode: Instant},
			Segment{Text: rest, Mode: Typed},
		)
	}
}

func plan(segments ...Segment) []Segment {
	out := segments[:0]
	for _, s := range segments {
		if s.Text != "" {
			out = append(out, s)
		}
	}
	return out
}
