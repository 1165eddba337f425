// Package sequence maps frame indices of a countdown to their timestamp,
// remaining ring fraction and output filename.
package sequence

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

const secondsPerMinute = 60

// ErrEmptySequence is returned by New for a countdown shorter than one second.
var ErrEmptySequence = errors.New("countdown has no frames")

// FrameSpec describes one second of the countdown.
type FrameSpec struct {
	Index       int
	Timestamp   string  // "4:59", "09:05", ...
	ArcFraction float64 // share of the ring still filled, in [0, 1)
	Filename    string
}

// Generator produces the frames of a countdown starting just under Minutes
// and ending at 0:00. The zero value is not usable; see New.
type Generator struct {
	minutes     int
	padMinutes  bool
	total       int
	indexDigits int
}

// New returns a generator for a countdown of the given length. Range
// checking of minutes beyond "produces at least one frame" is left to
// the caller.
//
// Minutes are zero-padded only when leadingZeroes is set and the countdown
// is long enough for minute values to reach two digits.
func New(minutes int, leadingZeroes bool) (*Generator, error) {
	total := minutes * secondsPerMinute
	if total <= 0 {
		return nil, fmt.Errorf("%w: %d minutes", ErrEmptySequence, minutes)
	}
	return &Generator{
		minutes:     minutes,
		padMinutes:  leadingZeroes && minutes >= 10,
		total:       total,
		indexDigits: len(strconv.Itoa(total)),
	}, nil
}

// Total is the number of frames, one per second.
func (g *Generator) Total() int { return g.total }

// Frame returns the i-th frame (0 is the first). It depends on nothing but
// i, so frames may be produced in any order.
func (g *Generator) Frame(i int) FrameSpec {
	remaining := g.total - 1 - i
	minute, second := remaining/secondsPerMinute, remaining%secondsPerMinute

	ts := g.timestamp(minute, second)
	return FrameSpec{
		Index:       i,
		Timestamp:   ts,
		ArcFraction: 1 - float64(i+1)/float64(g.total),
		Filename:    fmt.Sprintf("%0*d-countdown-%s.png", g.indexDigits, i, strings.ReplaceAll(ts, ":", "_")),
	}
}

func (g *Generator) timestamp(minute, second int) string {
	if g.padMinutes {
		return fmt.Sprintf("%02d:%02d", minute, second)
	}
	return fmt.Sprintf("%d:%02d", minute, second)
}

// All yields every frame in countdown order.
func (g *Generator) All() iter.Seq[FrameSpec] {
	return func(yield func(FrameSpec) bool) {
		for i := 0; i < g.total; i++ {
			if !yield(g.Frame(i)) {
				return
			}
		}
	}
}

// Frames collects All into a slice.
func (g *Generator) Frames() []FrameSpec {
	frames := make([]FrameSpec, 0, g.total)
	for f := range g.All() {
		frames = append(frames, f)
	}
	return frames
}
