// Package composer turns a countdown instant into a finished frame: the
// draining ring first, then the time-remaining text on top.
package composer

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font"

	"github.com/cmpilato/gen-countdown-frames/internal/canvas"
	"github.com/cmpilato/gen-countdown-frames/internal/config"
	"github.com/cmpilato/gen-countdown-frames/internal/sequence"
)

var transparent = color.NRGBA{}

// SurfaceFactory allocates a blank, fully transparent surface.
type SurfaceFactory func(width, height int) canvas.Surface

// releaser is implemented by surfaces holding pooled buffers.
type releaser interface {
	Release()
}

func newRGBASurface(width, height int) canvas.Surface {
	return canvas.NewRGBA(width, height)
}

// Composer renders frames for one RenderConfig. It is not safe for
// concurrent use because the font face isn't; give each goroutine its own.
type Composer struct {
	cfg        *config.RenderConfig
	face       font.Face
	newSurface SurfaceFactory
}

// New returns a composer drawing onto in-memory RGBA surfaces. face may be
// nil only when text is disabled.
func New(cfg *config.RenderConfig, face font.Face) *Composer {
	return &Composer{cfg: cfg, face: face, newSurface: newRGBASurface}
}

// WithSurfaceFactory returns a copy of c allocating surfaces through f.
func (c *Composer) WithSurfaceFactory(f SurfaceFactory) *Composer {
	cc := *c
	cc.newSurface = f
	return &cc
}

// TextPlacement is where and how large the timestamp is drawn.
type TextPlacement struct {
	X, Y          float64
	Width, Height int
}

// Layout is the computed geometry of one frame.
type Layout struct {
	Ring    RingGeometry
	HasRing bool
	Text    TextPlacement
	HasText bool
}

// Layout computes the frame geometry, measuring text on s.
func (c *Composer) Layout(s canvas.Surface, timestamp string, arcFraction float64) Layout {
	var l Layout
	l.Ring, l.HasRing = Ring(c.cfg, arcFraction)

	if !c.cfg.DisableText {
		tw := s.MeasureText(timestamp, c.face).Dx()
		th := s.MeasureText(ReferenceGlyphs, c.face).Dy()
		x, y := TextOrigin(c.cfg, tw, th)
		l.Text = TextPlacement{X: x, Y: y, Width: tw, Height: th}
		l.HasText = true
	}
	return l
}

// Draw composes one frame onto s.
func (c *Composer) Draw(s canvas.Surface, timestamp string, arcFraction float64) {
	l := c.Layout(s, timestamp, arcFraction)
	shadow := c.cfg.ShadowColor
	off := float64(c.cfg.ShadowOffset)

	if l.HasRing {
		g := l.Ring
		if shadow != nil {
			s.DrawPieSlice(g.Outer.Offset(off), g.StartDeg, g.EndDeg, *shadow)
			if g.HasInner {
				s.DrawPieSlice(g.Inner.Offset(off), g.StartDeg, g.EndDeg, transparent)
			}
		}
		s.DrawPieSlice(g.Outer, g.StartDeg, g.EndDeg, c.cfg.RingColor)
		if g.HasInner {
			s.DrawPieSlice(g.Inner, g.StartDeg, g.EndDeg, transparent)
		}
	}

	if l.HasText {
		if shadow != nil {
			s.DrawText(l.Text.X+off, l.Text.Y+off, timestamp, *shadow, c.face)
		}
		s.DrawText(l.Text.X, l.Text.Y, timestamp, c.cfg.FontColor, c.face)
	}

	if c.cfg.Rotate {
		s.Rotate180()
	}
}

// Render draws frame on a fresh surface and saves it to path.
func (c *Composer) Render(frame sequence.FrameSpec, path string) error {
	s := c.newSurface(c.cfg.Width, c.cfg.Height)
	if r, ok := s.(releaser); ok {
		defer r.Release()
	}

	c.Draw(s, frame.Timestamp, frame.ArcFraction)
	if err := s.Save(path); err != nil {
		return fmt.Errorf("frame %d: %w", frame.Index, err)
	}
	return nil
}
