package composer

import (
	"math"

	"github.com/cmpilato/gen-countdown-frames/internal/canvas"
	"github.com/cmpilato/gen-countdown-frames/internal/config"
)

const (
	// ReferenceGlyphs fixes the text height for every frame so the text
	// doesn't jump vertically as digits change.
	ReferenceGlyphs = "0123456789:"

	borderRatio = 0.05
	// RingStartDeg is 12 o'clock with 0 at 3 o'clock and clockwise angles.
	RingStartDeg = 270.0
)

// RingGeometry is the pie-slice geometry of one ring frame.
type RingGeometry struct {
	Outer canvas.Box
	Inner canvas.Box
	// HasInner is false when the thickness consumes the whole radius; the
	// ring is then a solid sector.
	HasInner bool

	StartDeg, EndDeg float64
}

// SweepDeg is the angular size of the filled arc.
func (g RingGeometry) SweepDeg() float64 { return g.EndDeg - g.StartDeg }

// Ring computes the ring for arcFraction. ok is false when nothing should
// be drawn: the ring is off or fully drained.
func Ring(cfg *config.RenderConfig, arcFraction float64) (g RingGeometry, ok bool) {
	if !cfg.EnableRing || arcFraction <= 0 {
		return RingGeometry{}, false
	}
	if arcFraction > 1 {
		arcFraction = 1
	}

	cx, cy := float64(cfg.Width)/2, float64(cfg.Height)/2
	outer := float64(cfg.RingDiameter) / 2
	inner := outer - float64(cfg.RingThickness)

	g = RingGeometry{
		Outer:    canvas.BoxAround(cx, cy, outer),
		HasInner: inner > 0,
		StartDeg: RingStartDeg,
		EndDeg:   RingStartDeg + 360*arcFraction,
	}
	if g.HasInner {
		g.Inner = canvas.BoxAround(cx, cy, inner)
	}
	return g, true
}

// TextOrigin places a textW x textH block on the canvas according to the
// anchor. The block is kept from starting off-canvas but may run past the
// far edges. Baseline is applied last, positive values moving the text up.
func TextOrigin(cfg *config.RenderConfig, textW, textH int) (x, y float64) {
	w, h := float64(cfg.Width), float64(cfg.Height)
	tw, th := float64(textW), float64(textH)
	border := math.Min(w, h) * borderRatio

	switch cfg.Anchor.Horizontal() {
	case config.SnapLeft:
		x = border
	case config.SnapRight:
		x = w - tw - border
	default:
		x = (w - tw) / 2
	}
	switch cfg.Anchor.Vertical() {
	case config.SnapTop:
		y = border
	case config.SnapBottom:
		y = h - th - border
	default:
		y = (h - th) / 2
	}

	x = math.Max(0, x)
	y = math.Max(0, y)
	y -= float64(cfg.Baseline)
	return x, y
}
