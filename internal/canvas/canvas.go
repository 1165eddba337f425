package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Surface is the set of drawing primitives a frame is composed from.
// Implementations own rendering and encoding; callers only decide what goes
// where.
type Surface interface {
	// Size returns the canvas size in pixels.
	Size() (width, height int)

	// MeasureText returns the ink bounds of text as DrawText would place
	// it at (0, 0).
	MeasureText(text string, face font.Face) image.Rectangle

	// DrawText draws text with the top of the line (the ascent) at y and
	// the pen starting at x.
	DrawText(x, y float64, text string, c color.Color, face font.Face)

	// DrawPieSlice fills the sector of the ellipse inscribed in box from
	// startDeg to endDeg. Angles are degrees clockwise from 3 o'clock.
	// Pixels under the slice are replaced, not blended, so a transparent
	// fill erases.
	DrawPieSlice(box Box, startDeg, endDeg float64, fill color.Color)

	Rotate180()

	// Save encodes the surface to path; the extension picks the format.
	Save(path string) error
}

// Box is an axis-aligned bounding box in pixel coordinates.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// BoxAround returns the square box of a circle.
func BoxAround(cx, cy, radius float64) Box {
	return Box{X0: cx - radius, Y0: cy - radius, X1: cx + radius, Y1: cy + radius}
}

// Offset shifts the box by d on both axes.
func (b Box) Offset(d float64) Box {
	return Box{X0: b.X0 + d, Y0: b.Y0 + d, X1: b.X1 + d, Y1: b.Y1 + d}
}

func (b Box) Center() (x, y float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2
}

func (b Box) Dx() float64 { return b.X1 - b.X0 }
func (b Box) Dy() float64 { return b.Y1 - b.Y0 }
