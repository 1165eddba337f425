package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/cmpilato/gen-countdown-frames/internal/system"
)

// RGBASurface draws into an in-memory RGBA canvas. Pixel buffers come from
// the shared system pool; call Release once the frame has been saved.
//
// Shapes and glyphs are first rendered as coverage into mask, then painted
// with dst = dst*(1-m) + fill*m. Pixels under a shape take its color
// (including its alpha) and pixels outside it are left alone.
type RGBASurface struct {
	img  *image.RGBA
	mask *image.Alpha
	z    *vector.Rasterizer
}

var _ Surface = (*RGBASurface)(nil)

// NewRGBA returns a fully transparent width x height surface.
func NewRGBA(width, height int) *RGBASurface {
	return &RGBASurface{img: system.GetImage(image.Rect(0, 0, width, height))}
}

// Image exposes the backing canvas. It is only valid until Release.
func (s *RGBASurface) Image() *image.RGBA { return s.img }

func (s *RGBASurface) Size() (int, int) {
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

// Release returns the pixel buffer to the pool. The surface must not be
// used afterwards.
func (s *RGBASurface) Release() {
	system.PutImage(s.img)
	s.img = nil
	if s.mask != nil {
		system.PutMask(s.mask)
		s.mask = nil
	}
}

// coverage returns the surface's mask, cleared.
func (s *RGBASurface) coverage() *image.Alpha {
	if s.mask == nil {
		s.mask = system.GetMask(s.img.Rect)
	} else {
		clear(s.mask.Pix)
	}
	return s.mask
}

// paint replaces the pixels in r by fill, weighted by the mask. image/draw
// has no such operator: its Src ignores dst and Over never lowers alpha.
func (s *RGBASurface) paint(r image.Rectangle, fill color.Color) {
	r = r.Intersect(s.img.Rect)
	if r.Empty() {
		return
	}
	fr, fg, fb, fa := fill.RGBA()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		mi := s.mask.PixOffset(r.Min.X, y)
		pi := s.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, mi, pi = x+1, mi+1, pi+4 {
			m := uint32(s.mask.Pix[mi]) * 0x101
			if m == 0 {
				continue
			}
			p := s.img.Pix[pi : pi+4 : pi+4]
			p[0] = lerp(p[0], fr, m)
			p[1] = lerp(p[1], fg, m)
			p[2] = lerp(p[2], fb, m)
			p[3] = lerp(p[3], fa, m)
		}
	}
}

// lerp mixes the 8-bit channel d towards the 16-bit channel c by the 16-bit
// weight m.
func lerp(d uint8, c, m uint32) uint8 {
	return uint8((uint32(d)*0x101*(0xffff-m) + c*m) / 0xffff >> 8)
}

func (s *RGBASurface) MeasureText(text string, face font.Face) image.Rectangle {
	b, _ := font.BoundString(face, text)
	ascent := face.Metrics().Ascent
	return image.Rect(
		b.Min.X.Floor(), (b.Min.Y + ascent).Floor(),
		b.Max.X.Ceil(), (b.Max.Y + ascent).Ceil(),
	)
}

func (s *RGBASurface) DrawText(x, y float64, text string, c color.Color, face font.Face) {
	d := &font.Drawer{
		Dst:  s.coverage(),
		Src:  image.Opaque,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(x * 64)),
			Y: fixed.Int26_6(math.Round(y*64)) + face.Metrics().Ascent,
		},
	}
	b, _ := d.BoundString(text)
	d.DrawString(text)
	s.paint(image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()), c)
}

func (s *RGBASurface) DrawPieSlice(box Box, startDeg, endDeg float64, fill color.Color) {
	if endDeg <= startDeg || box.Dx() <= 0 || box.Dy() <= 0 {
		return
	}
	w, h := s.Size()
	if s.z == nil {
		s.z = vector.NewRasterizer(w, h)
	} else {
		s.z.Reset(w, h)
	}
	s.z.DrawOp = draw.Src

	mask := s.coverage()
	pieSlicePath(s.z, box, startDeg, endDeg)
	s.z.Draw(mask, mask.Rect, image.Opaque, image.Point{})
	s.paint(image.Rect(
		int(math.Floor(box.X0)), int(math.Floor(box.Y0)),
		int(math.Ceil(box.X1)), int(math.Ceil(box.Y1)),
	), fill)
}

// pieSlicePath adds a closed sector outline to z: center, out along
// startDeg, around the ellipse and back. The arc is approximated with one
// cubic Bézier per quarter turn or less.
func pieSlicePath(z *vector.Rasterizer, box Box, startDeg, endDeg float64) {
	cx, cy := box.Center()
	rx, ry := box.Dx()/2, box.Dy()/2
	if endDeg-startDeg > 360 {
		endDeg = startDeg + 360
	}

	point := func(a float64) (float64, float64) {
		return cx + rx*math.Cos(a), cy + ry*math.Sin(a)
	}

	a0 := startDeg * math.Pi / 180
	a1 := endDeg * math.Pi / 180
	segments := int(math.Ceil((a1 - a0) / (math.Pi / 2)))
	step := (a1 - a0) / float64(segments)
	k := 4.0 / 3.0 * math.Tan(step/4)

	z.MoveTo(float32(cx), float32(cy))
	x0, y0 := point(a0)
	z.LineTo(float32(x0), float32(y0))
	for i := 0; i < segments; i++ {
		s0 := a0 + float64(i)*step
		s1 := s0 + step
		px, py := point(s0)
		qx, qy := point(s1)
		z.CubeTo(
			float32(px-k*rx*math.Sin(s0)), float32(py+k*ry*math.Cos(s0)),
			float32(qx+k*rx*math.Sin(s1)), float32(qy-k*ry*math.Cos(s1)),
			float32(qx), float32(qy),
		)
	}
	z.ClosePath()
}

// Rotate180 turns the canvas upside down in place.
func (s *RGBASurface) Rotate180() {
	w, h := s.Size()
	dst := system.GetImage(s.img.Rect)
	m := f64.Aff3{
		-1, 0, float64(w),
		0, -1, float64(h),
	}
	xdraw.NearestNeighbor.Transform(dst, m, s.img, s.img.Bounds(), xdraw.Src, nil)
	system.PutImage(s.img)
	s.img = dst
}

func (s *RGBASurface) Save(path string) error {
	return WriteFile(path, s.img)
}
