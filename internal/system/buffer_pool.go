package system

import (
	"image"
	"sync"
)

// Pool hands out zeroed pixel buffers of a fixed set of sizes. Every frame
// of a run has the same size, so each worker ends up cycling through a
// couple of buffers instead of allocating one per frame.
type Pool[T any] struct {
	sizes sync.Map // image.Rectangle -> *sync.Pool

	alloc  func(image.Rectangle) T
	pix    func(T) []uint8 // nil for a nil buffer
	bounds func(T) image.Rectangle
}

// NewRGBAPool pools canvases.
func NewRGBAPool() *Pool[*image.RGBA] {
	return &Pool[*image.RGBA]{
		alloc:  func(r image.Rectangle) *image.RGBA { return image.NewRGBA(r) },
		pix:    rgbaPix,
		bounds: func(m *image.RGBA) image.Rectangle { return m.Rect },
	}
}

// NewAlphaPool pools coverage masks.
func NewAlphaPool() *Pool[*image.Alpha] {
	return &Pool[*image.Alpha]{
		alloc:  func(r image.Rectangle) *image.Alpha { return image.NewAlpha(r) },
		pix:    alphaPix,
		bounds: func(m *image.Alpha) image.Rectangle { return m.Rect },
	}
}

func rgbaPix(m *image.RGBA) []uint8 {
	if m == nil {
		return nil
	}
	return m.Pix
}

func alphaPix(m *image.Alpha) []uint8 {
	if m == nil {
		return nil
	}
	return m.Pix
}

// Get returns a buffer covering r with every byte cleared.
func (p *Pool[T]) Get(r image.Rectangle) T {
	sp, ok := p.sizes.Load(r)
	if !ok {
		sp, _ = p.sizes.LoadOrStore(r, &sync.Pool{
			New: func() any { return p.alloc(r) },
		})
	}
	buf := sp.(*sync.Pool).Get().(T)
	clear(p.pix(buf))
	return buf
}

// Put recycles buf. Sizes that never went through Get are dropped.
func (p *Pool[T]) Put(buf T) {
	if p.pix(buf) == nil {
		return
	}
	if sp, ok := p.sizes.Load(p.bounds(buf)); ok {
		sp.(*sync.Pool).Put(buf)
	}
}

// Len reports how many buffer sizes the pool has seen.
func (p *Pool[T]) Len() int {
	n := 0
	p.sizes.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

var (
	canvases = NewRGBAPool()
	masks    = NewAlphaPool()
)

// GetImage returns a fully transparent canvas from the shared pool.
func GetImage(r image.Rectangle) *image.RGBA { return canvases.Get(r) }

// PutImage hands img back to the shared pool.
func PutImage(img *image.RGBA) { canvases.Put(img) }

// GetMask returns an empty coverage mask from the shared pool.
func GetMask(r image.Rectangle) *image.Alpha { return masks.Get(r) }

// PutMask hands m back to the shared pool.
func PutMask(m *image.Alpha) { masks.Put(m) }
