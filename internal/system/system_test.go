package system

import (
	"image"
	"image/color"
	"testing"
)

func TestWorkers(t *testing.T) {
	frame := FrameBytes(1280, 720)

	tests := []struct {
		name      string
		host      Host
		requested int
		want      int
	}{
		{"explicit request wins", Host{LogicalCPUs: 8, AvailableMemory: 1 << 30}, 3, 3},
		{"one per cpu", Host{LogicalCPUs: 8, AvailableMemory: 64 << 30}, 0, 8},
		{"unknown memory", Host{LogicalCPUs: 4}, 0, 4},
		{"memory bound", Host{LogicalCPUs: 16, AvailableMemory: frame * 8}, 0, 2},
		{"never below one", Host{LogicalCPUs: 16, AvailableMemory: 1024}, 0, 1},
		{"no cpus reported", Host{}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.host.Workers(tt.requested, frame); got != tt.want {
				t.Errorf("Expected %d workers, got %d", tt.want, got)
			}
		})
	}
}

func TestProbe(t *testing.T) {
	h := Probe()
	if h.LogicalCPUs < 1 {
		t.Errorf("Expected at least one CPU, got %d", h.LogicalCPUs)
	}
	if h.String() == "" {
		t.Error("Expected a description")
	}
}

func TestPoolClearsReusedBuffers(t *testing.T) {
	p := NewRGBAPool()
	rect := image.Rect(0, 0, 4, 3)

	img := p.Get(rect)
	if img.Rect != rect {
		t.Fatalf("Expected %v, got %v", rect, img.Rect)
	}
	for i := range img.Pix {
		img.Pix[i] = 0xAB
	}
	p.Put(img)

	again := p.Get(rect)
	for i, v := range again.Pix {
		if v != 0 {
			t.Fatalf("Pixel byte %d not cleared: %d", i, v)
		}
	}
}

func TestPoolMasks(t *testing.T) {
	p := NewAlphaPool()
	rect := image.Rect(0, 0, 5, 5)

	m := p.Get(rect)
	m.SetAlpha(2, 2, color.Alpha{A: 200})
	p.Put(m)

	if got := p.Get(rect).AlphaAt(2, 2).A; got != 0 {
		t.Errorf("Expected a cleared mask, got alpha %d", got)
	}
	if p.Len() != 1 {
		t.Errorf("Expected one size, got %d", p.Len())
	}
}

func TestPoolIgnoresUnknownSizes(t *testing.T) {
	p := NewRGBAPool()
	p.Put(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	p.Put(nil)
	if p.Len() != 0 {
		t.Errorf("Expected no pools, got %d", p.Len())
	}
}
