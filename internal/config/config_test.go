package config

import (
	"errors"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cmpilato/gen-countdown-frames/internal/colorspec"
)

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(Options{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	r := cfg.Render

	if r.Width != 1280 || r.Height != 720 {
		t.Errorf("Expected 1280x720, got %dx%d", r.Width, r.Height)
	}
	if cfg.FontSize != 128 {
		t.Errorf("Expected font size 128, got %d", cfg.FontSize)
	}
	if r.ShadowOffset != 3 {
		t.Errorf("Expected shadow offset 3, got %d", r.ShadowOffset)
	}
	if cfg.FontFile != "arial.ttf" {
		t.Errorf("Expected arial.ttf, got %s", cfg.FontFile)
	}
	if r.FontColor != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("Expected opaque white, got %v", r.FontColor)
	}
	if r.ShadowColor != nil {
		t.Errorf("Expected no shadow, got %v", *r.ShadowColor)
	}
	if r.Anchor != AnchorCenter {
		t.Errorf("Expected center anchor, got %s", r.Anchor)
	}
	if r.EnableRing || r.DisableText || r.Rotate {
		t.Errorf("Expected ring off, text on, no rotation: %+v", r)
	}
	if r.RingDiameter != 576 {
		t.Errorf("Expected ring height 576, got %d", r.RingDiameter)
	}
	if !cfg.LeadingZeroes {
		t.Error("Expected leading zeroes on by default")
	}
	if cfg.OutputDir != "." || cfg.Workers != 0 {
		t.Errorf("Unexpected run defaults: dir=%q workers=%d", cfg.OutputDir, cfg.Workers)
	}
}

func TestResolveRingDefaults(t *testing.T) {
	cfg, err := Resolve(Options{
		Width:      Ptr(640),
		Height:     Ptr(480),
		FontColor:  Ptr("#102030"),
		EnableRing: Ptr(true),
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	r := cfg.Render
	if r.RingDiameter != 384 {
		t.Errorf("Expected ring height 384, got %d", r.RingDiameter)
	}
	if r.RingThickness != 38 {
		t.Errorf("Expected ring thickness 38, got %d", r.RingThickness)
	}
	if r.RingColor != r.FontColor {
		t.Errorf("Expected ring color to follow font color, got %v", r.RingColor)
	}
}

func TestResolveRingImplicitlyEnabled(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"height", Options{RingHeight: Ptr(300)}},
		{"thickness", Options{RingThickness: Ptr(20)}},
		{"color", Options{RingColor: Ptr("FF0000")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(tt.opts)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if !cfg.Render.EnableRing {
				t.Error("Expected ring to be enabled")
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"text and ring off", Options{DisableText: Ptr(true)}, ErrInvalidConfiguration},
		{"thickness half of height", Options{RingHeight: Ptr(200), RingThickness: Ptr(100)}, ErrInvalidGeometry},
		{"thickness over half", Options{RingHeight: Ptr(200), RingThickness: Ptr(150)}, ErrInvalidGeometry},
		{"negative thickness", Options{RingHeight: Ptr(200), RingThickness: Ptr(-1)}, ErrInvalidGeometry},
		{"zero height", Options{RingHeight: Ptr(0)}, ErrInvalidGeometry},
		{"bad font color", Options{FontColor: Ptr("white")}, colorspec.ErrInvalidColorFormat},
		{"bad shadow color", Options{ShadowColor: Ptr("12345")}, colorspec.ErrInvalidColorFormat},
		{"bad ring color", Options{RingColor: Ptr("#GG0000")}, colorspec.ErrInvalidColorFormat},
		{"zero width", Options{Width: Ptr(0)}, ErrInvalidValue},
		{"negative height", Options{Height: Ptr(-5)}, ErrInvalidValue},
		{"zero font size", Options{FontSize: Ptr(0)}, ErrInvalidValue},
		{"negative workers", Options{Workers: Ptr(-2)}, ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestResolveRingOnlyIsValid(t *testing.T) {
	_, err := Resolve(Options{DisableText: Ptr(true), EnableRing: Ptr(true)})
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestResolveGeometryIgnoredWithoutRing(t *testing.T) {
	// Thickness only matters once the ring is on; a tiny canvas alone is fine.
	if _, err := Resolve(Options{Width: Ptr(1), Height: Ptr(1), FontSize: Ptr(1)}); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestValidateMinutes(t *testing.T) {
	for _, n := range []int{1, 5, 59, 60} {
		if err := ValidateMinutes(n); err != nil {
			t.Errorf("%d: unexpected error: %v", n, err)
		}
	}
	for _, n := range []int{-1, 0, 61, 1000} {
		if err := ValidateMinutes(n); !errors.Is(err, ErrInvalidMinutes) {
			t.Errorf("%d: expected ErrInvalidMinutes, got %v", n, err)
		}
	}
}

func TestMerge(t *testing.T) {
	base := Options{Width: Ptr(100), Height: Ptr(200), FontColor: Ptr("000000")}
	over := Options{Height: Ptr(300), Rotate: Ptr(true)}

	got := base.Merge(over)
	if *got.Width != 100 || *got.Height != 300 || *got.FontColor != "000000" || !*got.Rotate {
		t.Errorf("Unexpected merge result: %+v", got)
	}
	if *base.Height != 200 {
		t.Error("Merge must not modify the receiver's pointees")
	}
}

func TestOptionsFileWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	in := Options{
		Width:       Ptr(1920),
		Position:    Ptr(AnchorBottomRight),
		ShadowColor: Ptr("00000080"),
		EnableRing:  Ptr(true),
	}
	if err := WriteOptionsFile(in, path); err != nil {
		t.Fatalf("WriteOptionsFile failed: %v", err)
	}

	out, err := ReadOptionsFile(path)
	if err != nil {
		t.Fatalf("ReadOptionsFile failed: %v", err)
	}
	if out.Width == nil || *out.Width != 1920 {
		t.Errorf("Width mismatch: %v", out.Width)
	}
	if out.Position == nil || *out.Position != AnchorBottomRight {
		t.Errorf("Position mismatch: %v", out.Position)
	}
	if out.ShadowColor == nil || *out.ShadowColor != "00000080" {
		t.Errorf("ShadowColor mismatch: %v", out.ShadowColor)
	}
	if out.Height != nil {
		t.Errorf("Expected unset height, got %d", *out.Height)
	}
}

func TestDecodeOptions(t *testing.T) {
	o, err := DecodeOptions(strings.NewReader("position: tl\nbaseline: -12\nleading_zeroes: false\n"))
	if err != nil {
		t.Fatalf("DecodeOptions failed: %v", err)
	}
	if *o.Position != AnchorTopLeft || *o.Baseline != -12 || *o.LeadingZeroes {
		t.Errorf("Unexpected options: %+v", o)
	}

	if _, err := DecodeOptions(strings.NewReader("")); err != nil {
		t.Errorf("Empty preset should decode, got %v", err)
	}
	if _, err := DecodeOptions(strings.NewReader("colour: red\n")); err == nil {
		t.Error("Expected error for unknown key")
	}
	if _, err := DecodeOptions(strings.NewReader("position: middle\n")); !errors.Is(err, ErrInvalidAnchor) {
		t.Errorf("Expected ErrInvalidAnchor, got %v", err)
	}
}
