package config

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/cmpilato/gen-countdown-frames/internal/colorspec"
)

var (
	ErrInvalidGeometry      = errors.New("thickness is too large for the given ring height")
	ErrInvalidConfiguration = errors.New("cannot disable text without enabling ring")
	ErrInvalidMinutes       = errors.New("invalid value for number of minutes")
	ErrInvalidAnchor        = errors.New("invalid position")
	ErrInvalidValue         = errors.New("invalid value")
)

const (
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultFontFile   = "arial.ttf"
	DefaultFontColor  = "FFFFFFFF"
	DefaultOutputDir  = "."
	MaxMinutes        = 60
	shadowOffsetRatio = 0.03
	ringHeightRatio   = 0.8
	ringThicknessDiv  = 10
	fontSizeDiv       = 10
)

// RenderConfig is everything the frame composer needs besides the font face.
// It is built once by Resolve and never mutated.
type RenderConfig struct {
	Width, Height int

	FontColor    color.NRGBA
	ShadowColor  *color.NRGBA // nil: no drop shadow
	ShadowOffset int
	Anchor       Anchor
	Baseline     int // positive moves text up

	EnableRing    bool
	DisableText   bool
	RingDiameter  int
	RingThickness int
	RingColor     color.NRGBA

	Rotate bool
}

// Config is the resolved form of Options.
type Config struct {
	Render RenderConfig

	FontFile      string
	FontSize      int
	LeadingZeroes bool

	OutputDir string
	Workers   int // 0: pick from host resources
	Verbose   bool
}

// ValidateMinutes checks the positional countdown length.
func ValidateMinutes(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMinutes, n)
	}
	if n > MaxMinutes {
		return fmt.Errorf("%w: maximum number of minutes is %d", ErrInvalidMinutes, MaxMinutes)
	}
	return nil
}

// Resolve applies defaults to o and validates the result.
func Resolve(o Options) (*Config, error) {
	cfg := &Config{
		FontFile:      stringOr(o.FontFile, DefaultFontFile),
		LeadingZeroes: boolOr(o.LeadingZeroes, true),
		OutputDir:     stringOr(o.OutputDir, DefaultOutputDir),
		Workers:       intOr(o.Workers, 0),
		Verbose:       boolOr(o.Verbose, false),
	}
	r := &cfg.Render

	r.Width = intOr(o.Width, DefaultWidth)
	r.Height = intOr(o.Height, DefaultHeight)
	if r.Width <= 0 {
		return nil, fmt.Errorf("%w for --width: %d", ErrInvalidValue, r.Width)
	}
	if r.Height <= 0 {
		return nil, fmt.Errorf("%w for --height: %d", ErrInvalidValue, r.Height)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w for --workers: %d", ErrInvalidValue, cfg.Workers)
	}

	cfg.FontSize = intOr(o.FontSize, r.Width/fontSizeDiv)
	if cfg.FontSize <= 0 {
		return nil, fmt.Errorf("%w for --font-size: %d", ErrInvalidValue, cfg.FontSize)
	}
	r.ShadowOffset = int(float64(cfg.FontSize) * shadowOffsetRatio)

	var err error
	if r.FontColor, err = colorspec.Parse(stringOr(o.FontColor, DefaultFontColor)); err != nil {
		return nil, fmt.Errorf("%w for --font-color: %w", ErrInvalidValue, err)
	}
	if o.ShadowColor != nil {
		c, err := colorspec.Parse(*o.ShadowColor)
		if err != nil {
			return nil, fmt.Errorf("%w for --shadow-color: %w", ErrInvalidValue, err)
		}
		r.ShadowColor = &c
	}

	r.Anchor = AnchorCenter
	if o.Position != nil {
		r.Anchor = *o.Position
	}
	r.Baseline = intOr(o.Baseline, 0)
	r.DisableText = boolOr(o.DisableText, false)
	r.Rotate = boolOr(o.Rotate, false)

	// Any explicit ring setting turns the ring on.
	r.EnableRing = boolOr(o.EnableRing, false) ||
		o.RingHeight != nil || o.RingThickness != nil || o.RingColor != nil

	r.RingDiameter = intOr(o.RingHeight, int(float64(min(r.Width, r.Height))*ringHeightRatio))
	if r.EnableRing {
		r.RingThickness = intOr(o.RingThickness, r.RingDiameter/ringThicknessDiv)
		if r.RingDiameter <= 0 || r.RingThickness < 0 || r.RingThickness*2 >= r.RingDiameter {
			return nil, fmt.Errorf("%w (height %d, thickness %d)", ErrInvalidGeometry, r.RingDiameter, r.RingThickness)
		}
		r.RingColor = r.FontColor
		if o.RingColor != nil {
			if r.RingColor, err = colorspec.Parse(*o.RingColor); err != nil {
				return nil, fmt.Errorf("%w for --ring-color: %w", ErrInvalidValue, err)
			}
		}
	}

	if r.DisableText && !r.EnableRing {
		return nil, ErrInvalidConfiguration
	}
	return cfg, nil
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func stringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
