package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Options holds raw, possibly unset settings. A nil field means "use the
// default" and is filled in by Resolve.
type Options struct {
	Width         *int    `yaml:"width,omitempty"`
	Height        *int    `yaml:"height,omitempty"`
	FontFile      *string `yaml:"font_file,omitempty"`
	FontSize      *int    `yaml:"font_size,omitempty"`
	FontColor     *string `yaml:"font_color,omitempty"`
	Position      *Anchor `yaml:"position,omitempty"`
	LeadingZeroes *bool   `yaml:"leading_zeroes,omitempty"`
	ShadowColor   *string `yaml:"shadow_color,omitempty"`
	Baseline      *int    `yaml:"baseline,omitempty"`
	RingHeight    *int    `yaml:"ring_height,omitempty"`
	RingThickness *int    `yaml:"ring_thickness,omitempty"`
	RingColor     *string `yaml:"ring_color,omitempty"`
	EnableRing    *bool   `yaml:"enable_ring,omitempty"`
	DisableText   *bool   `yaml:"disable_text,omitempty"`
	Rotate        *bool   `yaml:"rotate,omitempty"`

	OutputDir *string `yaml:"output_dir,omitempty"`
	Workers   *int    `yaml:"workers,omitempty"`
	Verbose   *bool   `yaml:"verbose,omitempty"`
}

// Merge returns o with every field that is set in over replaced.
func (o Options) Merge(over Options) Options {
	pick(&o.Width, over.Width)
	pick(&o.Height, over.Height)
	pick(&o.FontFile, over.FontFile)
	pick(&o.FontSize, over.FontSize)
	pick(&o.FontColor, over.FontColor)
	pick(&o.Position, over.Position)
	pick(&o.LeadingZeroes, over.LeadingZeroes)
	pick(&o.ShadowColor, over.ShadowColor)
	pick(&o.Baseline, over.Baseline)
	pick(&o.RingHeight, over.RingHeight)
	pick(&o.RingThickness, over.RingThickness)
	pick(&o.RingColor, over.RingColor)
	pick(&o.EnableRing, over.EnableRing)
	pick(&o.DisableText, over.DisableText)
	pick(&o.Rotate, over.Rotate)
	pick(&o.OutputDir, over.OutputDir)
	pick(&o.Workers, over.Workers)
	pick(&o.Verbose, over.Verbose)
	return o
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// DecodeOptions reads a YAML preset. Unknown keys are rejected so typos
// don't silently fall back to defaults.
func DecodeOptions(r io.Reader) (Options, error) {
	var o Options
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, err
	}
	return o, nil
}

// ReadOptionsFile loads a YAML preset from path.
func ReadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	o, err := DecodeOptions(bytes.NewReader(data))
	if err != nil {
		return Options{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return o, nil
}

// WriteOptionsFile stores o as a YAML preset.
func WriteOptionsFile(o Options, path string) error {
	data, err := yaml.Marshal(o)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Ptr is a small helper for building Options literals.
func Ptr[T any](v T) *T { return &v }
