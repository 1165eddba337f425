package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cmpilato/gen-countdown-frames/internal/config"
)

const usageText = `Generate PNG images for each second of a countdown clock beginning just
under a given number of minutes and counting down to 0:00.  Files will be
created in the output directory with names that derive from the time
values they contain and contain a sort-friendly initial numeric index
("002-countdown-4_57.png", "290-countdown-0_09.png", etc.).

Usage:  __FILE__ [OPTIONS] NUM_MINUTES

Options:
   -h, --help        Display this help message
   --width=          Width (in pixels) of the generated images [1280]
   --height=         Height (in pixels) of the generated images [720]
   --font-file=      TrueType font file to use for countdown text [arial.ttf]
   --font-size=      Font size (in pixels) of countdown text [width / 10]
   --font-color=     Text color (as an RGB or RGBA hex value) [FFFFFFFF]
   --position=       Location of text (with proportional padding) [c]:
                        tl (top-left), t (top-centered), tr (top-right),
                        l (middle-left), c (middle-centered), r (middle-right),
                        bl (bottom-left), b (bottom-centered), br (bottom-right)
   --no-zeroes       Omit leading zeroes in minutes remaining
   --shadow-color=   Drop shadow color (as an RGB or RGBA hex value, if any)
   --baseline=       Vertical adjustment in pixels (positive=up, negative=down) [0]
   --ring-height=    Outer diameter (in pixels) of disappearing ring [min(width, height) * 0.8]
   --ring-thickness= Thickness (in pixels) of the ring [ring-height / 10]
   --ring-color=     Ring color (as an RGB or RGBA hex value) [font-color]
   --enable-ring     Enable ring generation (in addition to numeric countdown)
   --disable-text    Disable text generation (show only ring countdown)
   --rotate          Rotate the generated images 180 degrees
   --config=         YAML file with option defaults (flags override it)
   --output-dir=     Directory to write the images into [.]
   --workers=        Number of frames rendered in parallel [CPU count]
   -v, --verbose     Be noisy about what we're doing

Example(s):
   # 5-minute countdown 640x480 with centered Arial 24-point font
   __FILE__ --width 640 --height 480 --font-size 24 5

   # 1-minute countdown 1280x720 with Century Gothic 120-point font
   # positioned in the bottom-right corner
   __FILE__ --font-file GOTHIC.TTF --position br 1

   # 2-minute countdown with both numeric text and disappearing ring
   __FILE__ --enable-ring --ring-height 500 --ring-thickness 40 2
`

// flag reports unknown options with this prefix.
const undefinedFlag = "flag provided but not defined: "

func usage(prog string) string {
	return strings.ReplaceAll(usageText, "__FILE__", prog)
}

// usageError is reported as "ERROR: <msg>" followed by the help text.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// invocation is a parsed command line.
type invocation struct {
	Options    config.Options // only flags that were given
	ConfigFile string
	Minutes    int
}

// parser collects flag values straight into Options so that unset flags
// stay nil and don't override a preset file.
type parser struct {
	fs      *flag.FlagSet
	inv     invocation
	badFlag string
}

type optFlag struct {
	p       *parser
	name    string
	set     func(string) error
	boolean bool
}

func (f *optFlag) String() string   { return "" }
func (f *optFlag) IsBoolFlag() bool { return f.boolean }

func (f *optFlag) Set(s string) error {
	if err := f.set(s); err != nil {
		if f.p.badFlag == "" {
			f.p.badFlag = f.name
		}
		return err
	}
	return nil
}

func (p *parser) add(set func(string) error, boolean bool, names ...string) {
	for _, name := range names {
		p.fs.Var(&optFlag{p: p, name: names[len(names)-1], set: set, boolean: boolean}, name, "")
	}
}

func (p *parser) intVar(dst **int, name string) {
	p.add(func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*dst = &n
		return nil
	}, false, name)
}

func (p *parser) stringVar(dst **string, name string) {
	p.add(func(s string) error {
		*dst = &s
		return nil
	}, false, name)
}

// switchVar sets *dst to on when the flag is given.
func (p *parser) switchVar(dst **bool, on bool, names ...string) {
	p.add(func(s string) error {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*dst = config.Ptr(b == on)
		return nil
	}, true, names...)
}

func newParser() *parser {
	p := &parser{fs: flag.NewFlagSet("gen-countdown-frames", flag.ContinueOnError)}
	p.fs.SetOutput(io.Discard)
	p.fs.Usage = func() {}

	o := &p.inv.Options
	p.intVar(&o.Width, "width")
	p.intVar(&o.Height, "height")
	p.stringVar(&o.FontFile, "font-file")
	p.intVar(&o.FontSize, "font-size")
	p.stringVar(&o.FontColor, "font-color")
	p.add(func(s string) error {
		a, err := config.ParseAnchor(s)
		if err != nil {
			return err
		}
		o.Position = &a
		return nil
	}, false, "position")
	p.switchVar(&o.LeadingZeroes, false, "no-zeroes")
	p.stringVar(&o.ShadowColor, "shadow-color")
	p.intVar(&o.Baseline, "baseline")
	p.intVar(&o.RingHeight, "ring-height")
	p.intVar(&o.RingThickness, "ring-thickness")
	p.stringVar(&o.RingColor, "ring-color")
	p.switchVar(&o.EnableRing, true, "enable-ring")
	p.switchVar(&o.DisableText, true, "disable-text")
	p.switchVar(&o.Rotate, true, "rotate")
	p.stringVar(&o.OutputDir, "output-dir")
	p.intVar(&o.Workers, "workers")
	p.switchVar(&o.Verbose, true, "v", "verbose")
	p.add(func(s string) error {
		p.inv.ConfigFile = s
		return nil
	}, false, "config")
	return p
}

// parseArgs parses the command line. It returns flag.ErrHelp for -h/--help
// and a *usageError for anything the user got wrong.
func parseArgs(args []string) (*invocation, error) {
	p := newParser()
	if err := p.fs.Parse(args); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return nil, err
		case p.badFlag != "":
			return nil, usageErrorf("Invalid value for --%s", p.badFlag)
		case strings.HasPrefix(err.Error(), undefinedFlag):
			return nil, usageErrorf("Unexpected option '%s'", strings.TrimPrefix(err.Error(), undefinedFlag))
		}
		return nil, usageErrorf("%s", capitalize(err.Error()))
	}

	rest := p.fs.Args()
	if len(rest) != 1 {
		return nil, usageErrorf("Not enough arguments")
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil || n < 1 {
		return nil, usageErrorf("Invalid value for number of minutes")
	}
	if config.ValidateMinutes(n) != nil {
		return nil, usageErrorf("Maximum number of minutes is %d", config.MaxMinutes)
	}
	p.inv.Minutes = n
	return &p.inv, nil
}

// describe turns a Resolve error into the message shown after "ERROR:".
func describe(err error) string {
	switch {
	case errors.Is(err, config.ErrInvalidGeometry):
		return "Thickness is too large for the given ring height"
	case errors.Is(err, config.ErrInvalidConfiguration):
		return "Cannot disable text without enabling ring"
	case errors.Is(err, config.ErrInvalidValue):
		msg, _, _ := strings.Cut(err.Error(), ":")
		return capitalize(msg)
	}
	return capitalize(err.Error())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
