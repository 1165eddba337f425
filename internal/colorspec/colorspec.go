package colorspec

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
)

// ErrInvalidColorFormat is returned for strings that are not 6 or 8 hex digits.
var ErrInvalidColorFormat = errors.New("invalid color format")

var hexColorRe = regexp.MustCompile(`^#?((?:[0-9a-fA-F]{2}){3,4})$`)

// Parse converts "RRGGBB" or "RRGGBBAA" (optionally prefixed with '#')
// into a color. Alpha is 255 when omitted.
//
// The returned value holds straight (non-premultiplied) channels, so it is
// an NRGBA; callers that need color.RGBA should go through color.RGBAModel.
func Parse(spec string) (color.NRGBA, error) {
	m := hexColorRe.FindStringSubmatch(spec)
	if m == nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, spec)
	}
	hex := m[1]

	c := color.NRGBA{A: 0xFF}
	channels := []*uint8{&c.R, &c.G, &c.B, &c.A}
	for i := 0; i*2 < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, spec)
		}
		*channels[i] = uint8(v)
	}
	return c, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(spec string) color.NRGBA {
	c, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// Format renders c back into the 8-digit form accepted by Parse.
func Format(c color.NRGBA) string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
