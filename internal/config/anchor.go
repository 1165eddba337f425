package config

import (
	"fmt"
	"strings"
)

// Anchor names one of the nine text positions on the canvas.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorMidLeft
	AnchorCenter
	AnchorMidRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

// HSnap is the horizontal component of an Anchor.
type HSnap int

const (
	SnapLeft HSnap = iota
	SnapCenter
	SnapRight
)

// VSnap is the vertical component of an Anchor.
type VSnap int

const (
	SnapTop VSnap = iota
	SnapMiddle
	SnapBottom
)

// Tokens accepted on the command line, indexed by Anchor.
var anchorTokens = [...]string{"tl", "t", "tr", "l", "c", "r", "bl", "b", "br"}

// ParseAnchor maps a position token (tl, t, tr, l, c, r, bl, b, br) to an Anchor.
func ParseAnchor(token string) (Anchor, error) {
	for i, t := range anchorTokens {
		if t == token {
			return Anchor(i), nil
		}
	}
	return AnchorCenter, fmt.Errorf("%w: %q (want one of %s)", ErrInvalidAnchor, token, strings.Join(anchorTokens[:], ", "))
}

// AnchorTokens returns the accepted position tokens in grid order.
func AnchorTokens() []string {
	return append([]string(nil), anchorTokens[:]...)
}

func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorTokens) {
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
	return anchorTokens[a]
}

// Horizontal returns the column of the anchor in the 3x3 grid.
func (a Anchor) Horizontal() HSnap { return HSnap(int(a) % 3) }

// Vertical returns the row of the anchor in the 3x3 grid.
func (a Anchor) Vertical() VSnap { return VSnap(int(a) / 3) }

// MarshalYAML and UnmarshalYAML keep preset files in the token form.
func (a Anchor) MarshalYAML() (interface{}, error) { return a.String(), nil }

func (a *Anchor) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var token string
	if err := unmarshal(&token); err != nil {
		return err
	}
	parsed, err := ParseAnchor(token)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
