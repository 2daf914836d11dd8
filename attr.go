package vtcurses

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Attr is a set of display attributes. Bit n is set when SGR parameter n
// should be emitted, so AttrBold (bit 1) becomes "\033[1m" and a red
// foreground (bit 31) becomes "\033[31m".
type Attr uint64

const (
	AttrNormal        Attr = 0
	AttrBold          Attr = 1 << 1
	AttrDim           Attr = 1 << 2
	AttrItalic        Attr = 1 << 3
	AttrUnderline     Attr = 1 << 4
	AttrBlink         Attr = 1 << 5
	AttrReverse       Attr = 1 << 7
	AttrStandout           = AttrReverse
	AttrInvis         Attr = 1 << 8
	AttrStrikethrough Attr = 1 << 9
)

// Color is one of the eight basic terminal colors, or ColorDefault
type Color int

const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
)

// Colors is the number of supported colors
const Colors = 8

const (
	fgBase    = 30
	fgDefault = 39
	bgBase    = 40
	bgDefault = 49
	maxSGR    = 63

	fgMask Attr = ((1 << (fgDefault + 1)) - 1) &^ ((1 << fgBase) - 1)
	bgMask Attr = ((1 << (bgDefault + 1)) - 1) &^ ((1 << bgBase) - 1)
)

var colorNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Valid reports whether c is a basic color or ColorDefault
func (c Color) Valid() bool {
	return c >= ColorDefault && c < Colors
}

func (c Color) String() string {
	if c == ColorDefault {
		return "default"
	}
	if c.Valid() {
		return colorNames[c]
	}
	return "color(" + strconv.Itoa(int(c)) + ")"
}

// FgColor returns the attribute for the foreground color c
func FgColor(c Color) Attr {
	if c == ColorDefault || !c.Valid() {
		return 1 << fgDefault
	}
	return 1 << (fgBase + uint(c))
}

// BgColor returns the attribute for the background color c
func BgColor(c Color) Attr {
	if c == ColorDefault || !c.Valid() {
		return 1 << bgDefault
	}
	return 1 << (bgBase + uint(c))
}

// sgrCache caches the rendered parameter strings
var sgrCache sync.Map

// isFg reports whether SGR code n selects a foreground color
func isFg(n int) bool {
	return n >= fgBase && n <= fgDefault
}

// isBg reports whether SGR code n selects a background color
func isBg(n int) bool {
	return n >= bgBase && n <= bgDefault
}

// codes returns the SGR codes of a, highest first. Background codes are
// placed directly after the foreground code they pair with.
func (a Attr) codes() []int {
	hasFg := a&fgMask != 0
	var params []int
	for n := maxSGR; n >= 0; n-- {
		if a&(1<<uint(n)) == 0 {
			continue
		}
		if isBg(n) && hasFg {
			continue
		}
		params = append(params, n)
		if isFg(n) && hasFg {
			for m := bgDefault; m >= bgBase; m-- {
				if a&(1<<uint(m)) != 0 {
					params = append(params, m)
				}
			}
			hasFg = false
		}
	}
	return params
}

// SGR returns the SGR parameters of a joined by ";", or an empty string
// if a holds no attributes.
func (a Attr) SGR() string {
	if a == AttrNormal {
		return ""
	}
	if s, ok := sgrCache.Load(a); ok {
		return s.(string)
	}
	codes := a.codes()
	parts := make([]string, len(codes))
	for i, n := range codes {
		parts[i] = strconv.Itoa(n)
	}
	s := strings.Join(parts, ";")
	sgrCache.Store(a, s)
	return s
}

// Sequence returns the escape sequence that selects the attributes,
// or an empty string if there are none
func (a Attr) Sequence() string {
	params := a.SGR()
	if params == "" {
		return ""
	}
	return fmt.Sprintf(attributeTemplate, params)
}

// WithoutColors returns a with all foreground and background colors removed
func (a Attr) WithoutColors() Attr {
	return a &^ (fgMask | bgMask)
}

// Has reports whether all attributes in b are set in a
func (a Attr) Has(b Attr) bool {
	return a&b == b
}

// ParseSGR converts an SGR parameter string, like "1;31;42", to an Attr.
// Parameter 0 clears everything before it, and a color replaces any
// earlier color for the same layer.
func ParseSGR(params string) (Attr, error) {
	var a Attr
	if params == "" {
		return a, nil
	}
	for _, field := range strings.Split(params, ";") {
		if field == "" {
			a = AttrNormal
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 || n > maxSGR {
			return AttrNormal, fmt.Errorf("%w: %q in %q", ErrInvalidSGR, field, params)
		}
		switch {
		case n == 0:
			a = AttrNormal
		case isFg(n):
			a = a&^fgMask | 1<<uint(n)
		case isBg(n):
			a = a&^bgMask | 1<<uint(n)
		default:
			a |= 1 << uint(n)
		}
	}
	return a, nil
}
