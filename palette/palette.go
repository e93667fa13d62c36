// Package palette implements the 20-colour Piet palette and the colour
// algebra (hue/lightness deltas) that the command table is keyed on.
package palette

import "fmt"

// Codel is a single logical cell of a Piet program: one of the 20 palette
// colours, or White/Black.
type Codel uint8

const (
	LightRed Codel = iota
	LightYellow
	LightGreen
	LightCyan
	LightBlue
	LightMagenta

	Red
	Yellow
	Green
	Cyan
	Blue
	Magenta

	DarkRed
	DarkYellow
	DarkGreen
	DarkCyan
	DarkBlue
	DarkMagenta

	White
	Black
)

// Pixel is a triple of 8-bit channels, alpha already discarded.
type Pixel struct {
	R, G, B uint8
}

// hue index order: Red, Yellow, Green, Cyan, Blue, Magenta.
// lightness index order: Light, Normal, Dark.
var rgbTable = map[Codel]Pixel{
	LightRed:     {255, 192, 192},
	LightYellow:  {255, 255, 192},
	LightGreen:   {192, 255, 192},
	LightCyan:    {192, 255, 255},
	LightBlue:    {192, 192, 255},
	LightMagenta: {255, 192, 255},

	Red:     {255, 0, 0},
	Yellow:  {255, 255, 0},
	Green:   {0, 255, 0},
	Cyan:    {0, 255, 255},
	Blue:    {0, 0, 255},
	Magenta: {255, 0, 255},

	DarkRed:     {192, 0, 0},
	DarkYellow:  {192, 192, 0},
	DarkGreen:   {0, 192, 0},
	DarkCyan:    {0, 192, 192},
	DarkBlue:    {0, 0, 192},
	DarkMagenta: {192, 0, 192},

	White: {255, 255, 255},
	Black: {0, 0, 0},
}

var pixelTable map[Pixel]Codel

func init() {
	pixelTable = make(map[Pixel]Codel, len(rgbTable))
	for c, p := range rgbTable {
		pixelTable[p] = c
	}
}

var names = map[Codel]string{
	LightRed: "LightRed", LightYellow: "LightYellow", LightGreen: "LightGreen",
	LightCyan: "LightCyan", LightBlue: "LightBlue", LightMagenta: "LightMagenta",
	Red: "Red", Yellow: "Yellow", Green: "Green", Cyan: "Cyan", Blue: "Blue", Magenta: "Magenta",
	DarkRed: "DarkRed", DarkYellow: "DarkYellow", DarkGreen: "DarkGreen",
	DarkCyan: "DarkCyan", DarkBlue: "DarkBlue", DarkMagenta: "DarkMagenta",
	White: "White", Black: "Black",
}

func (c Codel) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("Codel(%d)", uint8(c))
}

// RGB returns the fixed 8-bit-per-channel colour of c.
func (c Codel) RGB() Pixel {
	return rgbTable[c]
}

// IsWhite reports whether c is the White codel.
func (c Codel) IsWhite() bool {
	return c == White
}

// IsBlack reports whether c is the Black codel.
func (c Codel) IsBlack() bool {
	return c == Black
}

// hasHue reports whether c carries a hue/lightness pair (i.e. is not
// White or Black).
func (c Codel) hasHue() bool {
	return c != White && c != Black
}

// hue returns the 0..5 hue index (Red, Yellow, Green, Cyan, Blue, Magenta).
// Only valid when hasHue() is true.
func (c Codel) hue() int {
	return int(c) % 6
}

// lightness returns the 0..2 lightness index (Light, Normal, Dark).
// Only valid when hasHue() is true.
func (c Codel) lightness() int {
	return int(c) / 6
}

// CodelOf maps an RGB pixel onto its palette Codel. The second return
// value is false when p does not exactly match one of the 20 palette
// entries.
func CodelOf(p Pixel) (Codel, bool) {
	c, ok := pixelTable[p]
	return c, ok
}

// HueDelta returns (hue(to) - hue(from)) mod 6. Undefined unless both
// from and to carry a hue (callers must not pass White/Black).
func HueDelta(from, to Codel) int {
	return (to.hue() - from.hue() + 6) % 6
}

// LightnessDelta returns (lightness(to) - lightness(from)) mod 3. Undefined
// unless both from and to carry a hue.
func LightnessDelta(from, to Codel) int {
	return (to.lightness() - from.lightness() + 3) % 3
}

// HasHue reports whether c is one of the 18 hued colours, i.e. not
// White or Black. Transitions into/out of White or Black never name a
// command, so callers must check this before calling HueDelta/LightnessDelta.
func HasHue(c Codel) bool {
	return c.hasHue()
}
