// Package grid turns a decoded raster of pixels into the canonical codel
// grid the rest of the interpreter operates on: detecting the codel size
// (the enlargement factor between one logical codel and the underlying
// pixels) and mapping each codel to its palette colour.
package grid

import (
	"fmt"
	"strings"

	"github.com/bdwalton/piet/palette"
)

// PixelGrid is the decoded raster, ph rows by pw columns of pixels.
type PixelGrid struct {
	rows [][]palette.Pixel
	H, W int // ph, pw
}

// NewPixelGrid wraps a rectangular slice of pixel rows. All rows must have
// equal length; the caller (the image decoder adapter) guarantees this.
func NewPixelGrid(rows [][]palette.Pixel) *PixelGrid {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	return &PixelGrid{rows: rows, H: h, W: w}
}

func (p *PixelGrid) at(row, col int) palette.Pixel {
	return p.rows[row][col]
}

// ValidCodelSize reports whether every s x s tile of p consists of a
// single RGB value, as required before s can be used as the codel size.
func ValidCodelSize(p *PixelGrid, s int) bool {
	if s <= 0 || p.H%s != 0 || p.W%s != 0 {
		return false
	}
	h, w := p.H/s, p.W/s
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			oi, oj := i*s, j*s
			want := p.at(oi, oj)
			for di := 0; di < s; di++ {
				for dj := 0; dj < s; dj++ {
					if p.at(oi+di, oj+dj) != want {
						return false
					}
				}
			}
		}
	}
	return true
}

// DetectCodelSize tries every common divisor of p.H and p.W from largest
// to smallest and returns the first one for which ValidCodelSize holds.
func DetectCodelSize(p *PixelGrid) (int, bool) {
	max := p.H
	if p.W < max {
		max = p.W
	}
	for s := max; s >= 1; s-- {
		if p.H%s != 0 || p.W%s != 0 {
			continue
		}
		if ValidCodelSize(p, s) {
			return s, true
		}
	}
	return 0, false
}

// Options controls how Build resolves the codel size and handles
// non-palette pixels.
type Options struct {
	// CodelSize, if non-nil, is used as-is (and validated); otherwise the
	// codel size is auto-detected.
	CodelSize *int
	// Fallback, if non-nil, is substituted for any pixel that doesn't
	// exactly match a palette entry. Must be palette.White or
	// palette.Black; it is the caller's job to enforce that.
	Fallback *palette.Codel
}

// CodelGrid is the canonical H x W grid of codels that the block index and
// traversal engine operate on.
type CodelGrid struct {
	codels [][]palette.Codel
	H, W   int
}

// At returns the codel at (row, col). Callers must stay in bounds.
func (g *CodelGrid) At(row, col int) palette.Codel {
	return g.codels[row][col]
}

// InBounds reports whether (row, col) is a valid coordinate in g.
func (g *CodelGrid) InBounds(row, col int) bool {
	return row >= 0 && row < g.H && col >= 0 && col < g.W
}

// Build resolves the codel size (auto-detecting unless opts.CodelSize is
// set) and downsamples+palette-maps p into a CodelGrid.
func Build(p *PixelGrid, opts Options) (*CodelGrid, error) {
	var s int
	if opts.CodelSize != nil {
		s = *opts.CodelSize
		if !ValidCodelSize(p, s) {
			return nil, fmt.Errorf("codel size %d is inconsistent with a %dx%d image", s, p.H, p.W)
		}
	} else {
		detected, ok := DetectCodelSize(p)
		if !ok {
			return nil, fmt.Errorf("failed to detect the codel size of a %dx%d image", p.H, p.W)
		}
		s = detected
	}

	h, w := p.H/s, p.W/s
	codels := make([][]palette.Codel, h)
	for i := 0; i < h; i++ {
		codels[i] = make([]palette.Codel, w)
		for j := 0; j < w; j++ {
			px := p.at(i*s, j*s)
			c, ok := palette.CodelOf(px)
			if !ok {
				if opts.Fallback == nil {
					return nil, fmt.Errorf("invalid color at (%d, %d)", i, j)
				}
				c = *opts.Fallback
			}
			codels[i][j] = c
		}
	}

	return &CodelGrid{codels: codels, H: h, W: w}, nil
}

// String renders the grid with row/column rulers, each codel drawn as two
// spaces on a 24-bit ANSI background of its colour; the CLI prints it to
// stderr under --verbose.
func (g *CodelGrid) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "    ")
	for j := 0; j < g.W; j++ {
		if j%10 == 0 {
			fmt.Fprintf(&sb, "%2d", j/10)
		} else {
			fmt.Fprintf(&sb, "  ")
		}
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "    ")
	for j := 0; j < g.W; j++ {
		fmt.Fprintf(&sb, "%2d", j%10)
	}
	sb.WriteByte('\n')
	for i := 0; i < g.H; i++ {
		fmt.Fprintf(&sb, "%2d  ", i)
		for j := 0; j < g.W; j++ {
			sb.WriteString(glyph(g.codels[i][j]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyph(c palette.Codel) string {
	r, g, b := c.RGB().R, c.RGB().G, c.RGB().B
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, b)
}
