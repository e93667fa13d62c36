// Package imgsrc adapts a decoded raster image into the grid package's
// PixelGrid, the boundary between "file on disk" and the interpreter
// proper.
package imgsrc

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"

	"golang.org/x/image/bmp"

	"github.com/bdwalton/piet/grid"
	"github.com/bdwalton/piet/palette"
)

func init() {
	image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
}

// Decode reads a PNG, GIF or BMP image from r and returns it as a
// PixelGrid, discarding alpha.
func Decode(r io.Reader) (*grid.PixelGrid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	rows := make([][]palette.Pixel, h)
	for i := 0; i < h; i++ {
		rows[i] = make([]palette.Pixel, w)
		for j := 0; j < w; j++ {
			r32, g32, b32, _ := img.At(bounds.Min.X+j, bounds.Min.Y+i).RGBA()
			rows[i][j] = palette.Pixel{
				R: uint8(r32 >> 8),
				G: uint8(g32 >> 8),
				B: uint8(b32 >> 8),
			}
		}
	}

	return grid.NewPixelGrid(rows), nil
}
