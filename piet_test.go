package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/bdwalton/piet/block"
	"github.com/bdwalton/piet/grid"
	"github.com/bdwalton/piet/imgsrc"
	"github.com/bdwalton/piet/palette"
	"github.com/bdwalton/piet/vm"
)

// encodePNG renders a grid of palette colours (one pixel per codel) as a
// PNG, the simplest possible stand-in for a hand-drawn Piet program image.
func encodePNG(t *testing.T, codels [][]palette.Codel) []byte {
	t.Helper()
	h, w := len(codels), len(codels[0])
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y, row := range codels {
		for x, c := range row {
			px := c.RGB()
			img.Set(x, y, color.RGBA{R: px.R, G: px.G, B: px.B, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// A full pipeline run: decode a PNG, build the codel grid and block index,
// and run a Red(x3) -> DarkRed program, whose single transition (same hue,
// lightness +1) is Push, pushing the size of the Red block.
func TestFullPipelinePushesBlockSize(t *testing.T) {
	png := encodePNG(t, [][]palette.Codel{
		{palette.Red, palette.Red, palette.Red, palette.DarkRed},
	})

	pixels, err := imgsrc.Decode(bytes.NewReader(png))
	if err != nil {
		t.Fatalf("imgsrc.Decode: %v", err)
	}
	s := 1
	cg, err := grid.Build(pixels, grid.Options{CodelSize: &s})
	if err != nil {
		t.Fatalf("grid.Build: %v", err)
	}
	idx := block.Build(cg)

	out := &bytes.Buffer{}
	state := vm.NewState(bytes.NewReader(nil), out)
	engine, err := vm.NewEngine(cg, idx, state)
	if err != nil {
		t.Fatalf("vm.NewEngine: %v", err)
	}
	one := 1
	engine.MaxIter = &one
	engine.Run(context.Background())

	if len(state.Stack) != 1 || state.Stack[0] != 3 {
		t.Fatalf("Stack = %v, want [3] (block size pushed by the first transition)", state.Stack)
	}
}

func TestFullPipelineRejectsBlackStart(t *testing.T) {
	png := encodePNG(t, [][]palette.Codel{{palette.Black, palette.Red}})

	pixels, err := imgsrc.Decode(bytes.NewReader(png))
	if err != nil {
		t.Fatalf("imgsrc.Decode: %v", err)
	}
	s := 1
	cg, err := grid.Build(pixels, grid.Options{CodelSize: &s})
	if err != nil {
		t.Fatalf("grid.Build: %v", err)
	}
	idx := block.Build(cg)
	state := vm.NewState(bytes.NewReader(nil), &bytes.Buffer{})
	if _, err := vm.NewEngine(cg, idx, state); err == nil {
		t.Fatal("NewEngine succeeded with a Black top-left codel, want error")
	}
}

// The same 2x2-pixel-per-codel image must decode identically whether the
// codel size is auto-detected or passed explicitly.
func TestCodelSizeAutoDetectMatchesExplicit(t *testing.T) {
	one := [][]palette.Codel{{palette.Red, palette.Yellow}, {palette.Green, palette.Blue}}
	doubled := make([][]palette.Codel, 0, 4)
	for _, row := range one {
		big := make([]palette.Codel, 0, 4)
		for _, c := range row {
			big = append(big, c, c)
		}
		doubled = append(doubled, big, big)
	}
	png := encodePNG(t, doubled)

	pixels, err := imgsrc.Decode(bytes.NewReader(png))
	if err != nil {
		t.Fatalf("imgsrc.Decode: %v", err)
	}

	auto, err := grid.Build(pixels, grid.Options{})
	if err != nil {
		t.Fatalf("auto-detect grid.Build: %v", err)
	}
	explicitSize := 2
	explicit, err := grid.Build(pixels, grid.Options{CodelSize: &explicitSize})
	if err != nil {
		t.Fatalf("explicit grid.Build: %v", err)
	}

	if auto.H != explicit.H || auto.W != explicit.W {
		t.Fatalf("dims differ: auto=%dx%d explicit=%dx%d", auto.H, auto.W, explicit.H, explicit.W)
	}
	for i := 0; i < auto.H; i++ {
		for j := 0; j < auto.W; j++ {
			if auto.At(i, j) != explicit.At(i, j) {
				t.Errorf("At(%d,%d): auto=%s explicit=%s", i, j, auto.At(i, j), explicit.At(i, j))
			}
		}
	}
}
