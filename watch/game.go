// Package watch implements an optional visual debugger for a running
// program: an ebiten.Game that redraws the codel grid every frame and
// highlights the interpreter's current position, stepping the traversal
// engine forward one move per frame.
package watch

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bdwalton/piet/grid"
	"github.com/bdwalton/piet/vm"
)

// Scale is the number of screen pixels a single codel is drawn as.
const Scale = 12

// Game drives a vm.Engine one Step() per Update() call, rendering the
// codel grid and the interpreter's position into an ebiten window.
type Game struct {
	ctx    context.Context
	grid   *grid.CodelGrid
	engine *vm.Engine

	done   bool
	reason vm.Reason
}

// New builds a Game over a prepared engine. ctx is consulted once per
// Update call: when it is canceled, Update returns ebiten.Termination so
// the window closes and Run returns promptly instead of leaving ebiten's
// blocking render loop unkillable.
func New(ctx context.Context, g *grid.CodelGrid, e *vm.Engine) *Game {
	return &Game{ctx: ctx, grid: g, engine: e}
}

// Layout reports the fixed pixel resolution of the window: one Scale x
// Scale tile per codel. Returning constants here, the way the teacher's
// Bus.Layout does for the NES's fixed resolution, makes ebiten handle all
// window-resize scaling itself.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.grid.W * Scale, g.grid.H * Scale
}

// Update advances the program by one traversal step per frame until it
// terminates.
func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	if g.done {
		return nil
	}
	reason, done := g.engine.Step()
	if done {
		g.done = true
		g.reason = reason
		fmt.Printf("halted: %s\n", reason)
	}
	return nil
}

// Draw paints the codel grid one Scale x Scale tile at a time, the same
// per-pixel way the teacher's Bus.Draw copies the PPU's framebuffer, and
// marks the interpreter's current codel with a white square.
func (g *Game) Draw(screen *ebiten.Image) {
	for row := 0; row < g.grid.H; row++ {
		for col := 0; col < g.grid.W; col++ {
			px := g.grid.At(row, col).RGB()
			setTile(screen, col, row, rgbaOf(px.R, px.G, px.B))
		}
	}

	pos := g.engine.State.Pos
	setTile(screen, pos.Col, pos.Row, rgbaOf(255, 255, 255))
}

func setTile(screen *ebiten.Image, col, row int, c rgba) {
	baseX, baseY := col*Scale, row*Scale
	for x := 0; x < Scale; x++ {
		for y := 0; y < Scale; y++ {
			screen.Set(baseX+x, baseY+y, c)
		}
	}
}

// Run blocks until the ebiten window is closed or ctx is canceled. ebiten
// owns the calling goroutine while its render loop is active, so ctx
// cancellation is driven through Game.Update (which returns
// ebiten.Termination once ctx.Done() fires) rather than by interrupting
// RunGame from the outside. Once ctx is canceled, Run waits for RunGame to
// return and reports nil; otherwise it returns RunGame's own error.
func Run(ctx context.Context, g *Game) error {
	done := make(chan error, 1)
	go func() { done <- ebiten.RunGame(g) }()

	select {
	case <-ctx.Done():
		<-done
		return nil
	case err := <-done:
		return err
	}
}

type rgba struct{ r, g, b, a uint8 }

func (c rgba) RGBA() (r, g, b, a uint32) {
	return uint32(c.r) * 0x101, uint32(c.g) * 0x101, uint32(c.b) * 0x101, uint32(c.a) * 0x101
}

func rgbaOf(r, g, b uint8) rgba {
	return rgba{r, g, b, 255}
}
