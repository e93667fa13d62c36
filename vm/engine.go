package vm

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/bdwalton/piet/block"
	"github.com/bdwalton/piet/command"
	"github.com/bdwalton/piet/direction"
	"github.com/bdwalton/piet/grid"
	"github.com/bdwalton/piet/palette"
)

// Reason names why a Run call returned.
type Reason int

const (
	// ExitBlocked means eight consecutive exit attempts failed in the
	// colored regime.
	ExitBlocked Reason = iota
	// WhiteLoop means the white-region slide revisited a (position, DP)
	// pair it had already seen.
	WhiteLoop
	// MaxIterReached means the optional iteration cap fired.
	MaxIterReached
	// Canceled means the context passed to Run was canceled.
	Canceled
)

func (r Reason) String() string {
	switch r {
	case ExitBlocked:
		return "exit blocked after eight attempts"
	case WhiteLoop:
		return "white-region slide detected a loop"
	case MaxIterReached:
		return "Program terminated by `max-iter`."
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Engine drives a State through a CodelGrid/block.Index to completion.
type Engine struct {
	Grid  *grid.CodelGrid
	Index *block.Index
	State *State

	// MaxIter, if non-nil, caps the number of command/slide iterations.
	MaxIter *int
	// Trace, if non-nil, receives a line of per-step state for every
	// executed command (the --verbose surface).
	Trace io.Writer

	iter int
}

// NewEngine builds an engine over a prepared grid and block index. It
// fails if the top-left codel is Black, per the language's one
// preparation-time program-shape check.
func NewEngine(g *grid.CodelGrid, idx *block.Index, state *State) (*Engine, error) {
	if g.At(0, 0).IsBlack() {
		return nil, fmt.Errorf("the top-left codel shall not be black")
	}
	return &Engine{Grid: g, Index: idx, State: state}, nil
}

// Run drives the engine until a termination condition is reached, or ctx
// is canceled.
func (e *Engine) Run(ctx context.Context) Reason {
	for {
		select {
		case <-ctx.Done():
			return Canceled
		default:
		}

		if reason, done := e.Step(); done {
			return reason
		}
	}
}

// Step executes exactly one unit of traversal: a single colored-block
// transition, or a complete white-region slide into the next colored
// block. It lets a step-driven caller (the --watch debugger) advance the
// program one visible move at a time instead of running it to completion.
func (e *Engine) Step() (reason Reason, done bool) {
	cur := e.Grid.At(e.State.Pos.Row, e.State.Pos.Col)
	if cur.IsBlack() {
		panic("traversal engine is standing on a Black codel")
	}

	if cur.IsWhite() {
		return e.slideWhite()
	}
	return e.stepColored(cur)
}

// atMaxIter reports whether the iteration cap has fired, and counts this
// step against it.
func (e *Engine) atMaxIter() bool {
	if e.MaxIter == nil {
		return false
	}
	if e.iter >= *e.MaxIter {
		return true
	}
	e.iter++
	return false
}

// stepColored implements the colored regime: up to eight exit attempts,
// alternating a CC flip and a DP turn, before giving up.
func (e *Engine) stepColored(cur palette.Codel) (reason Reason, done bool) {
	if e.atMaxIter() {
		return MaxIterReached, true
	}

	b := e.Index.BlockAt(e.State.Pos)
	if b.Size() <= 0 {
		panic("traversal engine is standing in a block of non-positive size")
	}

	for i := 0; i < 8; i++ {
		corner := b.Corner(e.State.DP, e.State.CC)
		next, ok := e.step(corner, e.State.DP)

		if !ok || e.Grid.At(next.Row, next.Col).IsBlack() {
			e.bump(i)
			if i == 7 {
				return ExitBlocked, true
			}
			continue
		}

		nextCodel := e.Grid.At(next.Row, next.Col)
		if nextCodel.IsWhite() {
			e.State.Pos = next
			return 0, false
		}

		cmd, _ := command.Lookup(palette.HueDelta(cur, nextCodel), palette.LightnessDelta(cur, nextCodel))
		if e.Trace != nil {
			fmt.Fprintf(e.Trace, "%s  %s\n", e.State, cmd)
		}
		dispatch(e.State, cmd, int64(b.Size()))
		e.State.Pos = next
		return 0, false
	}

	return ExitBlocked, true
}

// slideWhite implements the white regime: straight-line sliding with
// (position, DP) loop detection.
func (e *Engine) slideWhite() (reason Reason, done bool) {
	visited := map[visit]bool{}

	for {
		if e.atMaxIter() {
			return MaxIterReached, true
		}

		v := visit{e.State.Pos, e.State.DP}
		if visited[v] {
			return WhiteLoop, true
		}
		visited[v] = true

		if e.Trace != nil {
			fmt.Fprintf(e.Trace, "%s  (sliding)\n", e.State)
		}

		next, ok := e.step(e.State.Pos, e.State.DP)
		if !ok || e.Grid.At(next.Row, next.Col).IsBlack() {
			e.State.CC = e.State.CC.Flip()
			e.State.DP = e.State.DP.TurnRight()
			continue
		}

		e.State.Pos = next
		if e.Grid.At(next.Row, next.Col).IsWhite() {
			continue
		}
		return 0, false
	}
}

type visit struct {
	pos block.Coord
	dp  direction.DP
}

// bump applies one step of the eight-attempt exit protocol: even-indexed
// attempts flip CC, odd-indexed attempts turn DP.
func (e *Engine) bump(attempt int) {
	if attempt%2 == 0 {
		e.State.CC = e.State.CC.Flip()
	} else {
		e.State.DP = e.State.DP.TurnRight()
	}
}

// step returns the coordinate one codel away from pos in dp's direction,
// or false if that would leave the grid.
func (e *Engine) step(pos block.Coord, dp direction.DP) (block.Coord, bool) {
	dRow, dCol := dp.Displacement()
	next := block.Coord{Row: pos.Row + dRow, Col: pos.Col + dCol}
	if !e.Grid.InBounds(next.Row, next.Col) {
		return block.Coord{}, false
	}
	return next, true
}

// dispatch executes cmd against state via reflection on the method named
// after the command, exactly the way the teacher's CPU dispatches opcodes
// by looking up op.name with reflect.ValueOf(c).MethodByName.
func dispatch(state *State, cmd command.Command, blockSize int64) {
	m := reflect.ValueOf(state).MethodByName(cmd.String())
	m.Call([]reflect.Value{reflect.ValueOf(blockSize)})
}
