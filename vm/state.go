// Package vm implements the interpreter's runtime: the stack/register
// state, the 17 stack operations, and the traversal engine that drives a
// program to completion.
package vm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bdwalton/piet/block"
	"github.com/bdwalton/piet/direction"
	"github.com/bdwalton/piet/input"
)

// State is the interpreter's full runtime state: position, stack, the two
// direction registers, and the I/O handles. The stack, registers and I/O
// handles are owned exclusively by one State; nothing here is shared.
type State struct {
	Pos   block.Coord
	Stack []int64
	DP    direction.DP
	CC    direction.CC

	in  *input.Reader
	out io.Writer
}

// NewState builds the initial interpreter state: position (0,0), empty
// stack, DP=Right, CC=Left.
func NewState(in io.Reader, out io.Writer) *State {
	return &State{
		Pos: block.Coord{Row: 0, Col: 0},
		DP:  direction.Right,
		CC:  direction.Left,
		in:  input.New(in),
		out: out,
	}
}

func (s *State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pos=(%d,%d) DP=%s CC=%s stack=%v", s.Pos.Row, s.Pos.Col, s.DP, s.CC, s.Stack)
	return sb.String()
}

func (s *State) push(v int64) {
	s.Stack = append(s.Stack, v)
}

func (s *State) pop() (int64, bool) {
	if len(s.Stack) == 0 {
		return 0, false
	}
	v := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return v, true
}

func (s *State) peek() (int64, bool) {
	if len(s.Stack) == 0 {
		return 0, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Push pushes the size of the block being left. It is the only operation
// that reads blockSize; every other operation ignores it, the same way
// most of the teacher's 6502 opcodes ignore their addressing-mode argument.
func (s *State) Push(blockSize int64) {
	s.push(blockSize)
}

// Pop discards the top of the stack. No-op on an empty stack.
func (s *State) Pop(blockSize int64) {
	s.pop()
}

// Add pushes x + y (after popping both). No-op with fewer than two values.
func (s *State) Add(blockSize int64) {
	if len(s.Stack) < 2 {
		return
	}
	x, _ := s.pop()
	y, _ := s.pop()
	s.push(x + y)
}

// Subtract pushes y - x. No-op with fewer than two values.
func (s *State) Subtract(blockSize int64) {
	if len(s.Stack) < 2 {
		return
	}
	x, _ := s.pop()
	y, _ := s.pop()
	s.push(y - x)
}

// Multiply pushes x * y. No-op with fewer than two values.
func (s *State) Multiply(blockSize int64) {
	if len(s.Stack) < 2 {
		return
	}
	x, _ := s.pop()
	y, _ := s.pop()
	s.push(x * y)
}

// Divide pushes y / x, truncating. No-op with fewer than two values or
// when x is zero.
func (s *State) Divide(blockSize int64) {
	if len(s.Stack) < 2 {
		return
	}
	x := s.Stack[len(s.Stack)-1]
	if x == 0 {
		return
	}
	x, _ = s.pop()
	y, _ := s.pop()
	s.push(y / x)
}

// Mod pushes the floored modulus of y by x: the result's sign matches x.
// No-op with fewer than two values or when x is zero.
func (s *State) Mod(blockSize int64) {
	if len(s.Stack) < 2 {
		return
	}
	x := s.Stack[len(s.Stack)-1]
	if x == 0 {
		return
	}
	x, _ = s.pop()
	y, _ := s.pop()
	s.push(floorMod(y, x))
}

func floorMod(y, x int64) int64 {
	m := y % x
	if m != 0 && (m < 0) != (x < 0) {
		m += x
	}
	return m
}

// Not pops the top and pushes 0 if it was non-zero, 1 if it was zero.
// No-op on an empty stack.
func (s *State) Not(blockSize int64) {
	x, ok := s.pop()
	if !ok {
		return
	}
	if x == 0 {
		s.push(1)
	} else {
		s.push(0)
	}
}

// Greater pushes 1 if y > x else 0. No-op with fewer than two values.
func (s *State) Greater(blockSize int64) {
	if len(s.Stack) < 2 {
		return
	}
	x, _ := s.pop()
	y, _ := s.pop()
	if y > x {
		s.push(1)
	} else {
		s.push(0)
	}
}

// Pointer rotates DP clockwise by the popped top. No-op on an empty stack.
func (s *State) Pointer(blockSize int64) {
	n, ok := s.pop()
	if !ok {
		return
	}
	turns := int(((n % 4) + 4) % 4)
	s.DP = s.DP.RotateClockwiseBy(turns)
}

// Switch flips CC iff the popped top has an odd absolute value. No-op on
// an empty stack.
func (s *State) Switch(blockSize int64) {
	n, ok := s.pop()
	if !ok {
		return
	}
	if n%2 != 0 {
		s.CC = s.CC.Flip()
	}
}

// Duplicate pushes a copy of the top. No-op on an empty stack.
func (s *State) Duplicate(blockSize int64) {
	v, ok := s.peek()
	if !ok {
		return
	}
	s.push(v)
}

// Roll pops num_roll then depth and rotates the top depth elements of the
// remaining stack by num_roll positions (positive buries the top deeper).
// No-op if fewer than two values are available, or if depth is negative or
// exceeds the remaining stack. The rotation amount is reduced mod depth
// before rotating, so the work is O(depth) regardless of num_roll.
func (s *State) Roll(blockSize int64) {
	if len(s.Stack) < 2 {
		return
	}
	numRoll := s.Stack[len(s.Stack)-1]
	depth := s.Stack[len(s.Stack)-2]
	rest := s.Stack[:len(s.Stack)-2]
	if depth < 0 || depth > int64(len(rest)) {
		return
	}
	s.Stack = rest
	d := int(depth)
	if d <= 1 {
		return
	}
	k := int(((numRoll % int64(d)) + int64(d)) % int64(d))
	if k == 0 {
		return
	}
	group := s.Stack[len(s.Stack)-d:]
	rotated := make([]int64, d)
	copy(rotated, group[d-k:])
	copy(rotated[k:], group[:d-k])
	copy(group, rotated)
}

// InNumber reads one whitespace-delimited integer token and pushes it on
// success. No-op on EOF or a malformed token (the token is still consumed).
func (s *State) InNumber(blockSize int64) {
	n, ok := s.in.ReadInteger()
	if !ok {
		return
	}
	s.push(n)
}

// InChar reads the next non-whitespace code point and pushes its Unicode
// scalar value on success. No-op on EOF.
func (s *State) InChar(blockSize int64) {
	r, ok := s.in.ReadChar()
	if !ok {
		return
	}
	s.push(int64(r))
}

// OutNumber pops the top and writes its decimal representation followed
// by a newline. No-op on an empty stack.
func (s *State) OutNumber(blockSize int64) {
	v, ok := s.pop()
	if !ok {
		return
	}
	io.WriteString(s.out, strconv.FormatInt(v, 10)+"\n")
}

// OutChar writes the UTF-8 encoding of the top value's Unicode scalar and
// pops it. No-op (the value stays on the stack) if the top is not a valid
// Unicode scalar value, or the stack is empty.
func (s *State) OutChar(blockSize int64) {
	v, ok := s.peek()
	if !ok {
		return
	}
	if v < 0 || v > utf8.MaxRune || !utf8.ValidRune(rune(v)) {
		return
	}
	s.pop()
	io.WriteString(s.out, string(rune(v)))
}
