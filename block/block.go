// Package block partitions a codel grid into maximal 4-connected colour
// regions ("blocks") and precomputes, for every (DP, CC) pair, the exit
// corner a block offers — the only per-step lookup the traversal engine
// needs for non-white blocks.
package block

import (
	"github.com/bdwalton/piet/direction"
	"github.com/bdwalton/piet/grid"
)

// Coord is a (row, column) grid coordinate.
type Coord struct {
	Row, Col int
}

// Block is a maximal 4-connected region of identical codels.
type Block struct {
	size    int
	corners [4][2]Coord // indexed [dp][cc]
}

// Size returns the number of codels in the block.
func (b *Block) Size() int {
	return b.size
}

// Corner returns the block's exit corner for the given (DP, CC) pair. The
// returned coordinate always lies inside the block.
func (b *Block) Corner(dp direction.DP, cc direction.CC) Coord {
	return b.corners[dp][cc]
}

// Index maps every grid coordinate to its owning block. It is built once
// and never mutated afterwards; many coordinates may share one *Block, so
// the index keeps a small arena of blocks and a per-coordinate index into
// it rather than a map keyed by coordinate.
type Index struct {
	blocks []*Block
	owner  [][]int // owner[row][col] is an index into blocks
}

// BlockAt returns the block owning c. c must be in bounds.
func (idx *Index) BlockAt(c Coord) *Block {
	return idx.blocks[idx.owner[c.Row][c.Col]]
}

// Build labels every connected component of g via an explicit, non-recursive
// flood fill (a plain work-list, not recursion, so a single huge region
// can't blow the stack) and computes each block's eight exit corners.
func Build(g *grid.CodelGrid) *Index {
	h, w := g.H, g.W
	owner := make([][]int, h)
	for i := range owner {
		owner[i] = make([]int, w)
		for j := range owner[i] {
			owner[i][j] = -1
		}
	}

	idx := &Index{owner: owner}

	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if owner[i][j] != -1 {
				continue
			}
			coords := floodFill(g, owner, i, j)
			id := len(idx.blocks)
			for _, c := range coords {
				owner[c.Row][c.Col] = id
			}
			idx.blocks = append(idx.blocks, &Block{
				size:    len(coords),
				corners: cornersOf(coords),
			})
		}
	}

	return idx
}

// floodFill collects every coordinate 4-connected to (startRow, startCol)
// that shares its codel, using an explicit work list.
func floodFill(g *grid.CodelGrid, owner [][]int, startRow, startCol int) []Coord {
	color := g.At(startRow, startCol)
	visited := map[Coord]bool{{startRow, startCol}: true}
	coords := []Coord{{startRow, startCol}}

	work := []Coord{{startRow, startCol}}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		for _, n := range neighbors(cur, g.H, g.W) {
			if visited[n] || owner[n.Row][n.Col] != -1 {
				continue
			}
			if g.At(n.Row, n.Col) != color {
				continue
			}
			visited[n] = true
			coords = append(coords, n)
			work = append(work, n)
		}
	}

	return coords
}

func neighbors(c Coord, h, w int) []Coord {
	out := make([]Coord, 0, 4)
	if c.Row > 0 {
		out = append(out, Coord{c.Row - 1, c.Col})
	}
	if c.Row < h-1 {
		out = append(out, Coord{c.Row + 1, c.Col})
	}
	if c.Col > 0 {
		out = append(out, Coord{c.Row, c.Col - 1})
	}
	if c.Col < w-1 {
		out = append(out, Coord{c.Row, c.Col + 1})
	}
	return out
}

// cornersOf computes the eight exit corners for a block given all its
// coordinates, per the table in the language spec:
//
//	DP     extreme      CC=Left picks      CC=Right picks
//	Right  max column   smallest row       largest row
//	Down   max row      largest column     smallest column
//	Left   min column   largest row        smallest row
//	Up     min row      smallest column    largest column
func cornersOf(coords []Coord) [4][2]Coord {
	rowMin, rowMax := coords[0].Row, coords[0].Row
	colMin, colMax := coords[0].Col, coords[0].Col
	for _, c := range coords[1:] {
		if c.Row < rowMin {
			rowMin = c.Row
		}
		if c.Row > rowMax {
			rowMax = c.Row
		}
		if c.Col < colMin {
			colMin = c.Col
		}
		if c.Col > colMax {
			colMax = c.Col
		}
	}

	var out [4][2]Coord

	// Right: max column, tie-break on row.
	rowAtMinOf, rowAtMaxOf := extremeRowsAt(coords, func(c Coord) bool { return c.Col == colMax })
	out[direction.Right][direction.Left] = rowAtMinOf
	out[direction.Right][direction.Right] = rowAtMaxOf

	// Down: max row, tie-break on column.
	colAtMaxOf, colAtMinOf := extremeColsAt(coords, func(c Coord) bool { return c.Row == rowMax })
	out[direction.Down][direction.Left] = colAtMaxOf
	out[direction.Down][direction.Right] = colAtMinOf

	// Left: min column, tie-break on row.
	rowAtMinOf2, rowAtMaxOf2 := extremeRowsAt(coords, func(c Coord) bool { return c.Col == colMin })
	out[direction.Left][direction.Left] = rowAtMaxOf2
	out[direction.Left][direction.Right] = rowAtMinOf2

	// Up: min row, tie-break on column.
	colAtMaxOf2, colAtMinOf2 := extremeColsAt(coords, func(c Coord) bool { return c.Row == rowMin })
	out[direction.Up][direction.Left] = colAtMinOf2
	out[direction.Up][direction.Right] = colAtMaxOf2

	return out
}

// extremeRowsAt returns, among the coordinates matching on, the one with
// the smallest row and the one with the largest row.
func extremeRowsAt(coords []Coord, on func(Coord) bool) (minRow, maxRow Coord) {
	first := true
	for _, c := range coords {
		if !on(c) {
			continue
		}
		if first {
			minRow, maxRow = c, c
			first = false
			continue
		}
		if c.Row < minRow.Row {
			minRow = c
		}
		if c.Row > maxRow.Row {
			maxRow = c
		}
	}
	return minRow, maxRow
}

// extremeColsAt returns, among the coordinates matching on, the one with
// the largest column and the one with the smallest column.
func extremeColsAt(coords []Coord, on func(Coord) bool) (maxCol, minCol Coord) {
	first := true
	for _, c := range coords {
		if !on(c) {
			continue
		}
		if first {
			maxCol, minCol = c, c
			first = false
			continue
		}
		if c.Col > maxCol.Col {
			maxCol = c
		}
		if c.Col < minCol.Col {
			minCol = c
		}
	}
	return maxCol, minCol
}
