package viterbi

import (
	"fmt"
	"strings"
)

// pathNode is the arena record of a path: its last cell, the path it
// extends (-1 for the origin path), the cumulative score and its length
// in cells. A path's cell sequence is recovered by walking parent links.
type pathNode struct {
	cell   int
	parent int
	score  float64
	length int
}

// Path is a read handle on one path through the grid. Paths are never
// mutated once created.
type Path struct {
	al *Aligner
	id int
}

func (p Path) node() pathNode { return p.al.paths[p.id] }

// Score returns the cumulative score.
func (p Path) Score() float64 { return p.node().score }

// Len returns the number of cells on the path (moves + 1).
func (p Path) Len() int { return p.node().length }

// End returns the coordinates of the last cell.
func (p Path) End() Coord {
	c := p.al.cells[p.node().cell]
	return Coord{Row: c.row, Col: c.col}
}

// cellIndices returns arena indices of the path's cells, origin first.
func (p Path) cellIndices() []int {
	n := p.node()
	out := make([]int, n.length)
	for i, id := n.length-1, p.id; i >= 0; i-- {
		node := p.al.paths[id]
		out[i] = node.cell
		id = node.parent
	}
	return out
}

// Coordinates returns one (row, col) per cell, starting at (0,0).
func (p Path) Coordinates() []Coord {
	idx := p.cellIndices()
	out := make([]Coord, len(idx))
	for i, ci := range idx {
		c := &p.al.cells[ci]
		out[i] = Coord{Row: c.row, Col: c.col}
	}
	return out
}

// Alignment returns one Pair per transition, so
// len(Alignment()) == len(Coordinates())-1. For the step from cell i to
// cell i+1, A is cell i's A element if the row changed (else Null) and B
// is cell i's B element if the column changed (else Null).
func (p Path) Alignment() []Pair {
	idx := p.cellIndices()
	out := make([]Pair, 0, len(idx)-1)
	for i := 0; i+1 < len(idx); i++ {
		this, next := &p.al.cells[idx[i]], &p.al.cells[idx[i+1]]
		var pr Pair
		if this.row != next.row {
			pr.A = this.a
		}
		if this.col != next.col {
			pr.B = this.b
		}
		out = append(out, pr)
	}
	return out
}

// Moves returns the move taken at each transition.
func (p Path) Moves() []Move {
	coords := p.Coordinates()
	out := make([]Move, 0, len(coords)-1)
	for i := 0; i+1 < len(coords); i++ {
		m, _ := moveBetween(coords[i], coords[i+1])
		out = append(out, m)
	}
	return out
}

// Rows splits the alignment into two gapped rows, one per sequence, with
// NullSymbol marking gaps.
func (p Path) Rows() (a, b []string) {
	for _, pr := range p.Alignment() {
		a = append(a, pr.A.String())
		b = append(b, pr.B.String())
	}
	return a, b
}

// String renders the coordinates and score, e.g. "(0,0)→(1,1) score=0".
func (p Path) String() string {
	coords := p.Coordinates()
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s score=%g", strings.Join(parts, "→"), p.Score())
}
