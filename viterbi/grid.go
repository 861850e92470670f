package viterbi

import "go.uber.org/zap"

// cell is the arena record for grid coordinate (row, col).
// a and b are fixed at construction; paths only grows during the sweep.
type cell struct {
	row, col int
	a, b     Element
	paths    []int // indices into Aligner.paths, insertion order
}

// Cell is a read handle on one grid cell. It stays valid for the lifetime
// of its Aligner. The zero Cell, returned before the grid is built, is
// safe to query: it reports (0,0), Null elements and no paths.
type Cell struct {
	al  *Aligner
	idx int
}

var zeroCell cell

func (c Cell) rec() *cell {
	if c.al == nil {
		return &zeroCell
	}
	return &c.al.cells[c.idx]
}

// IsZero reports whether c is the zero Cell.
func (c Cell) IsZero() bool { return c.al == nil }

// Row returns the cell's row (index into A).
func (c Cell) Row() int { return c.rec().row }

// Col returns the cell's column (index into B).
func (c Cell) Col() int { return c.rec().col }

// Coordinates returns (row, col).
func (c Cell) Coordinates() Coord {
	r := c.rec()
	return Coord{Row: r.row, Col: r.col}
}

// AElement returns A[row], or Null when row == len(A).
func (c Cell) AElement() Element { return c.rec().a }

// BElement returns B[col], or Null when col == len(B).
func (c Cell) BElement() Element { return c.rec().b }

// Elements returns (A element, B element).
func (c Cell) Elements() Pair {
	r := c.rec()
	return Pair{A: r.a, B: r.b}
}

// Remaining returns the still-unconsumed suffixes A[row:] and B[col:].
func (c Cell) Remaining() (a, b []Element) {
	if c.al == nil {
		return nil, nil
	}
	r := c.rec()
	return c.al.a[r.row:], c.al.b[r.col:]
}

// NumPaths returns how many paths end in this cell.
func (c Cell) NumPaths() int {
	if c.al == nil {
		return 0
	}
	return len(c.rec().paths)
}

// AllPaths returns every path ending in this cell, in insertion order.
func (c Cell) AllPaths() []Path {
	if c.al == nil {
		return nil
	}
	ids := c.rec().paths
	if len(ids) == 0 {
		return nil
	}
	out := make([]Path, len(ids))
	for i, id := range ids {
		out[i] = Path{al: c.al, id: id}
	}
	return out
}

// BestPaths returns every path ending in this cell whose score equals the
// extremal score: the minimum in cost mode, the maximum otherwise. Ties are
// all returned, in insertion order. No paths yields nil.
func (c Cell) BestPaths() []Path {
	if c.al == nil {
		return nil
	}
	ids := c.rec().paths
	if len(ids) == 0 {
		return nil
	}
	best := c.al.paths[ids[0]].score
	for _, id := range ids[1:] {
		if s := c.al.paths[id].score; c.al.better(s, best) {
			best = s
		}
	}
	var out []Path
	for _, id := range ids {
		if c.al.paths[id].score == best {
			out = append(out, Path{al: c.al, id: id})
		}
	}
	return out
}

// index maps (row, col) to the row-major arena index.
func (al *Aligner) index(row, col int) int {
	return row*al.cols + col
}

// InBounds reports whether (row, col) lies within the grid.
func (al *Aligner) InBounds(row, col int) bool {
	return row >= 0 && row < al.rows && col >= 0 && col < al.cols
}

// InitializeGrid builds the (len(A)+1)×(len(B)+1) grid of cells, row-major.
// It is a no-op once the grid exists.
func (al *Aligner) InitializeGrid() {
	if al.cells != nil {
		return
	}
	cells := make([]cell, al.rows*al.cols)
	for i := 0; i < al.rows; i++ {
		a := Null
		if i < len(al.a) {
			a = al.a[i]
		}
		for j := 0; j < al.cols; j++ {
			b := Null
			if j < len(al.b) {
				b = al.b[j]
			}
			cells[al.index(i, j)] = cell{row: i, col: j, a: a, b: b}
		}
	}
	al.cells = cells
	al.log.Debug("viterbi: grid built", zap.Int("rows", al.rows), zap.Int("cols", al.cols))
}

// Cell returns the cell at (row, col). ok is false when the coordinate is
// outside the grid or the grid is not built.
func (al *Aligner) Cell(row, col int) (Cell, bool) {
	if al.cells == nil || !al.InBounds(row, col) {
		return Cell{}, false
	}
	return Cell{al: al, idx: al.index(row, col)}, true
}

// Terminal returns cell (len(A), len(B)). It is the zero Cell when the grid
// is not built.
func (al *Aligner) Terminal() Cell {
	c, _ := al.Cell(al.rows-1, al.cols-1)
	return c
}
