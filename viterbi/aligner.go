package viterbi

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Aligner aligns sequence A (grid rows) against sequence B (grid columns).
//
// Algorithm Outline:
//  1. Let n = len(A), m = len(B). Build (n+1)×(m+1) cells; cell (i,j) holds
//     A[i] (Null if i == n) and B[j] (Null if j == m).
//  2. Seed cell (0,0) with the path [(0,0)] scored Scoring.Identity.
//  3. Visit cells row-major. For every path P in cell (i,j) and every move
//     deletion (i+1,j), diagonal (i+1,j+1), insertion (i,j+1) inside the grid:
//     score = table[a][b] or Good/Bad; skip when the table lacks the pair;
//     append P+neighbour with Combine(P.score, score) to the neighbour.
//  4. Cell (n,m) now holds every end-to-end path.
//
// Row-major order is a topological order of the move graph: every move
// increases row, col or both, so a cell's paths are complete when visited.
//
// Complexity:
//
//	Cells  = O(n·m)
//	Paths  = Σ D(i,j) over the grid (Delannoy numbers) with no forbidden moves
type Aligner struct {
	a, b      []Element
	table     ScoreTable
	costs     bool
	scoring   Scoring
	pathLimit int
	sep       string
	log       *zap.Logger

	rows, cols int
	cells      []cell
	paths      []pathNode
	aligned    bool
	forbidden  int
}

// New creates an Aligner for a and b. Unless WithDeferredRun is given, the
// grid is built and the sweep runs before New returns. The sequences and
// the score table are copied, so later edits by the caller have no effect.
//
// Errors:
//   - ErrMalformedTable if the score table fails Validate.
//   - ErrPathLimit if the sweep exceeds WithPathLimit.
func New(a, b []Element, opts ...Option) (*Aligner, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.table != nil {
		if err := cfg.table.Validate(); err != nil {
			return nil, err
		}
	}
	scoring := DefaultScoring(cfg.scale, cfg.costs)
	if cfg.scoring != nil {
		scoring = *cfg.scoring
	}

	al := &Aligner{
		a:         slices.Clone(a),
		b:         slices.Clone(b),
		table:     cfg.table.clone(),
		costs:     cfg.costs,
		scoring:   scoring,
		pathLimit: cfg.pathLimit,
		sep:       cfg.sep,
		log:       cfg.logger,
		rows:      len(a) + 1,
		cols:      len(b) + 1,
	}
	if cfg.deferred {
		return al, nil
	}
	if err := al.Run(); err != nil {
		return nil, err
	}
	return al, nil
}

// Run builds the grid and performs the sweep.
func (al *Aligner) Run() error {
	al.InitializeGrid()
	return al.Align()
}

// Align performs the dynamic-programming sweep over a built grid.
//
// Errors:
//   - ErrGridNotInitialized if InitializeGrid has not run.
//   - ErrAlreadyAligned on a second call.
//   - ErrPathLimit if more than WithPathLimit paths would be created; the
//     paths built so far stay readable but the grid is incomplete.
func (al *Aligner) Align() error {
	if al.cells == nil {
		return ErrGridNotInitialized
	}
	if al.aligned {
		return ErrAlreadyAligned
	}
	al.aligned = true

	al.paths = append(al.paths, pathNode{cell: 0, parent: -1, score: al.scoring.Identity, length: 1})
	al.cells[0].paths = append(al.cells[0].paths, 0)

	// Arena order is row-major, which is the sweep order.
	for ci := range al.cells {
		c := &al.cells[ci]
		// Moves only go forward, so c.paths does not grow while c is visited.
		for _, pid := range c.paths {
			for _, mv := range moveOrder {
				dr, dc := mv.Delta()
				nr, nc := c.row+dr, c.col+dc
				if !al.InBounds(nr, nc) {
					continue
				}
				score, ok := al.moveScore(c, mv)
				if !ok {
					al.forbidden++
					continue
				}
				if al.pathLimit > 0 && len(al.paths) >= al.pathLimit {
					return fmt.Errorf("%w: %d paths at cell (%d,%d)", ErrPathLimit, len(al.paths), c.row, c.col)
				}
				prev := al.paths[pid]
				ni := al.index(nr, nc)
				al.paths = append(al.paths, pathNode{
					cell:   ni,
					parent: pid,
					score:  al.scoring.Combine(prev.score, score),
					length: prev.length + 1,
				})
				al.cells[ni].paths = append(al.cells[ni].paths, len(al.paths)-1)
			}
		}
	}

	al.log.Debug("viterbi: sweep complete",
		zap.Int("cells", len(al.cells)),
		zap.Int("paths", len(al.paths)),
		zap.Int("terminalPaths", al.Terminal().NumPaths()),
		zap.Int("forbiddenMoves", al.forbidden),
	)
	return nil
}

// moveScore returns the score of taking mv out of c; ok is false when the
// score table forbids the move.
func (al *Aligner) moveScore(c *cell, mv Move) (score float64, ok bool) {
	a, b := Null, Null
	if mv == Deletion || mv == Diagonal {
		a = c.a
	}
	if mv == Insertion || mv == Diagonal {
		b = c.b
	}
	if al.table != nil {
		return al.table.Lookup(a, b)
	}
	if mv == Diagonal {
		return al.scoring.Good, true
	}
	return al.scoring.Bad, true
}

// better reports whether x beats y under the configured comparison.
func (al *Aligner) better(x, y float64) bool {
	if al.costs {
		return x < y
	}
	return x > y
}

// AllPaths returns every path ending in the terminal cell (len(A), len(B)).
// Empty before the sweep.
func (al *Aligner) AllPaths() []Path {
	return al.Terminal().AllPaths()
}

// BestPaths returns all terminal paths tied for the extremal score.
// Empty before the sweep or when no complete path exists.
func (al *Aligner) BestPaths() []Path {
	return al.Terminal().BestPaths()
}

// A returns a copy of sequence A.
func (al *Aligner) A() []Element { return slices.Clone(al.a) }

// B returns a copy of sequence B.
func (al *Aligner) B() []Element { return slices.Clone(al.b) }

// Separator returns the separator set by WithSeparator.
func (al *Aligner) Separator() string { return al.sep }

// Rows returns len(A)+1.
func (al *Aligner) Rows() int { return al.rows }

// Cols returns len(B)+1.
func (al *Aligner) Cols() int { return al.cols }

// Size returns the number of built cells: Rows()*Cols(), or 0 before
// InitializeGrid.
func (al *Aligner) Size() int { return len(al.cells) }

// NumPaths returns the number of paths created across the whole grid.
func (al *Aligner) NumPaths() int { return len(al.paths) }

// ForbiddenMoves returns how many extensions the score table rejected.
func (al *Aligner) ForbiddenMoves() int { return al.forbidden }

// Aligned reports whether the sweep has run.
func (al *Aligner) Aligned() bool { return al.aligned }

// ScoresAreCosts reports whether lower scores win.
func (al *Aligner) ScoresAreCosts() bool { return al.costs }

// Scoring returns the strategy in use.
func (al *Aligner) Scoring() Scoring { return al.scoring }
