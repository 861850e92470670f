package viterbi_test

import (
	"math"
	"sync"
	"testing"

	"github.com/katalvlaran/lvalign/viterbi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//----------------------------------------------------------------------------//
// Grid construction
//----------------------------------------------------------------------------//

// TestNew_GridShape verifies the grid has (n+1)(m+1) cells for several shapes.
func TestNew_GridShape(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"Empty", "", ""},
		{"EmptyA", "", "abc"},
		{"EmptyB", "abcd", ""},
		{"Square", "abc", "xyz"},
		{"Wide", "a", "wxyz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			al, err := viterbi.New(viterbi.Chars(tc.a), viterbi.Chars(tc.b))
			require.NoError(t, err)
			n, m := len(tc.a), len(tc.b)
			assert.Equal(t, (n+1)*(m+1), al.Size(), "cell count")
			assert.Equal(t, n+1, al.Rows())
			assert.Equal(t, m+1, al.Cols())
		})
	}
}

// TestCell_Accessors checks elements, sentinels and remaining suffixes.
func TestCell_Accessors(t *testing.T) {
	al, err := viterbi.New(viterbi.Chars("ab"), viterbi.Chars("xyz"))
	require.NoError(t, err)

	c, ok := al.Cell(1, 2)
	require.True(t, ok)
	assert.Equal(t, viterbi.Coord{Row: 1, Col: 2}, c.Coordinates())
	assert.Equal(t, 1, c.Row())
	assert.Equal(t, 2, c.Col())
	assert.Equal(t, viterbi.Pair{A: viterbi.Elem("b"), B: viterbi.Elem("z")}, c.Elements())

	ra, rb := c.Remaining()
	assert.Equal(t, viterbi.Chars("b"), ra)
	assert.Equal(t, viterbi.Chars("z"), rb)

	end, ok := al.Cell(2, 3)
	require.True(t, ok)
	assert.True(t, end.AElement().IsNull(), "last row consumes nothing from A")
	assert.True(t, end.BElement().IsNull(), "last column consumes nothing from B")
	ra, rb = end.Remaining()
	assert.Empty(t, ra)
	assert.Empty(t, rb)

	edge, ok := al.Cell(2, 0)
	require.True(t, ok)
	assert.Equal(t, viterbi.Pair{A: viterbi.Null, B: viterbi.Elem("x")}, edge.Elements())

	_, ok = al.Cell(3, 0)
	assert.False(t, ok, "row past the grid")
	_, ok = al.Cell(0, -1)
	assert.False(t, ok, "negative column")
}

//----------------------------------------------------------------------------//
// Path well-formedness
//----------------------------------------------------------------------------//

// TestPaths_WellFormed checks every path in every cell starts at the origin,
// moves by a legal delta, ends at its owning cell and reconstructs one pair
// per transition.
func TestPaths_WellFormed(t *testing.T) {
	al, err := viterbi.New(viterbi.Chars("abc"), viterbi.Chars("ab"))
	require.NoError(t, err)

	legal := map[viterbi.Coord]bool{{Row: 1, Col: 0}: true, {Row: 1, Col: 1}: true, {Row: 0, Col: 1}: true}
	for i := 0; i < al.Rows(); i++ {
		for j := 0; j < al.Cols(); j++ {
			c, ok := al.Cell(i, j)
			require.True(t, ok)
			require.NotZero(t, c.NumPaths(), "every cell is reachable under default scoring")
			for _, p := range c.AllPaths() {
				coords := p.Coordinates()
				require.NotEmpty(t, coords)
				assert.Equal(t, viterbi.Coord{}, coords[0], "paths start at the origin")
				assert.Equal(t, c.Coordinates(), coords[len(coords)-1], "paths end in their cell")
				assert.Equal(t, c.Coordinates(), p.End())
				assert.Equal(t, len(coords), p.Len())
				for k := 1; k < len(coords); k++ {
					d := viterbi.Coord{Row: coords[k].Row - coords[k-1].Row, Col: coords[k].Col - coords[k-1].Col}
					assert.True(t, legal[d], "illegal delta %v in %v", d, p)
				}
				assert.Len(t, p.Alignment(), len(coords)-1)
				assert.Len(t, p.Moves(), len(coords)-1)
			}
		}
	}
}

// TestPath_AlignmentReconstruction checks pairs and moves of a known optimum.
func TestPath_AlignmentReconstruction(t *testing.T) {
	al, err := viterbi.New(viterbi.Chars("flaw"), viterbi.Chars("lawn"),
		viterbi.WithScoreTable(editTable("flawn", 1, 1)), viterbi.WithCosts())
	require.NoError(t, err)

	best := al.BestPaths()
	require.Len(t, best, 1)
	p := best[0]
	assert.Equal(t, 2.0, p.Score())

	null := viterbi.Null
	assert.Equal(t, []viterbi.Pair{
		{A: viterbi.Elem("f"), B: null},
		{A: viterbi.Elem("l"), B: viterbi.Elem("l")},
		{A: viterbi.Elem("a"), B: viterbi.Elem("a")},
		{A: viterbi.Elem("w"), B: viterbi.Elem("w")},
		{A: null, B: viterbi.Elem("n")},
	}, p.Alignment())
	assert.Equal(t, []viterbi.Move{
		viterbi.Deletion, viterbi.Diagonal, viterbi.Diagonal, viterbi.Diagonal, viterbi.Insertion,
	}, p.Moves())

	ra, rb := p.Rows()
	assert.Equal(t, []string{"f", "l", "a", "w", "-"}, ra)
	assert.Equal(t, []string{"-", "l", "a", "w", "n"}, rb)
}

//----------------------------------------------------------------------------//
// Scoring and selection
//----------------------------------------------------------------------------//

// TestBestPaths_DefaultPrefersDiagonal: identical inputs align diagonally.
func TestBestPaths_DefaultPrefersDiagonal(t *testing.T) {
	al, err := viterbi.New(viterbi.Chars("ab"), viterbi.Chars("ab"))
	require.NoError(t, err)

	best := al.BestPaths()
	require.Len(t, best, 1)
	assert.Equal(t, []viterbi.Pair{
		{A: viterbi.Elem("a"), B: viterbi.Elem("a")},
		{A: viterbi.Elem("b"), B: viterbi.Elem("b")},
	}, best[0].Alignment())
	assert.Equal(t, 0.0, best[0].Score(), "ln 1 + ln 1")
}

// TestBestPaths_Modes covers every scale/costs combination on "ab" vs "ab".
func TestBestPaths_Modes(t *testing.T) {
	cases := []struct {
		name  string
		opts  []viterbi.Option
		score float64
	}{
		{"LogProbabilities", nil, 0},
		{"LinearProbabilities", []viterbi.Option{viterbi.WithScale(viterbi.LinearScale)}, 1},
		{"LogCosts", []viterbi.Option{viterbi.WithCosts()}, 0},
		{"LinearCosts", []viterbi.Option{viterbi.WithScale(viterbi.LinearScale), viterbi.WithCosts()}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			al, err := viterbi.New(viterbi.Chars("ab"), viterbi.Chars("ab"), tc.opts...)
			require.NoError(t, err)
			best := al.BestPaths()
			require.Len(t, best, 1)
			assert.Equal(t, tc.score, best[0].Score())
			assert.Equal(t, []viterbi.Move{viterbi.Diagonal, viterbi.Diagonal}, best[0].Moves())
		})
	}
}

// TestBestPaths_LinearMultiplies checks a concrete indel path score in linear mode.
func TestBestPaths_LinearMultiplies(t *testing.T) {
	al, err := viterbi.New(viterbi.Chars("a"), viterbi.Chars("a"), viterbi.WithScale(viterbi.LinearScale))
	require.NoError(t, err)

	scores := map[viterbi.Move]float64{}
	for _, p := range al.AllPaths() {
		scores[p.Moves()[0]] = p.Score()
	}
	assert.Equal(t, 1.0, scores[viterbi.Diagonal])
	assert.Equal(t, 0.25, scores[viterbi.Deletion], "0.5 × 0.5")
	assert.Equal(t, 0.25, scores[viterbi.Insertion], "0.5 × 0.5")
}

// TestBestPaths_TieCompleteness returns every tied path and nothing worse.
func TestBestPaths_TieCompleteness(t *testing.T) {
	table := viterbi.NewScoreTable().
		SetTokens("a", "a", 2).
		Set(viterbi.Elem("a"), viterbi.Null, 1).
		Set(viterbi.Null, viterbi.Elem("a"), 1)

	al, err := viterbi.New(viterbi.Chars("a"), viterbi.Chars("a"),
		viterbi.WithScoreTable(table), viterbi.WithCosts())
	require.NoError(t, err)
	require.Len(t, al.AllPaths(), 3)
	assert.Len(t, al.BestPaths(), 3, "diagonal (2) ties delete+insert (1+1) both ways")

	table.SetTokens("a", "a", 1.5)
	al, err = viterbi.New(viterbi.Chars("a"), viterbi.Chars("a"),
		viterbi.WithScoreTable(table), viterbi.WithCosts())
	require.NoError(t, err)
	best := al.BestPaths()
	require.Len(t, best, 1)
	assert.Equal(t, 1.5, best[0].Score())
}

// TestBestPaths_MatchesExtremum compares BestPaths to a brute-force filter.
func TestBestPaths_MatchesExtremum(t *testing.T) {
	for _, costs := range []bool{false, true} {
		al, err := viterbi.New(viterbi.Chars("abc"), viterbi.Chars("acb"),
			viterbi.WithScoreTable(editTable("abc", 1, 1)), viterbi.WithScoresAreCosts(costs))
		require.NoError(t, err)

		all := al.AllPaths()
		want := all[0].Score()
		for _, p := range all {
			if (costs && p.Score() < want) || (!costs && p.Score() > want) {
				want = p.Score()
			}
		}
		var expected []string
		for _, p := range all {
			if p.Score() == want {
				expected = append(expected, p.String())
			}
		}
		var got []string
		for _, p := range al.BestPaths() {
			got = append(got, p.String())
			assert.Equal(t, want, p.Score())
		}
		assert.Equal(t, expected, got, "costs=%v", costs)
	}
}

// TestBestPaths_Idempotent: queries do not reorder or mutate paths.
func TestBestPaths_Idempotent(t *testing.T) {
	al, err := viterbi.New(viterbi.Chars("abc"), viterbi.Chars("ab"))
	require.NoError(t, err)

	before := pathStrings(al.AllPaths())
	first := pathStrings(al.BestPaths())
	second := pathStrings(al.BestPaths())
	assert.Equal(t, first, second)
	assert.Equal(t, before, pathStrings(al.AllPaths()))
}

//----------------------------------------------------------------------------//
// Pruning, growth and edge cases
//----------------------------------------------------------------------------//

// TestTable_MissingKeyPrunes: no null-keyed entries means B[1] cannot be consumed.
func TestTable_MissingKeyPrunes(t *testing.T) {
	table := viterbi.NewScoreTable().SetTokens("a", "a", 1)
	al, err := viterbi.New(viterbi.Chars("a"), viterbi.Chars("ab"), viterbi.WithScoreTable(table))
	require.NoError(t, err)

	assert.Empty(t, al.AllPaths())
	assert.Empty(t, al.BestPaths())
	assert.Positive(t, al.ForbiddenMoves())

	mid, ok := al.Cell(1, 1)
	require.True(t, ok)
	assert.Equal(t, 1, mid.NumPaths(), "the diagonal (a,a) still reaches (1,1)")
}

// TestTable_EmptyRowPrunes: a key with no entries forbids every move out of it.
func TestTable_EmptyRowPrunes(t *testing.T) {
	table := viterbi.ScoreTable{
		viterbi.Elem("a"): {},
		viterbi.Null:      {viterbi.Elem("b"): 1},
	}
	al, err := viterbi.New(viterbi.Chars("a"), viterbi.Chars("b"), viterbi.WithScoreTable(table))
	require.NoError(t, err)

	assert.Zero(t, al.Terminal().NumPaths())
	assert.Empty(t, al.BestPaths())
	assert.Equal(t, 3, al.ForbiddenMoves(), "deletion and diagonal from (0,0), deletion from (0,1)")

	right, ok := al.Cell(0, 1)
	require.True(t, ok)
	assert.Equal(t, 1, right.NumPaths(), "the insertion of b is still scored")
}

// TestPathCount_Delannoy confirms the no-pruning design: terminal path counts
// are Delannoy numbers, growing faster than linearly.
func TestPathCount_Delannoy(t *testing.T) {
	want := []int{1, 3, 13, 63, 321}
	prev := 0
	for n, w := range want {
		seq := viterbi.Chars("abcd"[:n])
		al, err := viterbi.New(seq, seq)
		require.NoError(t, err)
		got := len(al.AllPaths())
		assert.Equal(t, w, got, "D(%d,%d)", n, n)
		if n >= 2 {
			assert.Greater(t, got-prev, prev, "growth is super-linear at n=%d", n)
		}
		prev = got
	}

	al, err := viterbi.New(viterbi.Chars("a"), viterbi.Chars("ab"))
	require.NoError(t, err)
	assert.Len(t, al.AllPaths(), 5, "D(1,2)")
}

// TestEmptyInputs: the origin path is the only complete path.
func TestEmptyInputs(t *testing.T) {
	for _, scale := range []viterbi.Scale{viterbi.LogScale, viterbi.LinearScale} {
		al, err := viterbi.New(nil, viterbi.Chars(""), viterbi.WithScale(scale))
		require.NoError(t, err)

		all := al.AllPaths()
		require.Len(t, all, 1)
		p := all[0]
		assert.Equal(t, viterbi.DefaultScoring(scale, false).Identity, p.Score())
		assert.Equal(t, []viterbi.Coord{{Row: 0, Col: 0}}, p.Coordinates())
		assert.Empty(t, p.Alignment())
		assert.Len(t, al.BestPaths(), 1)
	}
}

// TestOneSidedInput: with B empty the only path is all deletions.
func TestOneSidedInput(t *testing.T) {
	al, err := viterbi.New(viterbi.Chars("abc"), nil)
	require.NoError(t, err)

	all := al.AllPaths()
	require.Len(t, all, 1)
	assert.Equal(t, []viterbi.Move{viterbi.Deletion, viterbi.Deletion, viterbi.Deletion}, all[0].Moves())
	assert.InDelta(t, 3*math.Log(0.5), all[0].Score(), 1e-12)
}

//----------------------------------------------------------------------------//
// Lifecycle, limits and errors
//----------------------------------------------------------------------------//

// TestDeferredRun walks InitializeGrid/Align by hand.
func TestDeferredRun(t *testing.T) {
	al, err := viterbi.New(viterbi.Chars("ab"), viterbi.Chars("ab"), viterbi.WithDeferredRun())
	require.NoError(t, err)
	assert.False(t, al.Aligned())
	assert.Zero(t, al.Size())
	assert.Empty(t, al.AllPaths(), "queries before the sweep are empty")
	assert.Empty(t, al.BestPaths())

	assert.ErrorIs(t, al.Align(), viterbi.ErrGridNotInitialized)

	al.InitializeGrid()
	assert.Equal(t, 9, al.Size())
	assert.Empty(t, al.AllPaths(), "grid built, sweep pending")

	require.NoError(t, al.Align())
	assert.True(t, al.Aligned())
	assert.Len(t, al.AllPaths(), 13)
	assert.ErrorIs(t, al.Align(), viterbi.ErrAlreadyAligned)
	assert.ErrorIs(t, al.Run(), viterbi.ErrAlreadyAligned)
}

// TestDeferredRun_ZeroTerminal: before InitializeGrid the terminal handle is
// the zero Cell and every accessor is safe.
func TestDeferredRun_ZeroTerminal(t *testing.T) {
	al, err := viterbi.New(viterbi.Chars("ab"), viterbi.Chars("c"), viterbi.WithDeferredRun())
	require.NoError(t, err)

	c := al.Terminal()
	assert.True(t, c.IsZero())
	assert.Equal(t, viterbi.Coord{}, c.Coordinates())
	assert.Zero(t, c.Row())
	assert.Zero(t, c.Col())
	assert.True(t, c.AElement().IsNull())
	assert.Equal(t, viterbi.Pair{}, c.Elements())
	ra, rb := c.Remaining()
	assert.Nil(t, ra)
	assert.Nil(t, rb)
	assert.Zero(t, c.NumPaths())
	assert.Nil(t, c.AllPaths())
	assert.Nil(t, c.BestPaths())

	al.InitializeGrid()
	c = al.Terminal()
	assert.False(t, c.IsZero())
	assert.Equal(t, viterbi.Coord{Row: 2, Col: 1}, c.Coordinates())
}

// TestNew_CopiesTable: edits to the caller's table after New do not reach
// the sweep, so the validated table is the one used.
func TestNew_CopiesTable(t *testing.T) {
	table := viterbi.NewScoreTable().SetTokens("a", "a", 1)
	al, err := viterbi.New(viterbi.Chars("a"), viterbi.Chars("a"),
		viterbi.WithScoreTable(table), viterbi.WithDeferredRun())
	require.NoError(t, err)

	table.SetTokens("a", "a", 99)
	table.SetTokens("a", "b", math.NaN())
	require.NoError(t, al.Run())

	best := al.BestPaths()
	require.Len(t, best, 1)
	assert.Equal(t, 1.0, best[0].Score())
}

// TestPathLimit aborts the sweep rather than pruning.
func TestPathLimit(t *testing.T) {
	_, err := viterbi.New(viterbi.Chars("abc"), viterbi.Chars("abc"), viterbi.WithPathLimit(10))
	assert.ErrorIs(t, err, viterbi.ErrPathLimit)

	al, err := viterbi.New(viterbi.Chars("a"), viterbi.Chars("a"), viterbi.WithPathLimit(10))
	require.NoError(t, err)
	assert.Equal(t, 6, al.NumPaths(), "1 + 1 + 1 + 3")
}

// TestOptions_Panics: option constructors reject meaningless input.
func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { viterbi.WithPathLimit(0) })
	assert.Panics(t, func() { viterbi.WithLogger(nil) })
	assert.Panics(t, func() { viterbi.WithScale(viterbi.Scale(7)) })
	assert.Panics(t, func() { viterbi.WithScoring(viterbi.Scoring{}) })
}

// TestNew_MalformedTable surfaces table problems as ErrMalformedTable.
func TestNew_MalformedTable(t *testing.T) {
	table := viterbi.NewScoreTable().SetTokens("a", "a", math.NaN())
	_, err := viterbi.New(viterbi.Chars("a"), viterbi.Chars("a"), viterbi.WithScoreTable(table))
	assert.ErrorIs(t, err, viterbi.ErrMalformedTable)
}

// TestWithScoring uses a custom max-plus style strategy.
func TestWithScoring(t *testing.T) {
	s := viterbi.Scoring{Identity: 0, Good: 2, Bad: -1, Combine: viterbi.Add}
	al, err := viterbi.New(viterbi.Chars("ab"), viterbi.Chars("ab"), viterbi.WithScoring(s))
	require.NoError(t, err)
	best := al.BestPaths()
	require.Len(t, best, 1)
	assert.Equal(t, 4.0, best[0].Score())
	assert.Equal(t, 2.0, al.Scoring().Good)
}

// TestConcurrentReads: a finished aligner serves parallel readers.
func TestConcurrentReads(t *testing.T) {
	al, err := viterbi.New(viterbi.Chars("abc"), viterbi.Chars("abd"))
	require.NoError(t, err)
	want := pathStrings(al.BestPaths())

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = pathStrings(al.BestPaths())
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

//----------------------------------------------------------------------------//
// helpers
//----------------------------------------------------------------------------//

// editTable builds a Levenshtein-style cost table over alphabet: 0 for a
// match, sub for a substitution and indel for insertions and deletions.
func editTable(alphabet string, sub, indel float64) viterbi.ScoreTable {
	t := viterbi.NewScoreTable()
	for _, x := range viterbi.Chars(alphabet) {
		for _, y := range viterbi.Chars(alphabet) {
			score := sub
			if x == y {
				score = 0
			}
			t.Set(x, y, score)
		}
		t.Set(x, viterbi.Null, indel)
		t.Set(viterbi.Null, x, indel)
	}
	return t
}

func pathStrings(paths []viterbi.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}
