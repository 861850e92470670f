// Package viterbi aligns two token sequences on a Viterbi-style dynamic
// programming grid that keeps every surviving path, not only the best one.
//
// What:
//
//   - Builds an (n+1)×(m+1) grid of cells for sequences A (rows) and B (columns).
//     Row n and column m stand for "the whole sequence has been consumed".
//   - Seeds cell (0,0) with an empty path and sweeps the grid row-major,
//     extending every path in a cell by a deletion (+1,0), a diagonal (+1,+1)
//     and an insertion (0,+1).
//   - Paths are never pruned or merged: the terminal cell (n,m) holds every
//     end-to-end alignment, and BestPaths returns all ties of the extremal score.
//
// Why:
//
//   - Approximate string matching with custom substitution / indel scores.
//   - Aligning parallel transcripts word by word.
//   - Inspecting the full set of alternative alignments, not just an optimum.
//
// Scoring:
//
//   - Default scoring: a diagonal move scores Scoring.Good, an indel scores
//     Scoring.Bad. LogScale (default) adds log-probabilities, LinearScale
//     multiplies probabilities.
//   - Table scoring: a ScoreTable maps (a, b) pairs to scores; Null stands for
//     "nothing consumed". A pair missing from the table forbids that move.
//   - WithCosts flips the comparison: lower scores win.
//
// Complexity:
//
//   - Cells: O(n·m) time and memory.
//   - Paths: the number of paths into (n,m) is the Delannoy number D(n,m)
//     under unrestricted scoring, i.e. exponential in min(n,m). Bound your
//     inputs, or set WithPathLimit to fail fast with ErrPathLimit.
//
// Concurrency:
//
//	The sweep is single-threaded. Once Align returns, an Aligner is
//	read-only and safe for concurrent readers.
//
// Usage:
//
//	al, err := viterbi.New(viterbi.Chars("kitten"), viterbi.Chars("sitting"))
//	if err != nil {
//	  // ErrMalformedTable, ErrPathLimit, ...
//	}
//	for _, p := range al.BestPaths() {
//	  fmt.Println(p.Score(), p.Alignment())
//	}
//
// Errors:
//
//   - ErrMalformedTable: a score table is ill-formed (NaN score,
//     unreadable file). An empty row is legal and forbids moves.
//   - ErrGridNotInitialized: Align was called before InitializeGrid.
//   - ErrAlreadyAligned: Align was called twice.
//   - ErrPathLimit: the sweep exceeded WithPathLimit.
//   - ErrUnknownScale / ErrUnknownTokenizer / ErrUnknownDumpMode: unparsable names.
package viterbi
