// Package lvalign aligns two token sequences on a Viterbi-style grid that
// keeps every path, from the origin to the far corner, instead of only the
// single best one.
//
// What is lvalign?
//
//	A small alignment toolkit built around one idea: enumerate, do not prune.
//		• Grid: (len(A)+1)×(len(B)+1) cells, each knowing its remaining suffixes
//		• Moves: deletion (down), diagonal, insertion (right)
//		• Scoring: log or linear probabilities, or costs where lower wins
//		• Score tables: per-pair scores; a missing pair forbids the move
//		• Ties: every equally best path is reported, in discovery order
//
// Why keep every path?
//
//   - Ambiguity is visible: "flaw" ~ "lawn" and similar cases expose ties
//   - Custom scoring can be checked against brute force on short inputs
//   - The grid dump shows how many paths reach each cell
//
// Layout:
//
//	viterbi/        : Aligner, Cell, Path, ScoreTable, scoring strategies, grid dump
//	internal/batch/ : concurrent alignment of many sequence pairs
//	internal/cli/   : the lvalign command (align, grid, batch, version)
//	cmd/lvalign/    : binary entry point
//	examples/       : runnable scenarios
//
// Quick ASCII example (path counts for "ab" ~ "ab", last row first):
//
//	row\col  0   1   2
//	   2     1   5  13
//	   1     1   3   5
//	   0     1   1   1
//
// The number of complete paths grows as the Delannoy numbers 1, 3, 13, 63,
// 321, ... so the toolkit targets short sequences.
//
//	go install github.com/katalvlaran/lvalign/cmd/lvalign@latest
package lvalign
