package viterbi

import (
	"fmt"
	"maps"
	"math"
	"sort"

	cerrors "cloudeng.io/errors"
)

// ScoreTable maps an A-side key to a B-side key to the score of aligning them.
//
//   - (a, b): score of a diagonal move consuming a and b.
//   - (a, Null): score of a deletion consuming a.
//   - (Null, b): score of an insertion consuming b.
//
// A pair that is absent forbids the corresponding move. Scores are used
// as-is: they must already be in the Scale the Aligner combines with.
type ScoreTable map[Element]map[Element]float64

// NewScoreTable returns an empty table.
func NewScoreTable() ScoreTable {
	return make(ScoreTable)
}

// Set stores score for (a, b) and returns t for chaining.
func (t ScoreTable) Set(a, b Element, score float64) ScoreTable {
	row, ok := t[a]
	if !ok {
		row = make(map[Element]float64)
		t[a] = row
	}
	row[b] = score
	return t
}

// SetTokens is Set for plain tokens.
func (t ScoreTable) SetTokens(a, b string, score float64) ScoreTable {
	return t.Set(Elem(a), Elem(b), score)
}

// Lookup returns the score of (a, b). ok is false when the move is forbidden.
func (t ScoreTable) Lookup(a, b Element) (score float64, ok bool) {
	row, ok := t[a]
	if !ok {
		return 0, false
	}
	score, ok = row[b]
	return score, ok
}

// Len returns the number of (a, b) entries.
func (t ScoreTable) Len() int {
	n := 0
	for _, row := range t {
		n += len(row)
	}
	return n
}

// Validate reports every NaN score in t, each wrapping ErrMalformedTable.
// An empty row is legal: it forbids every move out of that key.
// Consistency with cost vs probability semantics is not checked.
func (t ScoreTable) Validate() error {
	errs := &cerrors.M{}
	for _, a := range sortedKeys(t) {
		row := t[a]
		for _, b := range sortedKeys(row) {
			if math.IsNaN(row[b]) {
				errs.Append(fmt.Errorf("%w: score of (%s,%s) is NaN", ErrMalformedTable, a, b))
			}
		}
	}
	return errs.Err()
}

// clone copies t and each of its rows.
func (t ScoreTable) clone() ScoreTable {
	if t == nil {
		return nil
	}
	out := make(ScoreTable, len(t))
	for a, row := range t {
		out[a] = maps.Clone(row)
		if out[a] == nil {
			out[a] = map[Element]float64{}
		}
	}
	return out
}

// sortedKeys orders map keys with Null first, then by token.
func sortedKeys[V any](m map[Element]V) []Element {
	keys := make([]Element, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].valid != keys[j].valid {
			return !keys[i].valid
		}
		return keys[i].tok < keys[j].tok
	})
	return keys
}
