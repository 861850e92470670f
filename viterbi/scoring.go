package viterbi

import (
	"fmt"
	"math"
	"strings"
)

// Scale selects how default scores are represented and combined.
//
//   - LogScale: log-probabilities, combined by addition. Stable over long
//     sequences, where products of probabilities underflow.
//   - LinearScale: plain probabilities, combined by multiplication.
type Scale int

const (
	// LogScale: Good = ln 1 = 0, Bad = ln 0.5, Combine = +.
	LogScale Scale = iota
	// LinearScale: Good = 1, Bad = 0.5, Combine = ×.
	LinearScale
)

// String returns "log" or "linear".
func (s Scale) String() string {
	switch s {
	case LogScale:
		return "log"
	case LinearScale:
		return "linear"
	}
	return fmt.Sprintf("Scale(%d)", int(s))
}

// ParseScale maps "log" / "linear" (case-insensitive) to a Scale.
func ParseScale(name string) (Scale, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "log", "":
		return LogScale, nil
	case "linear":
		return LinearScale, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScale, name)
}

// Default probabilities before scaling.
const (
	defaultGood = 1.0
	defaultBad  = 0.5
)

// CombineFunc folds one move score into a running path score.
type CombineFunc func(acc, move float64) float64

// Add combines log-space scores.
func Add(acc, move float64) float64 { return acc + move }

// Multiply combines linear-space scores.
func Multiply(acc, move float64) float64 { return acc * move }

// Scoring is the explicit scoring strategy of an Aligner.
//
// Fields:
//   - Identity: score of the empty origin path ("nothing scored yet").
//   - Good: default score of a diagonal move.
//   - Bad: default score of an insertion or deletion.
//   - Combine: extends a path score by one move score.
//
// Good and Bad are ignored when a ScoreTable is supplied; Identity and
// Combine always apply, and must match the representation of the table.
type Scoring struct {
	Identity float64
	Good     float64
	Bad      float64
	Combine  CombineFunc
}

// DefaultScoring returns the strategy for scale. In cost mode Bad is mirrored
// so that it stays strictly worse than Good under "lower wins":
// linear 1 vs 2, log 0 vs ln 2.
func DefaultScoring(scale Scale, costs bool) Scoring {
	bad := defaultBad
	if costs {
		bad = 1 / defaultBad
	}
	if scale == LinearScale {
		return Scoring{Identity: defaultGood, Good: defaultGood, Bad: bad, Combine: Multiply}
	}
	return Scoring{
		Identity: math.Log(defaultGood),
		Good:     math.Log(defaultGood),
		Bad:      math.Log(bad),
		Combine:  Add,
	}
}
