package viterbi

import (
	"fmt"
	"strings"
)

// NullSymbol is how Null renders in String output and dumps.
const NullSymbol = "-"

// Element is one sequence token, or the Null sentinel.
// The zero value is Null. Elements are comparable and usable as map keys.
type Element struct {
	tok   string
	valid bool
}

// Null marks "nothing consumed from this sequence". It is the element of
// cells past the end of a sequence and the indel key of a ScoreTable.
var Null = Element{}

// Elem wraps a token. The empty string is a valid token, distinct from Null.
func Elem(tok string) Element {
	return Element{tok: tok, valid: true}
}

// IsNull reports whether e is the Null sentinel.
func (e Element) IsNull() bool { return !e.valid }

// Token returns the wrapped token ("" for Null).
func (e Element) Token() string { return e.tok }

// String renders the token, or NullSymbol for Null.
func (e Element) String() string {
	if !e.valid {
		return NullSymbol
	}
	return e.tok
}

// Chars splits s into one Element per rune.
func Chars(s string) []Element {
	out := make([]Element, 0, len(s))
	for _, r := range s {
		out = append(out, Elem(string(r)))
	}
	return out
}

// Words splits s around runs of white space, one Element per word.
func Words(s string) []Element {
	return Tokens(strings.Fields(s)...)
}

// Tokens wraps each token as an Element.
func Tokens(toks ...string) []Element {
	out := make([]Element, len(toks))
	for i, t := range toks {
		out[i] = Elem(t)
	}
	return out
}

// Tokenizer splits raw input into a sequence and knows the separator that
// puts a sequence back together.
type Tokenizer struct {
	Name  string
	Split func(string) []Element
	Sep   string
}

// Built-in tokenizers.
var (
	CharTokenizer = Tokenizer{Name: "chars", Split: Chars}
	WordTokenizer = Tokenizer{Name: "words", Split: Words, Sep: " "}
)

// Join renders seq with t's separator.
func (t Tokenizer) Join(seq []Element) string { return Join(seq, t.Sep) }

// ParseTokenizer maps "chars" or "words" to a Tokenizer.
func ParseTokenizer(name string) (Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "chars", "":
		return CharTokenizer, nil
	case "words":
		return WordTokenizer, nil
	}
	return Tokenizer{}, fmt.Errorf("%w: %q", ErrUnknownTokenizer, name)
}

// Join concatenates the tokens of seq with sep. Null renders as NullSymbol.
func Join(seq []Element, sep string) string {
	parts := make([]string, len(seq))
	for i, e := range seq {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}

// Coord is a grid coordinate. Row indexes sequence A, Col indexes sequence B.
type Coord struct {
	Row, Col int
}

// String renders as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Pair is one aligned column: the A element and the B element consumed by a
// single move. Either side is Null for an indel.
type Pair struct {
	A, B Element
}

// String renders as "(a,b)".
func (p Pair) String() string {
	return fmt.Sprintf("(%s,%s)", p.A, p.B)
}

// Move is one of the three legal grid transitions.
type Move int

const (
	// Deletion consumes from A only: (+1,0).
	Deletion Move = iota
	// Diagonal consumes from both A and B: (+1,+1).
	Diagonal
	// Insertion consumes from B only: (0,+1).
	Insertion
)

// moveOrder is the order in which the sweep tries moves from a cell.
var moveOrder = [...]Move{Deletion, Diagonal, Insertion}

// Delta returns the coordinate change of m.
func (m Move) Delta() (dRow, dCol int) {
	switch m {
	case Deletion:
		return 1, 0
	case Diagonal:
		return 1, 1
	case Insertion:
		return 0, 1
	}
	return 0, 0
}

// String returns the move name.
func (m Move) String() string {
	switch m {
	case Deletion:
		return "deletion"
	case Diagonal:
		return "diagonal"
	case Insertion:
		return "insertion"
	}
	return fmt.Sprintf("Move(%d)", int(m))
}

// moveBetween classifies the transition from a to b.
func moveBetween(a, b Coord) (Move, bool) {
	switch {
	case b.Row == a.Row+1 && b.Col == a.Col:
		return Deletion, true
	case b.Row == a.Row+1 && b.Col == a.Col+1:
		return Diagonal, true
	case b.Row == a.Row && b.Col == a.Col+1:
		return Insertion, true
	}
	return 0, false
}
