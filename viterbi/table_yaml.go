package viterbi

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ReadScoreTable decodes a two-level YAML mapping into a ScoreTable:
//
//	a:
//	  a: 0
//	  b: 2
//	  "-": 1
//	"-":
//	  a: 1
//
// Keys spelled exactly as null map to Null; an empty null disables the
// mapping. The decoded table is validated; any failure wraps ErrMalformedTable.
func ReadScoreTable(r io.Reader, null string) (ScoreTable, error) {
	var raw map[string]map[string]float64
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrMalformedTable)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformedTable, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedTable)
	}

	key := func(s string) Element {
		if null != "" && s == null {
			return Null
		}
		return Elem(s)
	}

	t := NewScoreTable()
	for a, row := range raw {
		ka := key(a)
		if len(row) == 0 {
			// an empty row forbids every move out of ka
			t[ka] = map[Element]float64{}
			continue
		}
		for b, score := range row {
			t.Set(ka, key(b), score)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// WriteYAML encodes t in the format read by ReadScoreTable.
// A token spelled like null cannot be told apart from Null and is rejected.
func (t ScoreTable) WriteYAML(w io.Writer, null string) error {
	name := func(e Element) (string, error) {
		if e.IsNull() {
			return null, nil
		}
		if e.tok == null {
			return "", fmt.Errorf("%w: token %q collides with the null spelling", ErrMalformedTable, e.tok)
		}
		return e.tok, nil
	}

	raw := make(map[string]map[string]float64, len(t))
	for a, row := range t {
		ka, err := name(a)
		if err != nil {
			return err
		}
		out := make(map[string]float64, len(row))
		for b, score := range row {
			kb, err := name(b)
			if err != nil {
				return err
			}
			out[kb] = score
		}
		raw[ka] = out
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return err
	}
	return enc.Close()
}
