package cli

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvalign/viterbi"
)

// alignerOptions turns the resolved configuration into viterbi options.
func (a *app) alignerOptions() ([]viterbi.Option, error) {
	scale, err := viterbi.ParseScale(a.cfg.Scoring.Scale)
	if err != nil {
		return nil, err
	}
	opts := []viterbi.Option{
		viterbi.WithScale(scale),
		viterbi.WithScoresAreCosts(a.cfg.Scoring.Costs),
		viterbi.WithLogger(a.log),
	}
	if a.cfg.Align.PathLimit > 0 {
		opts = append(opts, viterbi.WithPathLimit(a.cfg.Align.PathLimit))
	}
	if a.cfg.Scoring.Table != "" {
		table, err := a.readTable(a.cfg.Scoring.Table)
		if err != nil {
			return nil, err
		}
		opts = append(opts, viterbi.WithScoreTable(table))
	}
	return opts, nil
}

func (a *app) readTable(path string) (viterbi.ScoreTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open score table: %w", err)
	}
	defer f.Close()

	table, err := viterbi.ReadScoreTable(f, a.cfg.Scoring.Null)
	if err != nil {
		return nil, fmt.Errorf("score table %s: %w", path, err)
	}
	a.log.Debug("score table loaded", zap.String("path", path), zap.Int("entries", table.Len()))
	return table, nil
}

// newAligner tokenizes both inputs and runs the sweep.
func (a *app) newAligner(rawA, rawB string, extra ...viterbi.Option) (*viterbi.Aligner, error) {
	tok, err := viterbi.ParseTokenizer(a.cfg.Align.Tokens)
	if err != nil {
		return nil, err
	}
	opts, err := a.alignerOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, viterbi.WithSeparator(tok.Sep))
	opts = append(opts, extra...)

	al, err := viterbi.New(tok.Split(rawA), tok.Split(rawB), opts...)
	if err != nil {
		return nil, err
	}
	a.log.Info("aligned",
		zap.Int("rows", al.Rows()),
		zap.Int("cols", al.Cols()),
		zap.Int("paths", al.NumPaths()),
		zap.Int("complete", al.Terminal().NumPaths()))
	return al, nil
}
