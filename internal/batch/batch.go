// Package batch aligns many sequence pairs concurrently. Each job gets its
// own viterbi.Aligner, so sweeps stay single-threaded while jobs overlap.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvalign/viterbi"
)

// ErrInvalidJobs indicates a job file failed to decode or validate.
var ErrInvalidJobs = errors.New("batch: invalid job file")

// Job is one pair of sequences to align.
type Job struct {
	Name   string `yaml:"name" validate:"required"`
	A      string `yaml:"a"`
	B      string `yaml:"b"`
	Tokens string `yaml:"tokens,omitempty" validate:"omitempty,oneof=chars words"`
}

// File is the YAML layout of a job file:
//
//	jobs:
//	  - name: greeting
//	    a: good morning
//	    b: good evening
//	    tokens: words
type File struct {
	Jobs []Job `yaml:"jobs" validate:"required,min=1,dive"`
}

// ReadJobs decodes and validates a job file.
func ReadJobs(r io.Reader) ([]Job, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidJobs)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidJobs, err)
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJobs, err)
	}
	return f.Jobs, nil
}

// Result is the outcome of one job. Aligner is nil when Err is set.
type Result struct {
	Job     Job
	Aligner *viterbi.Aligner
	Best    []viterbi.Path
	Err     error
}

// Complete returns the number of end-to-end paths.
func (r Result) Complete() int {
	if r.Aligner == nil {
		return 0
	}
	return r.Aligner.Terminal().NumPaths()
}

// Runner aligns jobs with a bounded number of goroutines.
type Runner struct {
	// Parallel caps concurrent jobs; values below 1 mean 1.
	Parallel int
	// Tokenize splits job inputs unless the job names its own tokenizer.
	// The zero Tokenizer means viterbi.CharTokenizer.
	Tokenize viterbi.Tokenizer
	// Options are passed to every viterbi.New call.
	Options []viterbi.Option
	// FailFast aborts the batch on the first job error instead of
	// recording it in Result.Err.
	FailFast bool
	Log      *zap.Logger
}

// Run aligns jobs and returns one Result per job, in input order.
// Cancelling ctx stops scheduling further jobs; unscheduled jobs carry the
// context error.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	limit := r.Parallel
	if limit < 1 {
		limit = 1
	}

	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i].Job = job
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, job := range jobs {
		if err := gctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		i, job := i, job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i] = r.align(job)
			log.Debug("batch: job done",
				zap.String("job", job.Name),
				zap.Int("complete", results[i].Complete()),
				zap.Error(results[i].Err))
			if results[i].Err != nil && r.FailFast {
				return fmt.Errorf("job %q: %w", job.Name, results[i].Err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) align(job Job) Result {
	res := Result{Job: job}
	tok := r.Tokenize
	if job.Tokens != "" {
		t, err := viterbi.ParseTokenizer(job.Tokens)
		if err != nil {
			res.Err = err
			return res
		}
		tok = t
	}
	if tok.Split == nil {
		tok = viterbi.CharTokenizer
	}

	opts := append(slices.Clip(r.Options), viterbi.WithSeparator(tok.Sep))
	al, err := viterbi.New(tok.Split(job.A), tok.Split(job.B), opts...)
	if err != nil {
		res.Err = err
		return res
	}
	res.Aligner = al
	res.Best = al.BestPaths()
	return res
}
