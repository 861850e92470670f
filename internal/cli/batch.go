package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvalign/internal/batch"
	"github.com/katalvlaran/lvalign/viterbi"
)

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Align every job listed in a YAML file",
		Long: `batch reads a job file and aligns each pair with the shared scoring
configuration. Jobs run concurrently; results are printed in file order.

  jobs:
    - name: greeting
      a: good morning
      b: good evening
      tokens: words`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := readJobsFile(args[0])
			if err != nil {
				return err
			}
			tok, err := viterbi.ParseTokenizer(a.cfg.Align.Tokens)
			if err != nil {
				return err
			}
			opts, err := a.alignerOptions()
			if err != nil {
				return err
			}

			runner := &batch.Runner{
				Parallel: a.cfg.Batch.Parallel,
				Tokenize: tok,
				Options:  opts,
				FailFast: a.cfg.Batch.FailFast,
				Log:      a.log,
			}
			a.log.Info("batch started", zap.String("file", args[0]), zap.Int("jobs", len(jobs)), zap.Int("parallel", runner.Parallel))
			results, err := runner.Run(cmd.Context(), jobs)
			if err != nil {
				return err
			}

			r := renderer{w: cmd.OutOrStdout(), color: a.cfg.Output.Color}
			switch a.cfg.Output.Format {
			case formatYAML:
				return r.yaml(batchDocs(results))
			case formatTable:
				r.batchTable(results)
				return nil
			default:
				return fmt.Errorf("unknown output format %q", a.cfg.Output.Format)
			}
		},
	}

	flags := cmd.Flags()
	flags.IntP("parallel", "p", defaultParallel, "number of jobs aligned at once")
	a.bindFlagToConfig(flags.Lookup("parallel"), parallelKey)
	flags.Bool("fail-fast", false, "stop at the first failing job")
	a.bindFlagToConfig(flags.Lookup("fail-fast"), failFastKey)
	return cmd
}

func readJobsFile(path string) ([]batch.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open job file: %w", err)
	}
	defer f.Close()
	return batch.ReadJobs(f)
}
