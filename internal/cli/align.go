package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

func newAlignCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "align A B",
		Short: "Align two sequences and print the best paths",
		Long: `align sweeps the full grid for A against B and prints every best-scoring
complete path. With --all every complete path is printed instead.`,
		Example: `  lvalign align flaw lawn --table edit.yaml --costs
  lvalign align "good morning" "good evening" --tokens words --all -f yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			al, err := a.newAligner(args[0], args[1])
			if err != nil {
				return err
			}

			paths := al.BestPaths()
			if a.cfg.Align.All {
				paths = al.Terminal().AllPaths()
			}

			r := renderer{w: cmd.OutOrStdout(), color: a.cfg.Output.Color}
			switch a.cfg.Output.Format {
			case formatYAML:
				return r.yaml(newAlignmentDoc(al, paths))
			case formatTable:
				r.paths(al, paths)
				return nil
			default:
				return fmt.Errorf("unknown output format %q", a.cfg.Output.Format)
			}
		},
	}

	cmd.Flags().Bool("all", false, "print every complete path, not only the best")
	a.bindFlagToConfig(cmd.Flags().Lookup("all"), allKey)
	return cmd
}
