package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvalign/viterbi"
)

func newGridCmd(a *app) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "grid A B",
		Short: "Dump the alignment grid",
		Long: `grid prints one line per row, last row first, so A grows upward and B
grows to the right. --mode selects what each cell shows: its coordinates,
the number of paths reaching it, or the remaining suffixes of A and B.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dm, err := viterbi.ParseDumpMode(mode)
			if err != nil {
				return err
			}
			al, err := a.newAligner(args[0], args[1])
			if err != nil {
				return err
			}
			return al.Dump(cmd.OutOrStdout(), dm)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", viterbi.DumpPathCounts.String(), "coordinates, npaths or remaining")
	return cmd
}
