// Package cli provides the lvalign command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const rootLongDescription = `lvalign aligns two token sequences on a Viterbi-style grid that keeps
every path, so ties and alternative alignments are reported, not just one optimum.

Configuration is read from ./lvalign.yaml (or --config), LVALIGN_* environment
variables (e.g. LVALIGN_SCORING_SCALE=linear) and flags, in increasing priority.`

// app carries per-invocation state shared by subcommands.
type app struct {
	v          *viper.Viper
	configPath string
	cfg        Config
	log        *zap.Logger
}

// NewRootCmd builds the lvalign command tree with its own configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: newViper(), log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "lvalign",
		Short:         "All-paths Viterbi sequence aligner",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	a.configureRootFlags(cmd)

	cmd.AddCommand(
		newAlignCmd(a),
		newGridCmd(a),
		newBatchCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./lvalign.yaml)")

	flags.String("scale", defaultScale, "default score scale: log or linear")
	a.bindFlagToConfig(flags.Lookup("scale"), scaleKey)
	flags.Bool("costs", false, "scores are costs: lower wins")
	a.bindFlagToConfig(flags.Lookup("costs"), costsKey)
	flags.StringP("table", "t", "", "YAML score table; missing pairs forbid moves")
	a.bindFlagToConfig(flags.Lookup("table"), tableKey)
	flags.String("null", defaultNull, "spelling of the null element in score tables")
	a.bindFlagToConfig(flags.Lookup("null"), nullKey)
	flags.String("tokens", defaultTokens, "split inputs into chars or words")
	a.bindFlagToConfig(flags.Lookup("tokens"), tokensKey)
	flags.Int("limit", defaultPathLimit, "abort when the sweep exceeds this many paths (0 = unlimited)")
	a.bindFlagToConfig(flags.Lookup("limit"), pathLimitKey)
	flags.StringP("format", "f", defaultFormat, "output format: table or yaml")
	a.bindFlagToConfig(flags.Lookup("format"), formatKey)
	flags.Bool("color", false, "color matches, substitutions and gaps")
	a.bindFlagToConfig(flags.Lookup("color"), colorKey)

	flags.BoolP("verbose", "v", false, "debug logging")
	a.bindFlagToConfig(flags.Lookup("verbose"), logVerboseKey)
	flags.String("log-file", defaultLogFilename, "log file path (rotated)")
	a.bindFlagToConfig(flags.Lookup("log-file"), logFilenameKey)
}

// bindFlagToConfig wires a flag to a viper key so config/env values feed it.
func (a *app) bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}
	cobra.CheckErr(a.v.BindPFlag(key, flag))
}

func (a *app) setup() error {
	cfg, err := loadConfig(a.v, a.configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	a.log.Debug("configuration loaded", zap.String("config", a.v.ConfigFileUsed()), zap.Any("scoring", cfg.Scoring))
	return nil
}

// Execute runs the command tree and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lvalign:", err)
		os.Exit(1)
	}
}
