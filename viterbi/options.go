package viterbi

import "go.uber.org/zap"

// Option customizes an Aligner before its grid is built.
// Option constructors validate their arguments and panic on meaningless
// input; New and Align never panic.
type Option func(*config)

type config struct {
	table     ScoreTable
	costs     bool
	scale     Scale
	scoring   *Scoring
	deferred  bool
	pathLimit int
	sep       string
	logger    *zap.Logger
}

func defaultConfig() config {
	return config{
		scale:  LogScale,
		logger: zap.NewNop(),
	}
}

// WithScoreTable switches to table-driven scoring. A nil table keeps the
// default constant scoring.
func WithScoreTable(t ScoreTable) Option {
	return func(c *config) {
		c.table = t
	}
}

// WithCosts makes lower scores win in BestPaths.
func WithCosts() Option {
	return WithScoresAreCosts(true)
}

// WithScoresAreCosts sets whether lower (true) or higher (false) scores win.
func WithScoresAreCosts(costs bool) Option {
	return func(c *config) {
		c.costs = costs
	}
}

// WithScale selects the default scoring representation. Ignored when
// WithScoring supplies an explicit strategy.
func WithScale(s Scale) Option {
	if s != LogScale && s != LinearScale {
		panic("viterbi: WithScale(unknown scale)")
	}
	return func(c *config) {
		c.scale = s
	}
}

// WithScoring installs an explicit scoring strategy. Panics on a nil Combine.
func WithScoring(s Scoring) Option {
	if s.Combine == nil {
		panic("viterbi: WithScoring(nil Combine)")
	}
	return func(c *config) {
		c.scoring = &s
	}
}

// WithDeferredRun skips grid construction and the sweep in New. The caller
// runs InitializeGrid and Align (or Run) before querying paths.
func WithDeferredRun() Option {
	return func(c *config) {
		c.deferred = true
	}
}

// WithPathLimit aborts the sweep with ErrPathLimit once more than n paths
// exist. It never prunes. Panics if n <= 0.
func WithPathLimit(n int) Option {
	if n <= 0 {
		panic("viterbi: WithPathLimit(n<=0)")
	}
	return func(c *config) {
		c.pathLimit = n
	}
}

// WithSeparator sets the separator used when the aligner renders a
// sequence, as in the DumpRemaining grid dump. The default "" suits
// character sequences; word sequences want " ".
func WithSeparator(sep string) Option {
	return func(c *config) {
		c.sep = sep
	}
}

// WithLogger attaches a logger for Debug-level sweep diagnostics. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("viterbi: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}
