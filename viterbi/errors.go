package viterbi

import "errors"

// Sentinel errors for viterbi operations. Callers branch with errors.Is;
// context is attached with %w at the failure site.
var (
	// ErrMalformedTable indicates a score table violates its contract
	// (NaN score, unreadable or ill-typed file).
	ErrMalformedTable = errors.New("viterbi: malformed score table")

	// ErrGridNotInitialized indicates Align was called before InitializeGrid.
	ErrGridNotInitialized = errors.New("viterbi: grid not initialized")

	// ErrAlreadyAligned indicates Align was called on a finished sweep.
	ErrAlreadyAligned = errors.New("viterbi: sweep already ran")

	// ErrPathLimit indicates the sweep created more paths than WithPathLimit allows.
	ErrPathLimit = errors.New("viterbi: path limit exceeded")

	// ErrUnknownScale indicates ParseScale got an unsupported name.
	ErrUnknownScale = errors.New("viterbi: unknown score scale")

	// ErrUnknownTokenizer indicates ParseTokenizer got an unsupported name.
	ErrUnknownTokenizer = errors.New("viterbi: unknown tokenizer")

	// ErrUnknownDumpMode indicates ParseDumpMode got an unsupported name.
	ErrUnknownDumpMode = errors.New("viterbi: unknown dump mode")
)
