package mastermind

import "errors"

// Sentinel errors for the mastermind package.
// Callers check them with errors.Is; the engine wraps them with context.
var (
	// ErrInvalidConfiguration indicates a malformed alphabet or a non-positive length.
	ErrInvalidConfiguration = errors.New("mastermind: invalid configuration")
	// ErrUnknownSymbol indicates a sequence uses a character outside the alphabet.
	ErrUnknownSymbol = errors.New("mastermind: unknown symbol")
	// ErrSequenceLength indicates a sequence whose length differs from the configured length.
	ErrSequenceLength = errors.New("mastermind: wrong sequence length")
	// ErrInconsistentFeedback indicates feedback that no remaining candidate reproduces.
	ErrInconsistentFeedback = errors.New("mastermind: inconsistent feedback")
	// ErrResourceExhausted indicates a universe too large to materialize.
	ErrResourceExhausted = errors.New("mastermind: universe too large")
)
