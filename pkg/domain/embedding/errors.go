package embedding

import "errors"

var (
	// ErrInvalidInput means the caller supplied an empty or whitespace-only
	// text where a non-empty text is required.
	ErrInvalidInput = errors.New("text is empty after trimming")

	// ErrInvariantViolation means candidate vectors and candidate texts were
	// passed with mismatched lengths. This is a programming error, not a
	// condition to catch and continue from.
	ErrInvariantViolation = errors.New("candidate vectors and texts length mismatch")

	// ErrProvider wraps any failure of the external embedding provider
	// (network, auth, rate limit, quota, malformed response). The core never
	// retries it; retry policy belongs to the caller.
	ErrProvider = errors.New("embedding provider request failed")
)
