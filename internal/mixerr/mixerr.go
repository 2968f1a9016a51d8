// Package mixerr defines the error kinds shared by the shuffle-argument
// core. Constructive operations fail with one of these; verification
// operations never return an error and instead report false (see the
// Verify* functions throughout the other internal packages).
package mixerr

import "errors"

var (
	// ErrInvalidArgument signals a malformed size or length, e.g. a
	// zero-size commitment key or a length mismatch between vectors.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCodec signals a malformed Point or Scalar byte encoding.
	ErrCodec = errors.New("malformed encoding")
	// ErrRuntime signals a failure in the underlying curve library
	// initialization.
	ErrRuntime = errors.New("runtime initialization failure")
)
