// Package errs defines the sentinel errors shared by the squeeze packages.
//
// Errors returned by codecs wrap one of these sentinels with additional
// context, so callers should test for them with errors.Is.
package errs

import "errors"

var (
	// ErrMalformedStream reports a truncated pair or token, an unknown tag
	// byte, a zero count, distance or length, or a back-reference pointing
	// before the start of the decoded output.
	ErrMalformedStream = errors.New("malformed stream")

	// ErrUnsupportedField reports a run count, match distance or match
	// length that does not fit its one-byte field while the encoder is
	// configured not to clamp or split.
	ErrUnsupportedField = errors.New("value exceeds field width")

	// ErrUnknownCodec reports a codec identifier outside {rle, lz77}.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrInvalidOption reports an out-of-range configuration value.
	ErrInvalidOption = errors.New("invalid option")

	// ErrDuplicateInput reports an input path handed to a batch run twice.
	ErrDuplicateInput = errors.New("input already tracked")

	// ErrNoMatch reports a batch input pattern that matched no file.
	ErrNoMatch = errors.New("no input matches pattern")
)
