package engine

import "errors"

var (
	// ErrInvalidInput indicates a caller bug: a required string argument was
	// missing where one was expected.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidArgument indicates a rejected option value, such as a negative
	// result cap or an unknown context filter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexNotReady indicates the index has not completed a load yet.
	// Search and Suggest return empty results instead of this error; it is
	// surfaced through status reporting.
	ErrIndexNotReady = errors.New("index not ready")
)
