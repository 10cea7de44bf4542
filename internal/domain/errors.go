package domain

import "errors"

var (
	// ErrIO indicates the day log storage could not be created, read or
	// durably written.
	ErrIO = errors.New("storage i/o failure")

	// ErrMalformedEntry indicates a stored line is not a HH:MM:SS time.
	ErrMalformedEntry = errors.New("malformed log entry")

	// ErrInvalidState indicates a stop event earlier than its paired start.
	ErrInvalidState = errors.New("invalid session state")
)
