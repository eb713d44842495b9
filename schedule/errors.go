package schedule

import "errors"

// Errors surfaced at the session boundary. Inside a running session the
// engine prefers degraded-but-displayable values over failures.
var (
	// ErrNoDocument indicates a session was created without a document.
	ErrNoDocument = errors.New("no document loaded")
	// ErrAlreadyStarted indicates Start was called on a running session.
	ErrAlreadyStarted = errors.New("session already started")
	// ErrNotStarted indicates an operation that requires a started session.
	ErrNotStarted = errors.New("session not started")
	// ErrInvalidDuration indicates an operator total duration outside the
	// supported range.
	ErrInvalidDuration = errors.New("total duration outside supported range")
)
