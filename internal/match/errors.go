package match

import (
	"errors"
	"fmt"
)

// Error kinds. Every error the service returns on purpose wraps one of
// these; anything else is a store failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
)

// Error carries a caller-facing message alongside its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func notFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...)}
}

func invalidInput(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

const (
	msgMatchNotFound    = "Match not found"
	msgMatchNotLive     = "Match is not live"
	msgNoActiveInnings  = "No active innings found"
	msgNoBallsToUndo    = "No balls to undo"
	msgTossRequired     = "toss winner and decision required"
	msgMatchNotUpcoming = "Match has already started"
	msgMatchAlreadyOver = "Match is already over"
	msgInningsNotFound  = "Innings not found"
)
