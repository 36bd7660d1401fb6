package domain

import (
	"errors"
	"fmt"
)

// Non-fatal classifier failures; both degrade to the default tier.
var (
	ErrProviderUnavailable = errors.New("classification provider unavailable")
	ErrProviderTimeout     = errors.New("classification provider timed out")
)

// ErrSessionTerminal is returned when a turn arrives for a session that has
// already reached a terminal state.
var ErrSessionTerminal = errors.New("session is in a terminal state")

// ErrPersistence wraps session-store failures; the turn is not committed.
var ErrPersistence = errors.New("session persistence failure")

// SlotValidationError is a non-fatal, user-correctable extraction failure.
// The user is reprompted for the specific slot with a corrective message.
type SlotValidationError struct {
	Slot   string
	Reason string
}

func (e *SlotValidationError) Error() string {
	return fmt.Sprintf("slot %q validation failed: %s", e.Slot, e.Reason)
}

// StateTransitionError marks an attempted transition outside the table.
// This must never occur in correct operation; when it does the session
// moves to FAILED and the event is logged as a defect.
type StateTransitionError struct {
	From DialogueState
	To   DialogueState
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("invalid dialogue state transition %s -> %s", e.From, e.To)
}

// ExecutionError reports a failure from the execution collaborator
type ExecutionError struct {
	Reason      string
	Recoverable bool
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution failed: %s", e.Reason)
}
