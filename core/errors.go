package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested object does not exist in storage.
var ErrNotFound = errors.New("not found")

// StateError wraps a base-store failure. It is fatal to the batch being
// executed: the engine aborts and propagates it, because an unreadable store
// means this node can no longer compute the same result as its peers.
type StateError struct {
	Op  string
	Key string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StateError) Unwrap() error { return e.Err }

// GameCode identifies why a handler rejected a transaction. The set is
// closed: handlers must not invent new codes, so clients can switch on them.
type GameCode string

const (
	ErrInvalidPayload      GameCode = "invalid_payload"
	ErrInvalidMove         GameCode = "invalid_move"
	ErrGameAlreadyComplete GameCode = "game_already_complete"
	ErrInvalidState        GameCode = "invalid_state"
	ErrDeckExhausted       GameCode = "deck_exhausted"
)

// GameError rejects one transaction without mutating state. The engine
// reports it as an error Event; the sender's nonce is still consumed.
type GameError struct {
	Code GameCode
	Msg  string
}

func (e *GameError) Error() string {
	if e.Msg == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Msg
}

// NewGameError builds a GameError with a formatted message.
func NewGameError(code GameCode, format string, args ...any) *GameError {
	return &GameError{Code: code, Msg: fmt.Sprintf(format, args...)}
}
