// Package games holds the per-game rule sets behind the shared GameModule
// contract. Modules are pure state machines: given the same session
// contents, payload bytes and stream position they produce the same new
// session contents, result and stream position on every node. All
// randomness comes from the supplied stream; drawing or branching on
// anything else breaks cross-node agreement.
package games

import (
	"encoding/json"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/random"
)

// Module is the contract every supported game implements. Neither method
// touches accounts: balance effects flow exclusively through the returned
// GameResult.
type Module interface {
	// Init populates a fresh session's state blob. The stream is the
	// session's move-0 stream.
	Init(sess *core.GameSession, s *random.Stream) (core.GameResult, *core.GameError)
	// ProcessMove applies one owner move. Payload is raw untrusted bytes;
	// malformed input must come back as a GameError, never a panic.
	ProcessMove(sess *core.GameSession, payload json.RawMessage, s *random.Stream) (core.GameResult, *core.GameError)
}

// ForType returns the module for a known game type, or false for an
// unsupported tag. The switch is exhaustive over core's closed game set.
func ForType(g core.GameType) (Module, bool) {
	switch g {
	case core.GameDice:
		return diceModule{}, true
	case core.GameHiLo:
		return hiloModule{}, true
	case core.GameMines:
		return minesModule{}, true
	}
	return nil, false
}

func contains(cards []uint8, c uint8) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

// saveState marshals a game's state struct into the session blob.
// Marshalling a plain state struct cannot fail; a failure here means the
// module itself is broken, reported as InvalidState.
func saveState(sess *core.GameSession, state any) *core.GameError {
	raw, err := json.Marshal(state)
	if err != nil {
		return core.NewGameError(core.ErrInvalidState, "encode state: %v", err)
	}
	sess.State = raw
	return nil
}

// loadState unmarshals the session blob into the module's state struct.
func loadState(sess *core.GameSession, state any) *core.GameError {
	if err := json.Unmarshal(sess.State, state); err != nil {
		return core.NewGameError(core.ErrInvalidState, "decode state: %v", err)
	}
	return nil
}
