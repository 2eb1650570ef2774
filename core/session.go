package core

import "encoding/json"

// GameType tags which rule set a session runs under. The set is closed;
// the games package enumerates exactly these.
type GameType string

const (
	GameDice  GameType = "dice"
	GameHiLo  GameType = "hilo"
	GameMines GameType = "mines"
)

// KnownGameType reports whether g names a supported game.
func KnownGameType(g GameType) bool {
	switch g {
	case GameDice, GameHiLo, GameMines:
		return true
	}
	return false
}

// GameSession is one game instance's persistent state. It is created by a
// StartGame instruction, mutated only by its owner's GameMove instructions,
// and never deleted so completed games stay auditable.
//
// State is an opaque blob owned by the game module; the engine never
// interprets it. Moves counts accepted moves and doubles as the RNG
// domain-separation index for the next move.
type GameSession struct {
	ID        uint64          `json:"id"`
	Game      GameType        `json:"game"`
	Owner     string          `json:"owner"` // pubkey hex
	Bet       uint64          `json:"bet"`
	State     json.RawMessage `json:"state"`
	Moves     uint32          `json:"moves"`
	Completed bool            `json:"completed"`
}
