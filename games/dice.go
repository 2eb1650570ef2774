package games

import (
	"encoding/json"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/random"
)

// diceModule is a single-roll game: the move picks a target in 1..99 and a
// direction, the stream rolls 0..99, and a hit pays bet·99/chance. The
// session may start with bet 0, in which case the move places the bet.
type diceModule struct{}

// maxDiceBet keeps bet·99, doubled by a modifier, inside int64 for
// settlement.
const maxDiceBet = uint64(1) << 50

type diceState struct {
	Roll     uint32 `json:"roll"`
	Resolved bool   `json:"resolved"`
}

type diceMove struct {
	Bet    uint64 `json:"bet"`
	Target uint32 `json:"target"`
	Over   bool   `json:"over"`
}

func (diceModule) Init(sess *core.GameSession, _ *random.Stream) (core.GameResult, *core.GameError) {
	if err := saveState(sess, diceState{}); err != nil {
		return nil, err
	}
	return core.Continue{}, nil
}

func (diceModule) ProcessMove(sess *core.GameSession, payload json.RawMessage, s *random.Stream) (core.GameResult, *core.GameError) {
	if sess.Completed {
		return nil, core.NewGameError(core.ErrGameAlreadyComplete, "session %d resolved", sess.ID)
	}
	var mv diceMove
	if err := json.Unmarshal(payload, &mv); err != nil {
		return nil, core.NewGameError(core.ErrInvalidPayload, "decode dice move: %v", err)
	}

	switch {
	case sess.Bet == 0 && mv.Bet == 0:
		return nil, core.NewGameError(core.ErrInvalidMove, "bet required")
	case sess.Bet != 0 && mv.Bet != 0:
		return nil, core.NewGameError(core.ErrInvalidMove, "bet already placed")
	case mv.Bet != 0:
		sess.Bet = mv.Bet // the engine debits the stake delta
	}
	if sess.Bet > maxDiceBet {
		return nil, core.NewGameError(core.ErrInvalidMove, "bet %d exceeds table limit", sess.Bet)
	}

	var chance uint32
	if mv.Over {
		if mv.Target > 98 {
			return nil, core.NewGameError(core.ErrInvalidMove, "roll-over target %d out of range", mv.Target)
		}
		chance = 99 - mv.Target
	} else {
		if mv.Target < 1 || mv.Target > 99 {
			return nil, core.NewGameError(core.ErrInvalidMove, "roll-under target %d out of range", mv.Target)
		}
		chance = mv.Target
	}

	roll := s.Bounded(100)
	if err := saveState(sess, diceState{Roll: roll, Resolved: true}); err != nil {
		return nil, err
	}

	won := roll < chance
	if mv.Over {
		won = roll > mv.Target
	}
	if !won {
		return core.Loss{}, nil
	}
	return core.Win{Return: sess.Bet * 99 / uint64(chance)}, nil
}
