package games

import (
	"encoding/json"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/random"
)

// hiloModule deals a base card and lets the player chain higher/lower
// guesses, 1.9x per correct call, cash out any time. Dealt cards persist in
// the session and are excluded from later draws, so no card repeats within
// one session.
type hiloModule struct{}

const (
	hiloStepBP    = 19000      // multiplier per correct guess, basis points
	hiloMaxMultBP = 10_000_000 // 1000x cap keeps bet·mult inside uint64
	hiloMaxBet    = ^uint64(0) / hiloMaxMultBP
)

type hiloState struct {
	Base   uint8   `json:"base"`
	Dealt  []uint8 `json:"dealt"`
	MultBP uint64  `json:"mult_bp"`
	Streak uint32  `json:"streak"`
}

type hiloMove struct {
	Action string `json:"action"` // "hi" | "lo" | "cashout"
}

func (hiloModule) Init(sess *core.GameSession, s *random.Stream) (core.GameResult, *core.GameError) {
	if sess.Bet == 0 {
		return nil, core.NewGameError(core.ErrInvalidState, "hilo requires a bet at start")
	}
	if sess.Bet > hiloMaxBet {
		return nil, core.NewGameError(core.ErrInvalidState, "bet %d exceeds table limit", sess.Bet)
	}
	base := uint8(s.Bounded(random.DeckSize))
	st := hiloState{Base: base, Dealt: []uint8{base}, MultBP: 10000}
	if err := saveState(sess, &st); err != nil {
		return nil, err
	}
	return core.Continue{}, nil
}

func (hiloModule) ProcessMove(sess *core.GameSession, payload json.RawMessage, s *random.Stream) (core.GameResult, *core.GameError) {
	if sess.Completed {
		return nil, core.NewGameError(core.ErrGameAlreadyComplete, "session %d resolved", sess.ID)
	}
	var st hiloState
	if err := loadState(sess, &st); err != nil {
		return nil, err
	}
	var mv hiloMove
	if err := json.Unmarshal(payload, &mv); err != nil {
		return nil, core.NewGameError(core.ErrInvalidPayload, "decode hilo move: %v", err)
	}

	switch mv.Action {
	case "cashout":
		return core.Win{Return: sess.Bet * st.MultBP / 10000}, nil
	case "hi", "lo":
	default:
		return nil, core.NewGameError(core.ErrInvalidMove, "unknown action %q", mv.Action)
	}

	next, ok := random.DrawExcludingBitset(s, st.Dealt)
	if !ok {
		return nil, core.NewGameError(core.ErrDeckExhausted, "all %d cards dealt", random.DeckSize)
	}
	st.Dealt = append(st.Dealt, next)

	baseRank, nextRank := random.Rank(st.Base), random.Rank(next)
	st.Base = next
	switch {
	case nextRank == baseRank:
		if err := saveState(sess, &st); err != nil {
			return nil, err
		}
		return core.Push{Refund: sess.Bet}, nil
	case (mv.Action == "hi") == (nextRank > baseRank):
		st.MultBP = st.MultBP * hiloStepBP / 10000
		if st.MultBP > hiloMaxMultBP {
			st.MultBP = hiloMaxMultBP
		}
		st.Streak++
		if err := saveState(sess, &st); err != nil {
			return nil, err
		}
		return core.Continue{}, nil
	default:
		if err := saveState(sess, &st); err != nil {
			return nil, err
		}
		return core.Loss{}, nil
	}
}
