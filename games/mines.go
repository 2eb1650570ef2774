package games

import (
	"encoding/json"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/random"
)

// minesModule hides 5 mines in a 25-cell grid at start. Each move reveals a
// cell or cashes out; hitting a mine loses the stake, each safe reveal
// compounds the multiplier by the exact inverse of the survival odds.
type minesModule struct{}

const (
	minesCells = 25
	minesCount = 5
	// survival odds per reveal stay below 25/20, so 1000x caps the
	// multiplier well before bet·mult can overflow.
	minesMaxMultBP = 10_000_000
	minesMaxBet    = ^uint64(0) / minesMaxMultBP
)

type minesState struct {
	Mines    []uint8 `json:"mines"`
	Revealed []uint8 `json:"revealed"`
	MultBP   uint64  `json:"mult_bp"`
}

type minesMove struct {
	Action string `json:"action"` // "reveal" | "cashout"
	Cell   uint8  `json:"cell"`
}

func (minesModule) Init(sess *core.GameSession, s *random.Stream) (core.GameResult, *core.GameError) {
	if sess.Bet == 0 {
		return nil, core.NewGameError(core.ErrInvalidState, "mines requires a bet at start")
	}
	if sess.Bet > minesMaxBet {
		return nil, core.NewGameError(core.ErrInvalidState, "bet %d exceeds table limit", sess.Bet)
	}

	// Fisher–Yates over the 25 cells; the first minesCount land the mines.
	var cells [minesCells]uint8
	for i := range cells {
		cells[i] = uint8(i)
	}
	for i := minesCells - 1; i > 0; i-- {
		j := s.Bounded(uint32(i + 1))
		cells[i], cells[j] = cells[j], cells[i]
	}
	st := minesState{
		Mines:  append([]uint8(nil), cells[:minesCount]...),
		MultBP: 10000,
	}
	if err := saveState(sess, &st); err != nil {
		return nil, err
	}
	return core.Continue{}, nil
}

func (minesModule) ProcessMove(sess *core.GameSession, payload json.RawMessage, _ *random.Stream) (core.GameResult, *core.GameError) {
	if sess.Completed {
		return nil, core.NewGameError(core.ErrGameAlreadyComplete, "session %d resolved", sess.ID)
	}
	var st minesState
	if err := loadState(sess, &st); err != nil {
		return nil, err
	}
	var mv minesMove
	if err := json.Unmarshal(payload, &mv); err != nil {
		return nil, core.NewGameError(core.ErrInvalidPayload, "decode mines move: %v", err)
	}

	switch mv.Action {
	case "cashout":
		if len(st.Revealed) == 0 {
			return nil, core.NewGameError(core.ErrInvalidMove, "nothing revealed yet")
		}
		return core.Win{Return: sess.Bet * st.MultBP / 10000}, nil

	case "reveal":
		if mv.Cell >= minesCells {
			return nil, core.NewGameError(core.ErrInvalidMove, "cell %d out of range", mv.Cell)
		}
		if contains(st.Revealed, mv.Cell) {
			return nil, core.NewGameError(core.ErrInvalidMove, "cell %d already revealed", mv.Cell)
		}
		if contains(st.Mines, mv.Cell) {
			st.Revealed = append(st.Revealed, mv.Cell)
			if err := saveState(sess, &st); err != nil {
				return nil, err
			}
			return core.Loss{}, nil
		}

		// Fair odds: multiply by remaining cells over remaining safe cells.
		r := uint64(len(st.Revealed))
		st.MultBP = st.MultBP * (minesCells - r) / (minesCells - minesCount - r)
		if st.MultBP > minesMaxMultBP {
			st.MultBP = minesMaxMultBP
		}
		st.Revealed = append(st.Revealed, mv.Cell)
		if err := saveState(sess, &st); err != nil {
			return nil, err
		}
		if len(st.Revealed) == minesCells-minesCount {
			return core.Win{Return: sess.Bet * st.MultBP / 10000}, nil
		}
		return core.Continue{}, nil

	default:
		return nil, core.NewGameError(core.ErrInvalidMove, "unknown action %q", mv.Action)
	}
}
