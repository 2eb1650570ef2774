package engine

import (
	"math"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/games"
	"github.com/wagerchain/wagerchain/random"
)

const (
	// modifierPrice is the flat chip cost of arming a one-shot modifier.
	modifierPrice = 250
	// rewardMultChance is the percent chance a win draws the 2x reward
	// multiplier from the sentinel stream.
	rewardMultChance = 5
	// lossRewardCutBP routes this basis-point share of every realized loss
	// from the house pool into the staking reward pool.
	lossRewardCutBP = 100
)

func (c *context) startGame(in core.StartGame) error {
	if !core.KnownGameType(in.Game) {
		return core.NewGameError(core.ErrInvalidPayload, "unknown game %q", in.Game)
	}
	module, _ := games.ForType(in.Game)

	acc, err := c.st.Account(c.tx.From)
	if err != nil {
		return err
	}
	pool, err := c.st.HousePool()
	if err != nil {
		return err
	}

	if in.Bet > 0 {
		if acc.Chips < in.Bet {
			return core.NewGameError(core.ErrInvalidState, "insufficient chips: have %d need %d", acc.Chips, in.Bet)
		}
		acc.Chips -= in.Bet
		pool.Chips = satAdd(pool.Chips, in.Bet)
	}

	sess := &core.GameSession{
		ID:    pool.NextSession,
		Game:  in.Game,
		Owner: c.tx.From,
		Bet:   in.Bet,
	}
	pool.NextSession++

	// Move 0 is the init stream; gameplay moves start at 1.
	res, gerr := module.Init(sess, random.NewStream(c.seed, sess.ID, 0))
	if gerr != nil {
		return gerr
	}
	sess.Moves = 1

	c.emit(core.EventGameStarted, map[string]any{
		"session_id": sess.ID,
		"game":       string(sess.Game),
		"bet":        sess.Bet,
	})
	if err := c.settle(acc, sess, pool, res); err != nil {
		return err
	}
	if err := c.st.PutSession(sess); err != nil {
		return err
	}
	if err := c.st.PutAccount(acc); err != nil {
		return err
	}
	return c.st.PutHousePool(pool)
}

func (c *context) gameMove(in core.GameMove) error {
	sess, err := c.st.Session(in.SessionID)
	if err == core.ErrNotFound {
		return core.NewGameError(core.ErrInvalidState, "unknown session %d", in.SessionID)
	}
	if err != nil {
		return err
	}
	if sess.Owner != c.tx.From {
		return core.NewGameError(core.ErrInvalidMove, "session %d is not yours", in.SessionID)
	}
	if sess.Completed {
		return core.NewGameError(core.ErrGameAlreadyComplete, "session %d resolved", in.SessionID)
	}
	module, ok := games.ForType(sess.Game)
	if !ok {
		return core.NewGameError(core.ErrInvalidState, "session %d has unknown game %q", sess.ID, sess.Game)
	}

	acc, err := c.st.Account(c.tx.From)
	if err != nil {
		return err
	}
	pool, err := c.st.HousePool()
	if err != nil {
		return err
	}

	betBefore := sess.Bet
	res, gerr := module.ProcessMove(sess, in.Payload, random.NewStream(c.seed, sess.ID, sess.Moves))
	if gerr != nil {
		return gerr
	}
	sess.Moves++

	// A move may raise the session's bet (late stake placement); debit the
	// delta before settlement.
	if sess.Bet > betBefore {
		delta := sess.Bet - betBefore
		if acc.Chips < delta {
			return core.NewGameError(core.ErrInvalidMove, "insufficient chips for bet: have %d need %d", acc.Chips, delta)
		}
		acc.Chips -= delta
		pool.Chips = satAdd(pool.Chips, delta)
	}

	if err := c.settle(acc, sess, pool, res); err != nil {
		return err
	}
	if err := c.st.PutSession(sess); err != nil {
		return err
	}
	if err := c.st.PutAccount(acc); err != nil {
		return err
	}
	return c.st.PutHousePool(pool)
}

func (c *context) armModifier(in core.ArmModifier) error {
	acc, err := c.st.Account(c.tx.From)
	if err != nil {
		return err
	}
	switch in.Kind {
	case core.ModifierShield:
		if acc.Shield {
			return core.NewGameError(core.ErrInvalidState, "shield already armed")
		}
	case core.ModifierDouble:
		if acc.Double {
			return core.NewGameError(core.ErrInvalidState, "double already armed")
		}
	default:
		return core.NewGameError(core.ErrInvalidPayload, "unknown modifier %q", in.Kind)
	}
	if acc.Chips < modifierPrice {
		return core.NewGameError(core.ErrInvalidState, "insufficient chips: have %d need %d", acc.Chips, modifierPrice)
	}
	pool, err := c.st.HousePool()
	if err != nil {
		return err
	}
	acc.Chips -= modifierPrice
	pool.Chips = satAdd(pool.Chips, modifierPrice)
	if in.Kind == core.ModifierShield {
		acc.Shield = true
	} else {
		acc.Double = true
	}

	c.emit(core.EventModifierArmed, map[string]any{
		"kind":  string(in.Kind),
		"price": uint64(modifierPrice),
	})
	if err := c.st.PutAccount(acc); err != nil {
		return err
	}
	return c.st.PutHousePool(pool)
}

// settle applies one GameResult to the player and house balances. The
// result is the sole authority for balance mutation: base delta and
// modifier payout are both derived from it and nothing else.
func (c *context) settle(acc *core.Account, sess *core.GameSession, pool *HousePool, res core.GameResult) error {
	var base, payout int64
	resolve := true

	switch r := res.(type) {
	case core.Continue:
		resolve = false
	case core.ContinueWithUpdate:
		base, payout = int64(r.Payout), int64(r.Payout)
	case core.Win:
		total := r.Return
		// The sentinel stream keeps multiplier draws out of gameplay
		// streams; drawing unconditionally keeps the draw count fixed.
		rs := random.NewStream(c.seed, sess.ID, random.RewardRound)
		if rs.Bounded(100) < rewardMultChance {
			total = satMul2(total)
			c.emit(core.EventRewardMultiplier, map[string]any{
				"session_id": sess.ID,
				"total":      total,
			})
		}
		base, payout = int64(total), int64(total)
	case core.Loss:
		payout = -int64(sess.Bet)
	case core.LossWithExtraDeduction:
		base = -int64(r.Extra)
		payout = -int64(sess.Bet + r.Extra)
	case core.LossPreDeducted:
		payout = -int64(r.Amount)
	case core.Push:
		base = int64(r.Refund)
	default:
		return core.NewGameError(core.ErrInvalidState, "unhandled result %T", res)
	}

	adjusted := payout
	if resolve {
		adjusted = ApplyModifiers(acc, payout)
		base += adjusted - payout
	}

	if base >= 0 {
		credit := uint64(base)
		pool.Chips = satSub(pool.Chips, credit)
		acc.Chips = satAdd(acc.Chips, credit)
	} else {
		debit := uint64(-base)
		if debit > acc.Chips {
			debit = acc.Chips
		}
		acc.Chips -= debit
		pool.Chips = satAdd(pool.Chips, debit)
	}

	// Realized losses feed the staking reward pool.
	if resolve && adjusted < 0 {
		cut := uint64(-adjusted) * lossRewardCutBP / 10000
		if cut > pool.Chips {
			cut = pool.Chips
		}
		if cut > 0 {
			sp, err := c.st.StakingPool()
			if err != nil {
				return err
			}
			pool.Chips -= cut
			sp.RewardPool = satAdd(sp.RewardPool, cut)
			if err := c.st.PutStakingPool(sp); err != nil {
				return err
			}
		}
	}

	if res.Terminal() {
		sess.Completed = true
		c.emit(core.EventGameResolved, map[string]any{
			"session_id": sess.ID,
			"result":     resultKind(res),
			"delta":      base,
		})
	} else if sess.Moves > 1 {
		c.emit(core.EventGameMoved, map[string]any{
			"session_id": sess.ID,
			"move":       sess.Moves - 1,
			"delta":      base,
		})
	}
	return nil
}

func resultKind(res core.GameResult) string {
	switch res.(type) {
	case core.Continue:
		return "continue"
	case core.ContinueWithUpdate:
		return "continue_update"
	case core.Win:
		return "win"
	case core.Loss:
		return "loss"
	case core.LossWithExtraDeduction:
		return "loss_extra"
	case core.LossPreDeducted:
		return "loss_pre_deducted"
	case core.Push:
		return "push"
	}
	return "unknown"
}

func satAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func satSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func satMul2(a uint64) uint64 {
	if a > math.MaxUint64/2 {
		return math.MaxUint64
	}
	return a * 2
}
