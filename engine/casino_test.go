package engine

import (
	"testing"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/internal/testutil"
	"github.com/wagerchain/wagerchain/random"
	"github.com/wagerchain/wagerchain/storage"
)

const (
	settleStart = uint64(50_000)
	settleBet   = uint64(1000)
	settleHouse = uint64(1_000_000)
)

// settleOne runs a single result through settlement on a fresh state and
// returns everything it may have touched.
func settleOne(t *testing.T, seed core.Seed, res core.GameResult, shield, double bool) (*core.Account, *HousePool, *StakingPool, *core.GameSession, []core.Event) {
	t.Helper()
	c := &context{
		st:   &state{ov: storage.NewOverlay(testutil.NewMemDB())},
		seed: seed,
		tx:   &core.Transaction{ID: "tx-settle", From: "player"},
	}
	acc := &core.Account{Address: "player", Chips: settleStart, Shield: shield, Double: double}
	sess := &core.GameSession{ID: 1, Game: core.GameDice, Owner: "player", Bet: settleBet, Moves: 2}
	pool := &HousePool{Chips: settleHouse, NextSession: 2}
	if err := c.settle(acc, sess, pool, res); err != nil {
		t.Fatalf("settle(%T): %v", res, err)
	}
	sp, err := c.st.StakingPool()
	if err != nil {
		t.Fatal(err)
	}
	return acc, pool, sp, sess, c.events
}

// TestSettleVariants drives settlement across the whole result vocabulary
// and pins the balance delta, modifier interaction and loss-cut accrual of
// each variant.
func TestSettleVariants(t *testing.T) {
	seed := core.Seed{ViewNumber: 321}

	// Mirror the sentinel draw the Win branch makes for session 1.
	winTotal := uint64(4000)
	if random.NewStream(seed, 1, random.RewardRound).Bounded(100) < rewardMultChance {
		winTotal *= 2
	}

	t.Run("continue", func(t *testing.T) {
		acc, pool, sp, sess, _ := settleOne(t, seed, core.Continue{}, true, true)
		if acc.Chips != settleStart || pool.Chips != settleHouse || sp.RewardPool != 0 {
			t.Fatalf("balances moved: acc=%d pool=%d rewards=%d", acc.Chips, pool.Chips, sp.RewardPool)
		}
		if !acc.Shield || !acc.Double {
			t.Fatal("modifiers consumed without a resolution")
		}
		if sess.Completed {
			t.Fatal("continue completed the session")
		}
	})

	t.Run("interim payout", func(t *testing.T) {
		acc, pool, _, sess, _ := settleOne(t, seed, core.ContinueWithUpdate{Payout: 600}, false, false)
		if acc.Chips != settleStart+600 || pool.Chips != settleHouse-600 {
			t.Fatalf("acc=%d pool=%d, want +600/-600", acc.Chips, pool.Chips)
		}
		if sess.Completed {
			t.Fatal("interim payout completed the session")
		}
	})

	t.Run("interim payout doubled", func(t *testing.T) {
		acc, pool, _, _, _ := settleOne(t, seed, core.ContinueWithUpdate{Payout: 600}, false, true)
		if acc.Chips != settleStart+1200 || pool.Chips != settleHouse-1200 {
			t.Fatalf("acc=%d pool=%d, want +1200/-1200", acc.Chips, pool.Chips)
		}
		if acc.Double {
			t.Fatal("double survived an interim payout")
		}
	})

	t.Run("win", func(t *testing.T) {
		acc, pool, sp, sess, events := settleOne(t, seed, core.Win{Return: 4000}, false, false)
		if acc.Chips != settleStart+winTotal || pool.Chips != settleHouse-winTotal {
			t.Fatalf("acc=%d pool=%d, want +%d", acc.Chips, pool.Chips, winTotal)
		}
		if sp.RewardPool != 0 {
			t.Fatal("a win fed the reward pool")
		}
		if !sess.Completed {
			t.Fatal("win left the session open")
		}
		if last := events[len(events)-1]; last.Type != core.EventGameResolved {
			t.Fatalf("last event = %s, want game_resolved", last.Type)
		}
	})

	t.Run("win doubled", func(t *testing.T) {
		acc, pool, _, _, _ := settleOne(t, seed, core.Win{Return: 4000}, false, true)
		if acc.Chips != settleStart+2*winTotal || pool.Chips != settleHouse-2*winTotal {
			t.Fatalf("acc=%d pool=%d, want +%d", acc.Chips, pool.Chips, 2*winTotal)
		}
		if acc.Double {
			t.Fatal("double survived a win")
		}
	})

	t.Run("loss", func(t *testing.T) {
		acc, pool, sp, sess, _ := settleOne(t, seed, core.Loss{}, false, false)
		// Stake was taken at bet placement: no account change, 1% of the
		// realized loss routed to stakers.
		cut := settleBet * lossRewardCutBP / 10000
		if acc.Chips != settleStart {
			t.Fatalf("acc=%d, want untouched", acc.Chips)
		}
		if pool.Chips != settleHouse-cut || sp.RewardPool != cut {
			t.Fatalf("pool=%d rewards=%d, want cut %d", pool.Chips, sp.RewardPool, cut)
		}
		if !sess.Completed {
			t.Fatal("loss left the session open")
		}
	})

	t.Run("loss shielded", func(t *testing.T) {
		acc, pool, sp, _, _ := settleOne(t, seed, core.Loss{}, true, false)
		if acc.Chips != settleStart+settleBet || pool.Chips != settleHouse-settleBet {
			t.Fatalf("acc=%d pool=%d, want stake refunded", acc.Chips, pool.Chips)
		}
		if sp.RewardPool != 0 {
			t.Fatal("a shielded loss is not realized; no cut")
		}
		if acc.Shield {
			t.Fatal("shield survived a loss")
		}
	})

	t.Run("loss with extra deduction", func(t *testing.T) {
		acc, pool, sp, _, _ := settleOne(t, seed, core.LossWithExtraDeduction{Extra: 200}, false, false)
		cut := (settleBet + 200) * lossRewardCutBP / 10000
		if acc.Chips != settleStart-200 {
			t.Fatalf("acc=%d, want extra 200 deducted", acc.Chips)
		}
		if pool.Chips != settleHouse+200-cut || sp.RewardPool != cut {
			t.Fatalf("pool=%d rewards=%d, want +200 and cut %d", pool.Chips, sp.RewardPool, cut)
		}
	})

	t.Run("loss with extra deduction shielded", func(t *testing.T) {
		acc, pool, sp, _, _ := settleOne(t, seed, core.LossWithExtraDeduction{Extra: 200}, true, false)
		// Shield zeroes the whole stake+extra loss: the extra is never
		// taken and the stake comes back.
		if acc.Chips != settleStart+settleBet || pool.Chips != settleHouse-settleBet {
			t.Fatalf("acc=%d pool=%d, want stake refunded and extra waived", acc.Chips, pool.Chips)
		}
		if sp.RewardPool != 0 {
			t.Fatal("shielded loss fed the reward pool")
		}
	})

	t.Run("loss pre-deducted", func(t *testing.T) {
		acc, pool, sp, _, _ := settleOne(t, seed, core.LossPreDeducted{Amount: 800}, false, false)
		cut := uint64(800) * lossRewardCutBP / 10000
		if acc.Chips != settleStart {
			t.Fatalf("acc=%d, want untouched (already deducted)", acc.Chips)
		}
		if pool.Chips != settleHouse-cut || sp.RewardPool != cut {
			t.Fatalf("pool=%d rewards=%d, want cut %d", pool.Chips, sp.RewardPool, cut)
		}
	})

	t.Run("loss pre-deducted shielded", func(t *testing.T) {
		acc, _, sp, _, _ := settleOne(t, seed, core.LossPreDeducted{Amount: 800}, true, false)
		if acc.Chips != settleStart+800 {
			t.Fatalf("acc=%d, want the pre-deducted 800 back", acc.Chips)
		}
		if sp.RewardPool != 0 {
			t.Fatal("shielded loss fed the reward pool")
		}
	})

	t.Run("push", func(t *testing.T) {
		acc, pool, sp, sess, _ := settleOne(t, seed, core.Push{Refund: settleBet}, true, true)
		if acc.Chips != settleStart+settleBet || pool.Chips != settleHouse-settleBet {
			t.Fatalf("acc=%d pool=%d, want refund", acc.Chips, pool.Chips)
		}
		// Zero payout: neither modifier fires, both are still consumed.
		if acc.Shield || acc.Double {
			t.Fatal("modifiers survived a push")
		}
		if sp.RewardPool != 0 {
			t.Fatal("push fed the reward pool")
		}
		if !sess.Completed {
			t.Fatal("push left the session open")
		}
	})
}
