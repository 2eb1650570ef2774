package engine

import (
	"math"
	"math/bits"

	"github.com/wagerchain/wagerchain/core"
)

func (c *context) stake(in core.Stake) error {
	if in.Amount == 0 {
		return core.NewGameError(core.ErrInvalidPayload, "stake amount must be > 0")
	}
	acc, err := c.st.Account(c.tx.From)
	if err != nil {
		return err
	}
	if acc.Chips < in.Amount {
		return core.NewGameError(core.ErrInvalidState, "insufficient chips: have %d need %d", acc.Chips, in.Amount)
	}
	pool, err := c.st.StakingPool()
	if err != nil {
		return err
	}
	acc.Chips -= in.Amount
	acc.Staked = satAdd(acc.Staked, in.Amount)
	pool.Total = satAdd(pool.Total, in.Amount)

	c.emit(core.EventStaked, map[string]any{
		"amount": in.Amount,
		"staked": acc.Staked,
	})
	if err := c.st.PutAccount(acc); err != nil {
		return err
	}
	return c.st.PutStakingPool(pool)
}

func (c *context) unstake(in core.Unstake) error {
	if in.Amount == 0 {
		return core.NewGameError(core.ErrInvalidPayload, "unstake amount must be > 0")
	}
	acc, err := c.st.Account(c.tx.From)
	if err != nil {
		return err
	}
	if acc.Staked < in.Amount {
		return core.NewGameError(core.ErrInvalidState, "insufficient stake: have %d need %d", acc.Staked, in.Amount)
	}
	pool, err := c.st.StakingPool()
	if err != nil {
		return err
	}
	acc.Staked -= in.Amount
	acc.Chips = satAdd(acc.Chips, in.Amount)
	pool.Total = satSub(pool.Total, in.Amount)

	c.emit(core.EventUnstaked, map[string]any{
		"amount": in.Amount,
		"staked": acc.Staked,
	})
	if err := c.st.PutAccount(acc); err != nil {
		return err
	}
	return c.st.PutStakingPool(pool)
}

func (c *context) claimRewards(core.ClaimRewards) error {
	acc, err := c.st.Account(c.tx.From)
	if err != nil {
		return err
	}
	if acc.Staked == 0 {
		return core.NewGameError(core.ErrInvalidState, "nothing staked")
	}
	pool, err := c.st.StakingPool()
	if err != nil {
		return err
	}
	share := proRata(pool.RewardPool, acc.Staked, pool.Total)
	if share > pool.RewardPool {
		share = pool.RewardPool
	}
	if share == 0 {
		return core.NewGameError(core.ErrInvalidState, "nothing to claim")
	}
	pool.RewardPool -= share
	acc.Chips = satAdd(acc.Chips, share)

	c.emit(core.EventRewardsClaimed, map[string]any{
		"amount": share,
	})
	if err := c.st.PutAccount(acc); err != nil {
		return err
	}
	return c.st.PutStakingPool(pool)
}

// proRata computes amount·part/total with a 128-bit intermediate so large
// pools cannot overflow. Total function: part may exceed total (a liquidity
// deposit can dwarf a drained reserve); when the quotient would not fit,
// the result saturates at the uint64 ceiling instead of faulting.
func proRata(amount, part, total uint64) uint64 {
	if total == 0 || part == 0 {
		return 0
	}
	hi, lo := bits.Mul64(amount, part)
	if hi >= total {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, total)
	return q
}
