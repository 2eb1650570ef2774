package engine

import (
	"math/bits"

	"github.com/wagerchain/wagerchain/core"
)

// maxPoolValue bounds every AMM operand so the constant-product arithmetic
// (value·1000 and value·997 intermediates) stays inside uint64.
const maxPoolValue = uint64(1) << 50

func (c *context) addLiquidity(in core.AddLiquidity) error {
	if in.Chips == 0 || in.Tokens == 0 {
		return core.NewGameError(core.ErrInvalidPayload, "both chip and token amounts must be > 0")
	}
	if in.Chips > maxPoolValue || in.Tokens > maxPoolValue {
		return core.NewGameError(core.ErrInvalidPayload, "deposit exceeds pool limit")
	}
	acc, err := c.st.Account(c.tx.From)
	if err != nil {
		return err
	}
	if acc.Chips < in.Chips {
		return core.NewGameError(core.ErrInvalidState, "insufficient chips: have %d need %d", acc.Chips, in.Chips)
	}
	if acc.Tokens < in.Tokens {
		return core.NewGameError(core.ErrInvalidState, "insufficient tokens: have %d need %d", acc.Tokens, in.Tokens)
	}
	pool, err := c.st.LiquidityPool()
	if err != nil {
		return err
	}
	if satAdd(pool.Chips, in.Chips) > maxPoolValue || satAdd(pool.Tokens, in.Tokens) > maxPoolValue {
		return core.NewGameError(core.ErrInvalidState, "pool reserve limit reached")
	}

	var minted uint64
	if pool.Shares == 0 {
		minted = in.Chips
	} else {
		byChips := proRata(pool.Shares, in.Chips, pool.Chips)
		byTokens := proRata(pool.Shares, in.Tokens, pool.Tokens)
		minted = byChips
		if byTokens < minted {
			minted = byTokens
		}
	}
	if minted == 0 {
		return core.NewGameError(core.ErrInvalidMove, "deposit too small for a share")
	}

	acc.Chips -= in.Chips
	acc.Tokens -= in.Tokens
	pool.Chips += in.Chips
	pool.Tokens += in.Tokens
	pool.Shares = satAdd(pool.Shares, minted)

	shares, err := c.st.Shares(c.tx.From)
	if err != nil {
		return err
	}
	if err := c.st.PutShares(c.tx.From, satAdd(shares, minted)); err != nil {
		return err
	}

	c.emit(core.EventLiquidityAdded, map[string]any{
		"chips":  in.Chips,
		"tokens": in.Tokens,
		"shares": minted,
	})
	if err := c.st.PutAccount(acc); err != nil {
		return err
	}
	return c.st.PutLiquidityPool(pool)
}

func (c *context) removeLiquidity(in core.RemoveLiquidity) error {
	if in.Shares == 0 {
		return core.NewGameError(core.ErrInvalidPayload, "share amount must be > 0")
	}
	shares, err := c.st.Shares(c.tx.From)
	if err != nil {
		return err
	}
	if shares < in.Shares {
		return core.NewGameError(core.ErrInvalidState, "insufficient shares: have %d need %d", shares, in.Shares)
	}
	pool, err := c.st.LiquidityPool()
	if err != nil {
		return err
	}
	chipsOut := proRata(pool.Chips, in.Shares, pool.Shares)
	tokensOut := proRata(pool.Tokens, in.Shares, pool.Shares)
	if chipsOut == 0 && tokensOut == 0 {
		return core.NewGameError(core.ErrInvalidMove, "shares too small for a withdrawal")
	}

	acc, err := c.st.Account(c.tx.From)
	if err != nil {
		return err
	}
	pool.Chips -= chipsOut
	pool.Tokens -= tokensOut
	pool.Shares -= in.Shares
	acc.Chips = satAdd(acc.Chips, chipsOut)
	acc.Tokens = satAdd(acc.Tokens, tokensOut)
	if err := c.st.PutShares(c.tx.From, shares-in.Shares); err != nil {
		return err
	}

	c.emit(core.EventLiquidityRemoved, map[string]any{
		"chips":  chipsOut,
		"tokens": tokensOut,
		"shares": in.Shares,
	})
	if err := c.st.PutAccount(acc); err != nil {
		return err
	}
	return c.st.PutLiquidityPool(pool)
}

func (c *context) swap(in core.Swap) error {
	if in.AmountIn == 0 {
		return core.NewGameError(core.ErrInvalidPayload, "swap amount must be > 0")
	}
	if in.AmountIn > maxPoolValue {
		return core.NewGameError(core.ErrInvalidPayload, "swap exceeds pool limit")
	}
	pool, err := c.st.LiquidityPool()
	if err != nil {
		return err
	}
	if pool.Chips == 0 || pool.Tokens == 0 {
		return core.NewGameError(core.ErrInvalidState, "pool has no liquidity")
	}

	reserveIn, reserveOut := pool.Chips, pool.Tokens
	if !in.ChipsIn {
		reserveIn, reserveOut = pool.Tokens, pool.Chips
	}
	if satAdd(reserveIn, in.AmountIn) > maxPoolValue {
		return core.NewGameError(core.ErrInvalidState, "pool reserve limit reached")
	}

	// Constant product with a 0.3% fee on the way in. Operands are bounded
	// by maxPoolValue; the in·out product still needs a 128-bit
	// intermediate.
	inWithFee := in.AmountIn * 997
	denom := reserveIn*1000 + inWithFee
	hi, lo := bits.Mul64(inWithFee, reserveOut)
	out, _ := bits.Div64(hi, lo, denom)
	if out == 0 {
		return core.NewGameError(core.ErrInvalidMove, "swap too small")
	}
	if out < in.MinOut {
		return core.NewGameError(core.ErrInvalidMove, "slippage: out %d below min %d", out, in.MinOut)
	}

	acc, err := c.st.Account(c.tx.From)
	if err != nil {
		return err
	}
	if in.ChipsIn {
		if acc.Chips < in.AmountIn {
			return core.NewGameError(core.ErrInvalidState, "insufficient chips: have %d need %d", acc.Chips, in.AmountIn)
		}
		acc.Chips -= in.AmountIn
		acc.Tokens = satAdd(acc.Tokens, out)
		pool.Chips += in.AmountIn
		pool.Tokens -= out
	} else {
		if acc.Tokens < in.AmountIn {
			return core.NewGameError(core.ErrInvalidState, "insufficient tokens: have %d need %d", acc.Tokens, in.AmountIn)
		}
		acc.Tokens -= in.AmountIn
		acc.Chips = satAdd(acc.Chips, out)
		pool.Tokens += in.AmountIn
		pool.Chips -= out
	}

	c.emit(core.EventSwapped, map[string]any{
		"amount_in":  in.AmountIn,
		"amount_out": out,
		"chips_in":   in.ChipsIn,
	})
	if err := c.st.PutAccount(acc); err != nil {
		return err
	}
	return c.st.PutLiquidityPool(pool)
}
