package engine

import (
	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/crypto"
)

func (c *context) bridgeDeposit(in core.BridgeDeposit) error {
	if in.Amount == 0 {
		return core.NewGameError(core.ErrInvalidPayload, "deposit amount must be > 0")
	}
	if in.ExternalTxID == "" {
		return core.NewGameError(core.ErrInvalidPayload, "external tx id required")
	}
	if _, err := crypto.PubKeyFromHex(in.To); err != nil {
		return core.NewGameError(core.ErrInvalidPayload, "bad recipient: %v", err)
	}
	seen, err := c.st.ExternalTxSeen(in.ExternalTxID)
	if err != nil {
		return err
	}
	if seen {
		return core.NewGameError(core.ErrInvalidState, "external tx %q already processed", in.ExternalTxID)
	}

	target, err := c.st.Account(in.To)
	if err != nil {
		return err
	}
	pool, err := c.st.BridgePool()
	if err != nil {
		return err
	}
	target.Tokens = satAdd(target.Tokens, in.Amount)
	pool.Locked = satAdd(pool.Locked, in.Amount)
	c.st.MarkExternalTx(in.ExternalTxID)

	c.emit(core.EventBridgeDeposited, map[string]any{
		"to":             in.To,
		"amount":         in.Amount,
		"external_tx_id": in.ExternalTxID,
	})
	if err := c.st.PutAccount(target); err != nil {
		return err
	}
	return c.st.PutBridgePool(pool)
}

func (c *context) bridgeWithdraw(in core.BridgeWithdraw) error {
	if in.Amount == 0 {
		return core.NewGameError(core.ErrInvalidPayload, "withdraw amount must be > 0")
	}
	if in.ExternalAddr == "" {
		return core.NewGameError(core.ErrInvalidPayload, "external address required")
	}
	acc, err := c.st.Account(c.tx.From)
	if err != nil {
		return err
	}
	if acc.Tokens < in.Amount {
		return core.NewGameError(core.ErrInvalidState, "insufficient tokens: have %d need %d", acc.Tokens, in.Amount)
	}
	pool, err := c.st.BridgePool()
	if err != nil {
		return err
	}
	acc.Tokens -= in.Amount
	pool.Locked = satSub(pool.Locked, in.Amount)

	c.emit(core.EventBridgeWithdrawn, map[string]any{
		"amount":        in.Amount,
		"external_addr": in.ExternalAddr,
	})
	if err := c.st.PutAccount(acc); err != nil {
		return err
	}
	return c.st.PutBridgePool(pool)
}
