package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/storage"
)

// State-key prefixes. Every durable record the engine touches lives under
// one of these; the commit diff carries them verbatim to the storage
// collaborator.
const (
	prefixAccount = "acct:"
	prefixSession = "sess:"
	prefixShares  = "lp:"
	prefixExtTx   = "bridge:ext:"

	keyHousePool     = "pool:house"
	keyStakingPool   = "pool:staking"
	keyLiquidityPool = "pool:liquidity"
	keyBridgePool    = "pool:bridge"
)

// HousePool is the casino's aggregate record: the chip float bets flow into
// and payouts come out of, plus the session-id allocator.
type HousePool struct {
	Chips       uint64 `json:"chips"`
	NextSession uint64 `json:"next_session"`
}

// StakingPool tracks total staked chips and the loss-cut reward pool.
type StakingPool struct {
	Total      uint64 `json:"total"`
	RewardPool uint64 `json:"reward_pool"`
}

// LiquidityPool is the constant-product AMM between chips and tokens.
type LiquidityPool struct {
	Chips  uint64 `json:"chips"`
	Tokens uint64 `json:"tokens"`
	Shares uint64 `json:"shares"`
}

// BridgePool mirrors the collateral locked on the external chain.
type BridgePool struct {
	Locked uint64 `json:"locked"`
}

// state layers typed accessors over the overlay. Aggregate records use
// get-or-init: the canonical zero value materializes on first touch, so no
// separate initialization step exists.
type state struct {
	ov *storage.Overlay
}

func (s *state) getJSON(key string, v any) (bool, error) {
	data, err := s.ov.Get(key)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &core.StateError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

func (s *state) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &core.StateError{Op: "encode", Key: key, Err: err}
	}
	s.ov.Insert(key, data)
	return nil
}

// Account returns the stored account or the zero-value account for a fresh
// address.
func (s *state) Account(address string) (*core.Account, error) {
	acc := &core.Account{Address: address}
	if _, err := s.getJSON(prefixAccount+address, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *state) PutAccount(acc *core.Account) error {
	return s.putJSON(prefixAccount+acc.Address, acc)
}

func sessionKey(id uint64) string { return fmt.Sprintf("%s%d", prefixSession, id) }

// Session returns the stored session, or core.ErrNotFound.
func (s *state) Session(id uint64) (*core.GameSession, error) {
	sess := &core.GameSession{}
	ok, err := s.getJSON(sessionKey(id), sess)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrNotFound
	}
	return sess, nil
}

func (s *state) PutSession(sess *core.GameSession) error {
	return s.putJSON(sessionKey(sess.ID), sess)
}

func (s *state) HousePool() (*HousePool, error) {
	p := &HousePool{}
	if _, err := s.getJSON(keyHousePool, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *state) PutHousePool(p *HousePool) error { return s.putJSON(keyHousePool, p) }

func (s *state) StakingPool() (*StakingPool, error) {
	p := &StakingPool{}
	if _, err := s.getJSON(keyStakingPool, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *state) PutStakingPool(p *StakingPool) error { return s.putJSON(keyStakingPool, p) }

func (s *state) LiquidityPool() (*LiquidityPool, error) {
	p := &LiquidityPool{}
	if _, err := s.getJSON(keyLiquidityPool, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *state) PutLiquidityPool(p *LiquidityPool) error { return s.putJSON(keyLiquidityPool, p) }

func (s *state) BridgePool() (*BridgePool, error) {
	p := &BridgePool{}
	if _, err := s.getJSON(keyBridgePool, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *state) PutBridgePool(p *BridgePool) error { return s.putJSON(keyBridgePool, p) }

// Shares returns an account's liquidity-pool share balance.
func (s *state) Shares(address string) (uint64, error) {
	var n uint64
	if _, err := s.getJSON(prefixShares+address, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *state) PutShares(address string, n uint64) error {
	return s.putJSON(prefixShares+address, n)
}

// ExternalTxSeen reports whether a bridge deposit id was already processed.
func (s *state) ExternalTxSeen(id string) (bool, error) {
	_, err := s.ov.Get(prefixExtTx + id)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *state) MarkExternalTx(id string) {
	s.ov.Insert(prefixExtTx+id, []byte{1})
}
