package core

import (
	"encoding/json"
	"fmt"
)

// OpCode identifies the kind of operation an instruction performs.
type OpCode string

const (
	OpStartGame       OpCode = "start_game"
	OpGameMove        OpCode = "game_move"
	OpArmModifier     OpCode = "arm_modifier"
	OpStake           OpCode = "stake"
	OpUnstake         OpCode = "unstake"
	OpClaimRewards    OpCode = "claim_rewards"
	OpAddLiquidity    OpCode = "add_liquidity"
	OpRemoveLiquidity OpCode = "remove_liquidity"
	OpSwap            OpCode = "swap"
	OpBridgeDeposit   OpCode = "bridge_deposit"
	OpBridgeWithdraw  OpCode = "bridge_withdraw"
)

// Instruction is the decoded, typed body of a transaction. The set is
// sealed: only the variants below implement it, so the engine's dispatch
// switch enumerates every possible instruction and adding a variant without
// routing it is caught at compile time.
type Instruction interface {
	isInstruction()
	Op() OpCode
}

// ModifierKind selects which one-shot modifier an ArmModifier buys.
type ModifierKind string

const (
	ModifierShield ModifierKind = "shield"
	ModifierDouble ModifierKind = "double"
)

// ---- casino ----

// StartGame opens a new session of the given game, debiting Bet as stake.
// Bet may be zero for games whose first move places the bet.
type StartGame struct {
	Game GameType `json:"game"`
	Bet  uint64   `json:"bet"`
}

// GameMove advances an open session owned by the sender. Payload is raw
// untrusted bytes interpreted by the game module.
type GameMove struct {
	SessionID uint64          `json:"session_id"`
	Payload   json.RawMessage `json:"payload"`
}

// ArmModifier buys a one-shot modifier at the house price.
type ArmModifier struct {
	Kind ModifierKind `json:"kind"`
}

// ---- staking ----

// Stake moves chips from the sender's balance into the staking pool.
type Stake struct {
	Amount uint64 `json:"amount"`
}

// Unstake moves staked chips back to the sender's balance.
type Unstake struct {
	Amount uint64 `json:"amount"`
}

// ClaimRewards pays out the sender's pro-rata share of the reward pool.
type ClaimRewards struct{}

// ---- liquidity ----

// AddLiquidity deposits chips and tokens into the AMM pool for shares.
type AddLiquidity struct {
	Chips  uint64 `json:"chips"`
	Tokens uint64 `json:"tokens"`
}

// RemoveLiquidity burns shares for the proportional reserves.
type RemoveLiquidity struct {
	Shares uint64 `json:"shares"`
}

// Swap trades against the constant-product pool. ChipsIn selects the
// direction; MinOut rejects the trade if slippage eats past it.
type Swap struct {
	AmountIn uint64 `json:"amount_in"`
	ChipsIn  bool   `json:"chips_in"`
	MinOut   uint64 `json:"min_out"`
}

// ---- bridge ----

// BridgeDeposit mints tokens to a local account against collateral locked
// on the external chain. Authorization happens upstream at the relayer.
type BridgeDeposit struct {
	To           string `json:"to"` // pubkey hex
	Amount       uint64 `json:"amount"`
	ExternalTxID string `json:"external_tx_id"`
}

// BridgeWithdraw burns the sender's tokens and releases external collateral.
type BridgeWithdraw struct {
	Amount       uint64 `json:"amount"`
	ExternalAddr string `json:"external_addr"`
}

func (StartGame) isInstruction()       {}
func (GameMove) isInstruction()        {}
func (ArmModifier) isInstruction()     {}
func (Stake) isInstruction()           {}
func (Unstake) isInstruction()         {}
func (ClaimRewards) isInstruction()    {}
func (AddLiquidity) isInstruction()    {}
func (RemoveLiquidity) isInstruction() {}
func (Swap) isInstruction()            {}
func (BridgeDeposit) isInstruction()   {}
func (BridgeWithdraw) isInstruction()  {}

func (StartGame) Op() OpCode       { return OpStartGame }
func (GameMove) Op() OpCode        { return OpGameMove }
func (ArmModifier) Op() OpCode     { return OpArmModifier }
func (Stake) Op() OpCode           { return OpStake }
func (Unstake) Op() OpCode         { return OpUnstake }
func (ClaimRewards) Op() OpCode    { return OpClaimRewards }
func (AddLiquidity) Op() OpCode    { return OpAddLiquidity }
func (RemoveLiquidity) Op() OpCode { return OpRemoveLiquidity }
func (Swap) Op() OpCode            { return OpSwap }
func (BridgeDeposit) Op() OpCode   { return OpBridgeDeposit }
func (BridgeWithdraw) Op() OpCode  { return OpBridgeWithdraw }

// DecodeInstruction rebuilds a typed instruction from its opcode and JSON
// body. Used when transactions arrive over the wire; the engine itself only
// ever sees the typed form.
func DecodeInstruction(op OpCode, body json.RawMessage) (Instruction, error) {
	var instr Instruction
	switch op {
	case OpStartGame:
		instr = &StartGame{}
	case OpGameMove:
		instr = &GameMove{}
	case OpArmModifier:
		instr = &ArmModifier{}
	case OpStake:
		instr = &Stake{}
	case OpUnstake:
		instr = &Unstake{}
	case OpClaimRewards:
		instr = &ClaimRewards{}
	case OpAddLiquidity:
		instr = &AddLiquidity{}
	case OpRemoveLiquidity:
		instr = &RemoveLiquidity{}
	case OpSwap:
		instr = &Swap{}
	case OpBridgeDeposit:
		instr = &BridgeDeposit{}
	case OpBridgeWithdraw:
		instr = &BridgeWithdraw{}
	default:
		return nil, fmt.Errorf("unknown opcode %q", op)
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, instr); err != nil {
			return nil, fmt.Errorf("decode %s body: %w", op, err)
		}
	}
	return deref(instr), nil
}

// deref converts the pointer used for unmarshalling back to the value form
// the dispatch switch matches on.
func deref(instr Instruction) Instruction {
	switch v := instr.(type) {
	case *StartGame:
		return *v
	case *GameMove:
		return *v
	case *ArmModifier:
		return *v
	case *Stake:
		return *v
	case *Unstake:
		return *v
	case *ClaimRewards:
		return *v
	case *AddLiquidity:
		return *v
	case *RemoveLiquidity:
		return *v
	case *Swap:
		return *v
	case *BridgeDeposit:
		return *v
	case *BridgeWithdraw:
		return *v
	}
	return instr
}
