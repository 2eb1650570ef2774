package engine

import (
	"fmt"

	"github.com/wagerchain/wagerchain/core"
)

// context carries one transaction's execution scope: the typed state view,
// the batch seed, the triggering transaction, and the events it produced.
type context struct {
	st     *state
	seed   core.Seed
	tx     *core.Transaction
	events []core.Event
}

func (c *context) emit(typ core.EventType, data map[string]any) {
	c.events = append(c.events, core.Event{Type: typ, TxID: c.tx.ID, Data: data})
}

// apply routes the instruction to its domain handler. The switch enumerates
// the full sealed instruction set; the trailing return exists only because
// Go cannot prove the switch exhaustive. Adding an instruction means adding
// a case here, in core.DecodeInstruction, and a wallet constructor.
func (c *context) apply(instr core.Instruction) error {
	switch in := instr.(type) {
	case core.StartGame:
		return c.startGame(in)
	case core.GameMove:
		return c.gameMove(in)
	case core.ArmModifier:
		return c.armModifier(in)
	case core.Stake:
		return c.stake(in)
	case core.Unstake:
		return c.unstake(in)
	case core.ClaimRewards:
		return c.claimRewards(in)
	case core.AddLiquidity:
		return c.addLiquidity(in)
	case core.RemoveLiquidity:
		return c.removeLiquidity(in)
	case core.Swap:
		return c.swap(in)
	case core.BridgeDeposit:
		return c.bridgeDeposit(in)
	case core.BridgeWithdraw:
		return c.bridgeWithdraw(in)
	}
	return fmt.Errorf("engine: unrouted instruction %T", instr)
}
