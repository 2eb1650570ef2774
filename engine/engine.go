// Package engine is the deterministic transaction-execution core: it turns
// a consensus-ordered batch of transactions plus the view's randomness seed
// into staged state changes and an ordered output stream. Two nodes running
// Execute over equal-content stores with the same seed and batch produce
// identical outputs, nonce updates and commit diffs.
package engine

import (
	"errors"
	"math"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/storage"
)

// NonceUpdate reports the next expected nonce for one sender after the
// batch. The caller uses it to refresh gateway nonce caches without
// re-reading storage.
type NonceUpdate struct {
	Address   string `json:"address"`
	NextNonce uint64 `json:"next_nonce"`
}

// Engine executes one batch against one overlay. Single-owner: an engine
// (and its overlay) must never be shared across concurrently processed
// batches. Execution is strictly sequential; state dependencies between
// transactions (nonces, shared pools) are not provably disjoint.
type Engine struct {
	seed core.Seed
	st   *state
}

// New creates an engine for one batch over the given base store and seed.
func New(base storage.Reader, seed core.Seed) *Engine {
	return &Engine{seed: seed, st: &state{ov: storage.NewOverlay(base)}}
}

// Execute runs the batch. Per transaction, in order:
//
//  1. Load the sender through the overlay and require an exact nonce match.
//     A stale or future nonce skips the transaction entirely: no outputs,
//     no state change, batch continues (liveness over strictness).
//  2. A base-store failure aborts the whole batch: it signals node-local
//     corruption, not a bad client.
//  3. Otherwise stage nonce+1, dispatch the instruction, and append one
//     Output per event followed by the transaction's echo. A typed handler
//     rejection rolls the instruction's writes back and becomes an error
//     event; the nonce stays consumed.
//
// Outputs preserve submission order; nonce updates are in first-touch order.
func (e *Engine) Execute(txs []*core.Transaction) ([]core.Output, []NonceUpdate, error) {
	var (
		outputs []core.Output
		nonces  []NonceUpdate
		byAddr  = make(map[string]int)
	)
	for _, tx := range txs {
		acc, err := e.st.Account(tx.From)
		if err != nil {
			return nil, nil, err
		}
		if acc.Nonce != tx.Nonce {
			continue
		}

		next := satInc(tx.Nonce)
		acc.Nonce = next
		if err := e.st.PutAccount(acc); err != nil {
			return nil, nil, err
		}
		if i, ok := byAddr[tx.From]; ok {
			nonces[i].NextNonce = next
		} else {
			byAddr[tx.From] = len(nonces)
			nonces = append(nonces, NonceUpdate{Address: tx.From, NextNonce: next})
		}

		// Everything past the nonce increment is undone on rejection.
		snap := e.st.ov.Snapshot()
		c := &context{st: e.st, seed: e.seed, tx: tx}
		if err := c.apply(tx.Instr); err != nil {
			var gerr *core.GameError
			if !errors.As(err, &gerr) {
				return nil, nil, err
			}
			if rerr := e.st.ov.Revert(snap); rerr != nil {
				return nil, nil, rerr
			}
			outputs = append(outputs, core.EventOutput(core.Event{
				Type: core.EventGameError,
				TxID: tx.ID,
				Data: map[string]any{"code": string(gerr.Code), "message": gerr.Msg},
			}))
			outputs = append(outputs, core.EchoOutput(tx))
			continue
		}
		e.st.ov.Discard(snap)

		for _, ev := range c.events {
			outputs = append(outputs, core.EventOutput(ev))
		}
		outputs = append(outputs, core.EchoOutput(tx))
	}
	return outputs, nonces, nil
}

// Commit consumes the overlay and returns the ordered diff for the storage
// collaborator. Call once, after Execute succeeded.
func (e *Engine) Commit() []storage.Write {
	return e.st.ov.Commit()
}

func satInc(n uint64) uint64 {
	if n == math.MaxUint64 {
		return n
	}
	return n + 1
}
