package engine

import (
	"math"

	"github.com/wagerchain/wagerchain/core"
)

// ApplyModifiers resolves the player's one-shot modifiers against the
// signed payout of one game resolution and returns the adjusted payout.
//
// A negative payout with the loss shield armed becomes 0; a positive payout
// with the double-up armed doubles (saturating). Both flags are cleared
// unconditionally after one resolution whether or not they fired. Total
// function: never errors, never panics.
func ApplyModifiers(acc *core.Account, payout int64) int64 {
	shield, double := acc.Shield, acc.Double
	acc.Shield, acc.Double = false, false
	switch {
	case payout < 0 && shield:
		return 0
	case payout > 0 && double:
		if payout > math.MaxInt64/2 {
			return math.MaxInt64
		}
		return payout * 2
	}
	return payout
}
