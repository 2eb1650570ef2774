package engine

import (
	"math"
	"testing"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/random"
)

// TestApplyModifiersFuzz checks the modifier laws over randomized inputs:
// flags always cleared, shield zeroes losses, double doubles wins
// (saturating), everything else passes through.
func TestApplyModifiersFuzz(t *testing.T) {
	s := random.NewStream(core.Seed{ViewNumber: 99}, 0, 0)
	for i := 0; i < 10_000; i++ {
		payout := int64(s.Uint32())<<32 | int64(s.Uint32()) // full-range signed
		shield := s.Byte()&1 == 1
		double := s.Byte()&1 == 1

		acc := &core.Account{Shield: shield, Double: double}
		got := ApplyModifiers(acc, payout)

		if acc.Shield || acc.Double {
			t.Fatalf("flags not cleared (payout=%d shield=%v double=%v)", payout, shield, double)
		}
		switch {
		case payout < 0 && shield:
			if got != 0 {
				t.Fatalf("shielded loss %d -> %d, want 0", payout, got)
			}
		case payout > 0 && double:
			want := payout * 2
			if payout > math.MaxInt64/2 {
				want = math.MaxInt64
			}
			if got != want {
				t.Fatalf("doubled win %d -> %d, want %d", payout, got, want)
			}
		default:
			if got != payout {
				t.Fatalf("passthrough %d -> %d", payout, got)
			}
		}
	}
}

func TestApplyModifiersZeroPayout(t *testing.T) {
	acc := &core.Account{Shield: true, Double: true}
	if got := ApplyModifiers(acc, 0); got != 0 {
		t.Fatalf("zero payout -> %d", got)
	}
	if acc.Shield || acc.Double {
		t.Fatal("flags survived a zero-payout resolution")
	}
}
