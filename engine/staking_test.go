package engine

import (
	"math"
	"testing"

	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/internal/testutil"
	"github.com/wagerchain/wagerchain/storage"
)

func TestProRata(t *testing.T) {
	cases := []struct{ amount, part, total, want uint64 }{
		{100, 25, 50, 50},
		{10, 100, 50, 20}, // part above total is fine while the quotient fits
		{0, 5, 10, 0},
		{10, 0, 10, 0},
		{10, 5, 0, 0},
		{1 << 50, 1 << 49, 1025, math.MaxUint64}, // overflowing quotient saturates
		{math.MaxUint64, math.MaxUint64, 1, math.MaxUint64},
	}
	for _, tc := range cases {
		if got := proRata(tc.amount, tc.part, tc.total); got != tc.want {
			t.Errorf("proRata(%d, %d, %d) = %d, want %d", tc.amount, tc.part, tc.total, got, tc.want)
		}
	}
}

// TestClaimClampedToRewardPool seeds a staking pool whose Total fell below
// one account's Staked (saturated stakes can do this) and checks the claim
// pays out at most what the pool holds instead of wrapping.
func TestClaimClampedToRewardPool(t *testing.T) {
	st := &state{ov: storage.NewOverlay(testutil.NewMemDB())}
	c := &context{st: st, tx: &core.Transaction{ID: "tx-claim", From: "whale"}}

	if err := st.PutAccount(&core.Account{Address: "whale", Staked: 100}); err != nil {
		t.Fatal(err)
	}
	if err := st.PutStakingPool(&StakingPool{Total: 50, RewardPool: 10}); err != nil {
		t.Fatal(err)
	}

	if err := c.claimRewards(core.ClaimRewards{}); err != nil {
		t.Fatalf("claim: %v", err)
	}
	acc, err := st.Account("whale")
	if err != nil {
		t.Fatal(err)
	}
	if acc.Chips != 10 {
		t.Fatalf("claimed %d chips, want the whole 10-chip pool", acc.Chips)
	}
	sp, err := st.StakingPool()
	if err != nil {
		t.Fatal(err)
	}
	if sp.RewardPool != 0 {
		t.Fatalf("reward pool = %d after a clamped claim", sp.RewardPool)
	}
}
