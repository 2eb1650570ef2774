package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/wagerchain/wagerchain/config"
	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/storage"
)

// ApplyGenesis seeds a fresh store with the configured allocations and the
// house pool float. Idempotent: a store that already holds the house pool is
// left untouched.
func ApplyGenesis(db storage.DB, g config.GenesisConfig) error {
	if _, err := db.Get([]byte(keyHousePool)); err == nil {
		return nil
	} else if !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("probe genesis: %w", err)
	}

	batch := db.NewBatch()

	addrs := make([]string, 0, len(g.Alloc))
	for addr := range g.Alloc {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	for _, addr := range addrs {
		data, err := json.Marshal(&core.Account{Address: addr, Chips: g.Alloc[addr]})
		if err != nil {
			return err
		}
		batch.Set([]byte(prefixAccount+addr), data)
	}

	pool, err := json.Marshal(&HousePool{Chips: g.HouseFloat, NextSession: 1})
	if err != nil {
		return err
	}
	batch.Set([]byte(keyHousePool), pool)
	return batch.Write()
}
