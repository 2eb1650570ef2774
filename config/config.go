// Package config holds node and genesis configuration.
package config

import (
	"encoding/json"
	"os"
)

// GenesisConfig describes the initial state seeded into a fresh store.
type GenesisConfig struct {
	ChainID    string            `json:"chain_id"`
	Alloc      map[string]uint64 `json:"alloc"`       // pubkey hex → initial chips
	HouseFloat uint64            `json:"house_float"` // house pool's starting chips
}

// Config holds all executor configuration.
type Config struct {
	NodeID  string        `json:"node_id"`
	DataDir string        `json:"data_dir"`
	Genesis GenesisConfig `json:"genesis"`
}

// DefaultConfig returns a single-node development configuration.
func DefaultConfig() *Config {
	return &Config{
		NodeID:  "node0",
		DataDir: "./data",
		Genesis: GenesisConfig{
			ChainID:    "wagerchain-dev",
			Alloc:      map[string]uint64{},
			HouseFloat: 10_000_000,
		},
	}
}

// Load reads a JSON config file from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path as formatted JSON.
func Save(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
