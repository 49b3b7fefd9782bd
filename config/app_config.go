package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// This is the global app config for the ledger.
type AppConfig struct {
	// How many leading '0' hex characters form a valid block hash.
	Difficulty int `yaml:"difficulty"`
	// Value issued to whoever seals the next block.
	MiningReward float64 `yaml:"mining_reward"`
	// Upper bound on nonces tried per block. 0 means no bound.
	MaxIterations uint64 `yaml:"max_iterations"`
	// Whether chain validation also checks that each block points at the
	// hash of the block before it.
	VerifyLinkage bool `yaml:"verify_linkage"`
	// Logger settings.
	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() AppConfig {
	return AppConfig{
		Difficulty:    2,
		MiningReward:  50,
		VerifyLinkage: true,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c AppConfig) Validate() error {
	if c.Difficulty < 0 || c.Difficulty > 64 {
		return fmt.Errorf("difficulty must be within [0, 64], got %d", c.Difficulty)
	}
	if !(c.MiningReward > 0) {
		return errors.New("mining reward must be positive")
	}
	return nil
}

// ParseAppConfig reads a yaml config on top of the defaults.
func ParseAppConfig(path string) (AppConfig, error) {
	c := DefaultConfig()
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(yamlFile, &c); err != nil {
		return c, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}
