package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseAppConfig(t *testing.T) {
	path := writeConfig(t, `
difficulty: 3
mining_reward: 12.5
max_iterations: 1000
log:
  level: debug
  format: json
`)
	c, err := ParseAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Difficulty)
	assert.Equal(t, 12.5, c.MiningReward)
	assert.Equal(t, uint64(1000), c.MaxIterations)
	assert.True(t, c.VerifyLinkage, "unset keys keep their defaults")
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
}

func TestParseAppConfigInvalid(t *testing.T) {
	_, err := ParseAppConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseAppConfig(writeConfig(t, "difficulty: [1"))
	assert.Error(t, err)

	_, err = ParseAppConfig(writeConfig(t, "difficulty: 65"))
	assert.Error(t, err)

	_, err = ParseAppConfig(writeConfig(t, "mining_reward: 0"))
	assert.Error(t, err)
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	assert.NoError(t, c.Validate())
	assert.Equal(t, 2, c.Difficulty)
	assert.Equal(t, 50.0, c.MiningReward)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = NewLogger(&LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(&LogConfig{Level: "loud"})
	assert.Error(t, err)
}
