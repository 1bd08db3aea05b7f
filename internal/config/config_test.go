package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Load default config when no config file is present", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "8081")
		t.Setenv("GATEWAY_BASEURL", "https://loans.example.com/api")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, 8081, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
		assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
		assert.True(t, cfg.Server.RateLimit.Enabled)
		assert.Equal(t, "memory", cfg.Server.RateLimit.Backend)
		assert.False(t, cfg.Server.Auth.Enabled)

		assert.Equal(t, "http", cfg.Gateway.Backend)
		assert.Equal(t, "https://loans.example.com/api", cfg.Gateway.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Gateway.Timeout)

		assert.Empty(t, cfg.Database.URL)
		assert.Equal(t, "info", cfg.Logger.Level)
		assert.Equal(t, "json", cfg.Logger.Encoding)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)

		assert.Equal(t, "*/15 * * * *", cfg.Batch.SnapshotSchedule)
		assert.Equal(t, time.Duration(60), cfg.Batch.SnapshotTimeout)
		assert.Empty(t, cfg.Source())
	})

	t.Run("Reads values from config.yml", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte(`
server:
  port: 9000
gateway:
  backend: memory
  seedFile: ./data/customers.json
logger:
  level: debug
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644))

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "memory", cfg.Gateway.Backend)
		assert.Equal(t, "./data/customers.json", cfg.Gateway.SeedFile)
		assert.Equal(t, "debug", cfg.Logger.Level)
		assert.Equal(t, filepath.Join(dir, "config.yml"), cfg.Source())
	})

	t.Run("Return error when config file is invalid", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server: [port: :"), 0o644))

		_, err := LoadConfig(dir)
		assert.Error(t, err)
	})
}
