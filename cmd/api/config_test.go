package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subwaymap.org/internal/appconf"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("NEO4J_PASSWORD", "secret")

	cfg, err := parseConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, appconf.Development, cfg.Env)
	assert.Equal(t, appconf.StoreSQLite, cfg.Store)
	assert.Equal(t, "subway.db", cfg.Data.DBPath)
	assert.Equal(t, "secret", cfg.Neo4j.Password)
}

func TestParseConfigFlags(t *testing.T) {
	cfg, err := parseConfig([]string{
		"-port", "8080",
		"-env", "test",
		"-data-path", ":memory:",
		"-network-file", "network.yaml",
		"-rate-limit", "0",
	})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, appconf.Test, cfg.Env)
	assert.Equal(t, ":memory:", cfg.Data.DBPath)
	assert.Equal(t, "network.yaml", cfg.Data.NetworkFile)
	assert.Zero(t, cfg.RateLimit)
}

func TestParseConfigFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9000
env: production
logLevel: debug
data:
  dbPath: /var/lib/subway/subway.db
`), 0o600))

	cfg, err := parseConfig([]string{"-config", path, "-log-level", "warn"})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, appconf.Production, cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/var/lib/subway/subway.db", cfg.Data.DBPath)
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown store", []string{"-store", "redis"}},
		{"neo4j without uri", []string{"-store", "neo4j"}},
		{"bad port", []string{"-port", "0"}},
		{"unknown flag", []string{"-api-keys", "test"}},
		{"missing config file", []string{"-config", "does-not-exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.args)
			assert.Error(t, err)
		})
	}
}
