package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subwaymap.org/internal/appconf"
	"subwaymap.org/internal/logging"
)

func TestOpenStoreSQLite(t *testing.T) {
	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.Data.DBPath = ":memory:"
	cfg.Data.NetworkFile = filepath.Join("..", "..", "testdata", "network.yaml")
	logger := logging.NewStructuredLogger(io.Discard, slog.LevelInfo)

	store, closeStore, err := openStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer closeStore()

	require.NoError(t, store.Ping(context.Background()))
	stations, err := store.ListStations(context.Background())
	require.NoError(t, err)
	assert.Len(t, stations, 7)
}

func TestOpenStoreCloseReleasesDatabase(t *testing.T) {
	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.Data.DBPath = ":memory:"

	var logs bytes.Buffer
	logger := logging.NewStructuredLogger(&logs, slog.LevelInfo)

	store, closeStore, err := openStore(context.Background(), cfg, logger)
	require.NoError(t, err)

	closeStore()
	assert.Error(t, store.Ping(context.Background()), "database is closed")

	// closing twice is a no-op
	closeStore()
	assert.NotContains(t, logs.String(), "failed to close resource")
}

func TestOpenStoreRejectsFileDatabaseInTest(t *testing.T) {
	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.Data.DBPath = filepath.Join(t.TempDir(), "subway.db")

	_, _, err := openStore(context.Background(), cfg, slog.Default())
	assert.Error(t, err)
}

func TestOpenStoreMissingNetworkFile(t *testing.T) {
	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.Data.DBPath = ":memory:"
	cfg.Data.NetworkFile = "missing.yaml"

	_, _, err := openStore(context.Background(), cfg, slog.Default())
	assert.Error(t, err)
}
