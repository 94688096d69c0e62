package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"subwaymap.org/internal/app"
	"subwaymap.org/internal/appconf"
	"subwaymap.org/internal/graphstore"
	"subwaymap.org/internal/logging"
	"subwaymap.org/subwaydb"
)

const storeCloseTimeout = 5 * time.Second

// openStore opens the configured segment store and loads the startup data files into it.
// The returned function closes the store.
func openStore(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (app.Store, func(), error) {
	switch cfg.Store {
	case appconf.StoreNeo4j:
		return openGraphStore(ctx, cfg, logger)
	default:
		client, closeFn, err := openSQLiteStore(ctx, cfg.Data, cfg.Data.DBPath, cfg.Env, logger)
		if err != nil {
			return nil, nil, err
		}
		return client, closeFn, nil
	}
}

func openSQLiteStore(ctx context.Context, data appconf.DataConfig, dbPath string, env appconf.Environment, logger *slog.Logger) (*subwaydb.Client, func(), error) {
	client, err := subwaydb.NewClient(subwaydb.NewConfig(dbPath, env, logger))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		logging.SafeCloseWithLogging(client, logger, "close_database")
	}

	if data.NetworkFile != "" {
		if err := client.ImportNetworkFile(ctx, data.NetworkFile); err != nil {
			closeFn()
			return nil, nil, err
		}
	}
	if data.GtfsFile != "" {
		if err := client.ImportGTFSSource(ctx, data.GtfsFile); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	counts, err := client.TableCounts(ctx)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	logger.Info("sqlite store ready",
		slog.String("path", dbPath),
		slog.Int("stations", counts["stations"]),
		slog.Int("lines", counts["lines"]),
		slog.Int("line_stations", counts["line_stations"]))

	return client, closeFn, nil
}

// openGraphStore connects to Neo4j. When data files are configured they are loaded through an
// in-memory SQLite store, which validates them, and then copied into the graph.
func openGraphStore(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (app.Store, func(), error) {
	client, err := graphstore.NewNeo4jClient(ctx, graphstore.Options{
		URI:            cfg.Neo4j.URI,
		Database:       cfg.Neo4j.Database,
		Username:       cfg.Neo4j.Username,
		Password:       cfg.Neo4j.Password,
		MaxConnections: cfg.Neo4j.MaxConnections,
	})
	if err != nil {
		return nil, nil, err
	}

	repo := graphstore.NewRepository(client)
	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), storeCloseTimeout)
		defer cancel()
		if err := repo.Close(closeCtx); err != nil {
			logger.Error("failed to close graph client", "error", err)
		}
	}

	if err := repo.Ping(ctx); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("neo4j connectivity: %w", err)
	}

	if cfg.Data.NetworkFile != "" || cfg.Data.GtfsFile != "" {
		if err := seedGraph(ctx, repo, cfg, logger); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	return repo, closeFn, nil
}

func seedGraph(ctx context.Context, repo *graphstore.Repository, cfg appconf.Config, logger *slog.Logger) error {
	staging, closeStaging, err := openSQLiteStore(ctx, cfg.Data, ":memory:", cfg.Env, logger)
	if err != nil {
		return err
	}
	defer closeStaging()

	stations, err := staging.ListStations(ctx)
	if err != nil {
		return err
	}
	lines, err := staging.ListLines(ctx)
	if err != nil {
		return err
	}
	return repo.Import(ctx, stations, lines, logger)
}
