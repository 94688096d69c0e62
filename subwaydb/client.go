package subwaydb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"subwaymap.org/internal/appconf"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed schema.sql
var ddl string

// ErrFileDBInTest is returned when a file-backed database is requested in the test environment.
var ErrFileDBInTest = errors.New("file-backed database is not allowed in the test environment")

// Client is the SQLite-backed store of stations, lines and line segments.
type Client struct {
	config Config
	DB     *sql.DB
	logger *slog.Logger
}

// NewClient opens the database and applies the schema.
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config: config,
		DB:     db,
		logger: logger.With(slog.String("component", "subwaydb")),
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// Ping verifies the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != ":memory:" {
		return nil, fmt.Errorf("%w: %s", ErrFileDBInTest, config.DBPath)
	}

	db, err := sql.Open("sqlite", dataSourceName(config.DBPath))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if config.DBPath == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	ctx := context.Background()
	if err := performDatabaseMigration(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	return db, nil
}

// dataSourceName enables foreign keys on every pooled connection, not just the first one.
func dataSourceName(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate")
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}
