package subwaydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"subwaymap.org/internal/network"
)

// ErrInvalidName is returned for blank station or line names.
var ErrInvalidName = errors.New("name cannot be empty")

// CreateStation inserts a station, or returns the existing one with the same name.
func (c *Client) CreateStation(ctx context.Context, name string) (network.Station, error) {
	return createStation(ctx, c.DB, name)
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func createStation(ctx context.Context, db execQuerier, name string) (network.Station, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return network.Station{}, ErrInvalidName
	}

	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO stations (name) VALUES (?)`, name)
	if err != nil {
		return network.Station{}, fmt.Errorf("error inserting station %q: %w", name, err)
	}
	return findStationByName(ctx, db, name)
}

// FindStationByName returns the station with the given name, or an error wrapping
// network.ErrStationNotFound.
func (c *Client) FindStationByName(ctx context.Context, name string) (network.Station, error) {
	return findStationByName(ctx, c.DB, strings.TrimSpace(name))
}

func findStationByName(ctx context.Context, db execQuerier, name string) (network.Station, error) {
	var st network.Station
	err := db.QueryRowContext(ctx, `SELECT id, name FROM stations WHERE name = ?`, name).Scan(&st.ID, &st.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return network.Station{}, fmt.Errorf("%w: %q", network.ErrStationNotFound, name)
	}
	if err != nil {
		return network.Station{}, fmt.Errorf("error querying station %q: %w", name, err)
	}
	return st, nil
}

// ListStations returns every station ordered by id.
func (c *Client) ListStations(ctx context.Context) ([]network.Station, error) {
	rows, err := c.DB.QueryContext(ctx, `SELECT id, name FROM stations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying stations: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var stations []network.Station
	for rows.Next() {
		var st network.Station
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, fmt.Errorf("error scanning station: %w", err)
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}
