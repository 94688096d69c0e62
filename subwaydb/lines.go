package subwaydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"subwaymap.org/internal/logging"
	"subwaymap.org/internal/network"
)

var (
	ErrLineNotFound      = errors.New("line not found")
	ErrInvalidWeight     = errors.New("distance and duration must be positive")
	ErrLineAlreadyStarts = errors.New("line already has a first station")
	ErrNotLineEnd        = errors.New("upstream station is not the last station of the line")
	ErrStationOnLine     = errors.New("station is already on the line")
)

// CreateLine inserts a line, or returns the id of the existing line with the same name.
func (c *Client) CreateLine(ctx context.Context, name string) (int64, error) {
	return createLine(ctx, c.DB, name)
}

func createLine(ctx context.Context, db execQuerier, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrInvalidName
	}

	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO lines (name) VALUES (?)`, name); err != nil {
		return 0, fmt.Errorf("error inserting line %q: %w", name, err)
	}

	var id int64
	if err := db.QueryRowContext(ctx, `SELECT id FROM lines WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("error querying line %q: %w", name, err)
	}
	return id, nil
}

// AddSegment appends a segment to the end of a line.
//
// An upstream of network.NoStation registers the first station of an empty line. A
// connecting segment must start at the line's current last station, must not revisit a
// station already on the line, and must carry positive weights. Appending to an empty
// line registers the upstream station as the line start first.
func (c *Client) AddSegment(ctx context.Context, lineID int64, upstream, station network.StationID, distance, duration int) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "add_segment")

	if err := addSegment(ctx, tx, lineID, upstream, station, distance, duration); err != nil {
		return err
	}
	return tx.Commit()
}

func addSegment(ctx context.Context, tx execQuerier, lineID int64, upstream, station network.StationID, distance, duration int) error {
	var exists int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM lines WHERE id = ?`, lineID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %d", ErrLineNotFound, lineID)
	}
	if err != nil {
		return fmt.Errorf("error querying line %d: %w", lineID, err)
	}

	onLine, lastSeq, last, err := lineState(ctx, tx, lineID)
	if err != nil {
		return err
	}

	if upstream == network.NoStation {
		if lastSeq > 0 {
			return fmt.Errorf("%w: line %d", ErrLineAlreadyStarts, lineID)
		}
		return insertSegment(ctx, tx, lineID, 1, upstream, station, distance, duration)
	}

	if distance <= 0 || duration <= 0 {
		return fmt.Errorf("%w: got distance=%d duration=%d", ErrInvalidWeight, distance, duration)
	}

	if lastSeq == 0 {
		if err := insertSegment(ctx, tx, lineID, 1, network.NoStation, upstream, 0, 0); err != nil {
			return err
		}
		lastSeq, last = 1, upstream
		onLine[upstream] = true
	}

	if upstream != last {
		return fmt.Errorf("%w: line %d ends at station %d", ErrNotLineEnd, lineID, last)
	}
	if onLine[station] {
		return fmt.Errorf("%w: station %d on line %d", ErrStationOnLine, station, lineID)
	}

	return insertSegment(ctx, tx, lineID, lastSeq+1, upstream, station, distance, duration)
}

func lineState(ctx context.Context, tx execQuerier, lineID int64) (map[network.StationID]bool, int, network.StationID, error) {
	rows, err := tx.QueryContext(ctx, `SELECT seq, station_id FROM line_stations WHERE line_id = ? ORDER BY seq`, lineID)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("error querying line %d stations: %w", lineID, err)
	}
	defer rows.Close() // nolint:errcheck

	onLine := make(map[network.StationID]bool)
	var lastSeq int
	var last network.StationID
	for rows.Next() {
		if err := rows.Scan(&lastSeq, &last); err != nil {
			return nil, 0, 0, fmt.Errorf("error scanning line station: %w", err)
		}
		onLine[last] = true
	}
	return onLine, lastSeq, last, rows.Err()
}

func insertSegment(ctx context.Context, tx execQuerier, lineID int64, seq int, upstream, station network.StationID, distance, duration int) error {
	var pre sql.NullInt64
	if upstream != network.NoStation {
		pre = sql.NullInt64{Int64: int64(upstream), Valid: true}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO line_stations (line_id, seq, pre_station_id, station_id, distance, duration)
		VALUES (?, ?, ?, ?, ?, ?)`,
		lineID, seq, pre, int64(station), distance, duration)
	if err != nil {
		return fmt.Errorf("error inserting segment on line %d: %w", lineID, err)
	}
	return nil
}

// ListLines returns every line with its segments in order.
func (c *Client) ListLines(ctx context.Context) ([]network.Line, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT l.id, l.name, ls.pre_station_id, ls.station_id, ls.distance, ls.duration
		FROM lines l
		LEFT JOIN line_stations ls ON ls.line_id = l.id
		ORDER BY l.id, ls.seq`)
	if err != nil {
		return nil, fmt.Errorf("error querying lines: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	var lines []network.Line
	for rows.Next() {
		var (
			lineID             int64
			name               string
			pre, station       sql.NullInt64
			distance, duration sql.NullInt64
		)
		if err := rows.Scan(&lineID, &name, &pre, &station, &distance, &duration); err != nil {
			return nil, fmt.Errorf("error scanning line segment: %w", err)
		}

		if len(lines) == 0 || lines[len(lines)-1].ID != lineID {
			lines = append(lines, network.Line{ID: lineID, Name: name})
		}
		if !station.Valid {
			continue
		}

		line := &lines[len(lines)-1]
		line.Segments = append(line.Segments, network.Segment{
			LineID:     lineID,
			UpstreamID: network.StationID(pre.Int64),
			StationID:  network.StationID(station.Int64),
			Distance:   int(distance.Int64),
			Duration:   int(duration.Int64),
		})
	}
	return lines, rows.Err()
}
