package graphstore

import (
	"context"
	"fmt"
	"log/slog"

	"subwaymap.org/internal/logging"
	"subwaymap.org/internal/network"
)

const (
	constraintQuery = `CREATE CONSTRAINT station_id IF NOT EXISTS FOR (s:Station) REQUIRE s.id IS UNIQUE`

	mergeStationsQuery = `UNWIND $stations AS st
MERGE (s:Station {id: st.id})
SET s.name = st.name`

	mergeLineQuery = `MERGE (l:Line {id: $id})
SET l.name = $name
WITH l
OPTIONAL MATCH (l)-[old:STARTS_AT]->()
DELETE old`

	clearSegmentsQuery = `MATCH ()-[r:SEGMENT {line_id: $id}]->() DELETE r`

	startQuery = `MATCH (l:Line {id: $id}), (s:Station {id: $station})
MERGE (l)-[:STARTS_AT]->(s)`

	mergeSegmentsQuery = `UNWIND $segments AS seg
MATCH (a:Station {id: seg.upstream}), (b:Station {id: seg.station})
CREATE (a)-[:SEGMENT {line_id: $id, seq: seg.seq, distance: seg.distance, duration: seg.duration}]->(b)`
)

// Import replaces the graph's copy of the given stations and lines. Lines are rewritten whole,
// so importing the same snapshot twice leaves one copy.
func (r *Repository) Import(ctx context.Context, stations []network.Station, lines []network.Line, logger *slog.Logger) error {
	if _, err := r.client.ExecuteWrite(ctx, constraintQuery, nil); err != nil {
		return fmt.Errorf("create station constraint: %w", err)
	}

	rows := make([]map[string]any, len(stations))
	for i, st := range stations {
		rows[i] = map[string]any{"id": int64(st.ID), "name": st.Name}
	}
	if _, err := r.client.ExecuteWrite(ctx, mergeStationsQuery, map[string]any{"stations": rows}); err != nil {
		return fmt.Errorf("merge stations: %w", err)
	}

	segments := 0
	for _, line := range lines {
		n, err := r.importLine(ctx, line)
		if err != nil {
			return fmt.Errorf("import line %q: %w", line.Name, err)
		}
		segments += n
	}

	logging.LogOperation(logger, "graph_imported",
		slog.String("component", "graphstore"),
		slog.Int("stations", len(stations)),
		slog.Int("lines", len(lines)),
		slog.Int("segments", segments))
	return nil
}

func (r *Repository) importLine(ctx context.Context, line network.Line) (int, error) {
	params := map[string]any{"id": line.ID, "name": line.Name}
	if _, err := r.client.ExecuteWrite(ctx, mergeLineQuery, params); err != nil {
		return 0, err
	}
	if _, err := r.client.ExecuteWrite(ctx, clearSegmentsQuery, map[string]any{"id": line.ID}); err != nil {
		return 0, err
	}

	var rows []map[string]any
	for seq, seg := range line.Segments {
		if seg.IsLineStart() {
			_, err := r.client.ExecuteWrite(ctx, startQuery, map[string]any{"id": line.ID, "station": int64(seg.StationID)})
			if err != nil {
				return 0, err
			}
			continue
		}
		rows = append(rows, map[string]any{
			"seq":      int64(seq),
			"upstream": int64(seg.UpstreamID),
			"station":  int64(seg.StationID),
			"distance": int64(seg.Distance),
			"duration": int64(seg.Duration),
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	_, err := r.client.ExecuteWrite(ctx, mergeSegmentsQuery, map[string]any{"id": line.ID, "segments": rows})
	return len(rows), err
}
