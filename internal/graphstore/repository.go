package graphstore

import (
	"context"
	"fmt"

	"subwaymap.org/internal/network"
)

// Graph layout:
//
//	(:Station {id, name})
//	(:Line {id, name})-[:STARTS_AT]->(:Station)
//	(:Station)-[:SEGMENT {line_id, seq, distance, duration}]->(:Station)
const (
	stationsQuery = `MATCH (s:Station) RETURN s.id AS id, s.name AS name ORDER BY s.id`

	stationByNameQuery = `MATCH (s:Station {name: $name}) RETURN s.id AS id, s.name AS name LIMIT 1`

	linesQuery = `MATCH (l:Line)
OPTIONAL MATCH (l)-[:STARTS_AT]->(s:Station)
RETURN l.id AS line_id, l.name AS name, s.id AS start_id
ORDER BY l.id`

	segmentsQuery = `MATCH (a:Station)-[r:SEGMENT]->(b:Station)
RETURN r.line_id AS line_id, a.id AS upstream_id, b.id AS station_id, r.distance AS distance, r.duration AS duration
ORDER BY r.line_id, r.seq`
)

// Repository reads stations and lines from a graph database.
type Repository struct {
	client Client
}

var _ network.Repository = (*Repository)(nil)

func NewRepository(client Client) *Repository {
	return &Repository{client: client}
}

// Ping verifies the graph database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.VerifyConnectivity(ctx)
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close(ctx)
}

func (r *Repository) ListStations(ctx context.Context) ([]network.Station, error) {
	res, err := r.client.ExecuteRead(ctx, stationsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}

	stations := make([]network.Station, 0, len(res.Records))
	for _, rec := range res.Records {
		st, err := stationFromRecord(rec)
		if err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, nil
}

func (r *Repository) FindStationByName(ctx context.Context, name string) (network.Station, error) {
	res, err := r.client.ExecuteRead(ctx, stationByNameQuery, map[string]any{"name": name})
	if err != nil {
		return network.Station{}, fmt.Errorf("query station %q: %w", name, err)
	}
	if len(res.Records) == 0 {
		return network.Station{}, fmt.Errorf("%w: %q", network.ErrStationNotFound, name)
	}
	return stationFromRecord(res.Records[0])
}

func (r *Repository) ListLines(ctx context.Context) ([]network.Line, error) {
	res, err := r.client.ExecuteRead(ctx, linesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("query lines: %w", err)
	}

	lines := make([]network.Line, 0, len(res.Records))
	byID := make(map[int64]int, len(res.Records))
	for _, rec := range res.Records {
		id, err := intField(rec, "line_id")
		if err != nil {
			return nil, err
		}
		line := network.Line{ID: id, Name: stringField(rec, "name")}
		if rec["start_id"] != nil {
			start, err := intField(rec, "start_id")
			if err != nil {
				return nil, err
			}
			line.Segments = append(line.Segments, network.Segment{
				LineID:     id,
				UpstreamID: network.NoStation,
				StationID:  network.StationID(start),
			})
		}
		byID[id] = len(lines)
		lines = append(lines, line)
	}

	res, err = r.client.ExecuteRead(ctx, segmentsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	for _, rec := range res.Records {
		seg, err := segmentFromRecord(rec)
		if err != nil {
			return nil, err
		}
		i, ok := byID[seg.LineID]
		if !ok {
			return nil, fmt.Errorf("segment references unknown line %d", seg.LineID)
		}
		lines[i].Segments = append(lines[i].Segments, seg)
	}
	return lines, nil
}

func stationFromRecord(rec Record) (network.Station, error) {
	id, err := intField(rec, "id")
	if err != nil {
		return network.Station{}, err
	}
	return network.Station{ID: network.StationID(id), Name: stringField(rec, "name")}, nil
}

func segmentFromRecord(rec Record) (network.Segment, error) {
	var values [5]int64
	for i, key := range []string{"line_id", "upstream_id", "station_id", "distance", "duration"} {
		v, err := intField(rec, key)
		if err != nil {
			return network.Segment{}, err
		}
		values[i] = v
	}
	return network.Segment{
		LineID:     values[0],
		UpstreamID: network.StationID(values[1]),
		StationID:  network.StationID(values[2]),
		Distance:   int(values[3]),
		Duration:   int(values[4]),
	}, nil
}

func intField(rec Record, key string) (int64, error) {
	switch v := rec[key].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("field %q: expected integer, got %T", key, rec[key])
	}
}

func stringField(rec Record, key string) string {
	s, _ := rec[key].(string)
	return s
}
