package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"subwaymap.org/internal/logging"
)

// Query is a shortest-path request expressed in station names.
type Query struct {
	Source   string
	Target   string
	Criteria string
}

// PathResult is the answer to a Query.
type PathResult struct {
	Stations  []Station
	Distance  int
	Duration  int
	Criterion Criterion
}

// PathService answers path queries against the current repository snapshot.
// It keeps no graph between queries, so concurrent calls share no mutable state.
type PathService struct {
	repo   Repository
	logger *slog.Logger
}

// NewPathService creates a PathService reading from repo. A nil logger falls back to slog.Default.
func NewPathService(repo Repository, logger *slog.Logger) *PathService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PathService{repo: repo, logger: logger}
}

// FindPath resolves the query's station names, builds the criterion-weighted graph and
// returns the shortest path. Every failure is a *QueryError.
func (s *PathService) FindPath(ctx context.Context, q Query) (PathResult, error) {
	start := time.Now()

	result, err := s.findPath(ctx, q)
	if err != nil {
		var qerr *QueryError
		if !errors.As(err, &qerr) {
			qerr = newQueryError(err)
		}
		s.logger.Debug("path query failed",
			slog.String("component", "path_service"),
			slog.String("source", q.Source),
			slog.String("target", q.Target),
			slog.String("criteria", q.Criteria),
			slog.String("kind", string(qerr.Kind)),
			slog.String("error", qerr.Err.Error()))
		return PathResult{}, qerr
	}

	logging.LogOperation(s.logger, "path_query_completed",
		slog.String("component", "path_service"),
		slog.String("source", q.Source),
		slog.String("target", q.Target),
		slog.String("criteria", result.Criterion.String()),
		slog.Int("stations", len(result.Stations)),
		slog.Int("distance", result.Distance),
		slog.Int("total_duration", result.Duration),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

func (s *PathService) findPath(ctx context.Context, q Query) (PathResult, error) {
	criterion, err := ParseCriterion(q.Criteria)
	if err != nil {
		return PathResult{}, err
	}

	index, err := s.stationIndex(ctx)
	if err != nil {
		return PathResult{}, err
	}

	source, err := index.Resolve(q.Source)
	if err != nil {
		return PathResult{}, err
	}
	target, err := index.Resolve(q.Target)
	if err != nil {
		return PathResult{}, err
	}
	if source == target {
		return PathResult{}, fmt.Errorf("%w: %q", ErrInvalidQuery, q.Source)
	}

	lines, err := s.repo.ListLines(ctx)
	if err != nil {
		return PathResult{}, &QueryError{Kind: KindUnavailable, Err: fmt.Errorf("%w: list lines: %v", ErrUnavailable, err)}
	}

	path, err := ShortestPath(BuildGraph(lines, criterion), source, target)
	if err != nil {
		return PathResult{}, err
	}

	stations := make([]Station, 0, len(path.Stations))
	for _, id := range path.Stations {
		st, ok := index.Station(id)
		if !ok {
			// a segment references a station missing from the snapshot
			return PathResult{}, &QueryError{Kind: KindUnavailable, Err: fmt.Errorf("%w: station %d has no record", ErrUnavailable, id)}
		}
		stations = append(stations, st)
	}

	return PathResult{
		Stations:  stations,
		Distance:  path.Distance,
		Duration:  path.Duration,
		Criterion: criterion,
	}, nil
}

func (s *PathService) stationIndex(ctx context.Context) (*StationIndex, error) {
	stations, err := s.repo.ListStations(ctx)
	if err != nil {
		return nil, &QueryError{Kind: KindUnavailable, Err: fmt.Errorf("%w: list stations: %v", ErrUnavailable, err)}
	}
	return NewStationIndex(stations), nil
}

// KnownStationNames returns every station name in the current snapshot, sorted.
func (s *PathService) KnownStationNames(ctx context.Context) ([]string, error) {
	index, err := s.stationIndex(ctx)
	if err != nil {
		return nil, err
	}
	return index.KnownNames(), nil
}
