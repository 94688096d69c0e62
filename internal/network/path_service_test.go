package network

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stationNames(stations []Station) []string {
	names := make([]string, len(stations))
	for i, s := range stations {
		names[i] = s.Name
	}
	return names
}

func TestPathServiceFindPath(t *testing.T) {
	svc := NewPathService(newFixtureRepository(), nil)
	ctx := context.Background()

	t.Run("distance from Jamsil to Samjeon", func(t *testing.T) {
		res, err := svc.FindPath(ctx, Query{Source: "Jamsil", Target: "Samjeon", Criteria: "distance"})
		require.NoError(t, err)

		assert.Equal(t, []string{"Jamsil", "Seokchon", "SeokchonGobun", "Samjeon"}, stationNames(res.Stations))
		assert.Equal(t, 3, res.Distance)
		assert.Equal(t, 30, res.Duration)
		assert.Equal(t, Distance, res.Criterion)
	})

	t.Run("distance and duration to SeokchonGobun differ", func(t *testing.T) {
		byDistance, err := svc.FindPath(ctx, Query{Source: "Jamsil", Target: "SeokchonGobun", Criteria: "distance"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Jamsil", "Seokchon", "SeokchonGobun"}, stationNames(byDistance.Stations))
		assert.Equal(t, 2, byDistance.Distance)
		assert.Equal(t, 20, byDistance.Duration)

		byDuration, err := svc.FindPath(ctx, Query{Source: "Jamsil", Target: "SeokchonGobun", Criteria: "duration"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Jamsil", "Jamsilsaenae", "Playground", "Samjeon", "SeokchonGobun"}, stationNames(byDuration.Stations))
		assert.Equal(t, 31, byDuration.Distance)
		assert.Equal(t, 13, byDuration.Duration)
	})

	t.Run("repeated queries return identical results", func(t *testing.T) {
		q := Query{Source: "Jamsil", Target: "SeokchonGobun", Criteria: "duration"}
		first, err := svc.FindPath(ctx, q)
		require.NoError(t, err)
		second, err := svc.FindPath(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestPathServiceFailures(t *testing.T) {
	svc := NewPathService(newFixtureRepository(), nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		query    Query
		sentinel error
		kind     Kind
	}{
		{"disconnected station", Query{"Jamsil", "Songnae", "distance"}, ErrPathNotFound, KindPathNotFound},
		{"same source and target", Query{"Jamsil", "Jamsil", "distance"}, ErrInvalidQuery, KindInvalidQuery},
		{"unknown target by distance", Query{"Jamsil", "Bugae", "distance"}, ErrStationNotFound, KindStationNotFound},
		{"unknown target by duration", Query{"Jamsil", "Bugae", "duration"}, ErrStationNotFound, KindStationNotFound},
		{"unknown source", Query{"Bugae", "Jamsil", "duration"}, ErrStationNotFound, KindStationNotFound},
		{"unknown criterion", Query{"Jamsil", "Samjeon", "fare"}, ErrInvalidCriterion, KindInvalidCriterion},
		{"criterion checked before stations", Query{"Bugae", "Bugae", ""}, ErrInvalidCriterion, KindInvalidCriterion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.FindPath(ctx, tt.query)
			require.Error(t, err)
			assert.Empty(t, res.Stations)
			assert.ErrorIs(t, err, tt.sentinel)

			var qerr *QueryError
			require.True(t, errors.As(err, &qerr))
			assert.Equal(t, tt.kind, qerr.Kind)
			assert.Contains(t, err.Error(), "path query failed")
		})
	}
}

func TestPathServiceRepositoryFailure(t *testing.T) {
	repo := newFixtureRepository()
	repo.err = errors.New("database is locked")
	svc := NewPathService(repo, nil)

	_, err := svc.FindPath(context.Background(), Query{"Jamsil", "Samjeon", "distance"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)

	var qerr *QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, KindUnavailable, qerr.Kind)

	_, err = svc.KnownStationNames(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPathServiceSeesNewData(t *testing.T) {
	repo := newFixtureRepository()
	svc := NewPathService(repo, nil)
	ctx := context.Background()

	_, err := svc.FindPath(ctx, Query{"Jamsil", "Songnae", "distance"})
	require.ErrorIs(t, err, ErrPathNotFound)

	repo.lines[3].Segments = append(repo.lines[3].Segments,
		Segment{LineID: 4, UpstreamID: songnae, StationID: seokchon, Distance: 2, Duration: 2})

	res, err := svc.FindPath(ctx, Query{"Jamsil", "Songnae", "distance"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jamsil", "Seokchon", "Songnae"}, stationNames(res.Stations))
	assert.Equal(t, 3, res.Distance)
	assert.Equal(t, 12, res.Duration)
}

func TestPathServiceConcurrentQueries(t *testing.T) {
	svc := NewPathService(&stubRepository{stations: fixtureStations(), lines: fixtureLines()}, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			criteria := "distance"
			if i%2 == 1 {
				criteria = "duration"
			}
			_, err := svc.FindPath(context.Background(), Query{"Jamsil", "SeokchonGobun", criteria})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestPathServiceLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewPathService(newFixtureRepository(), logger)

	_, err := svc.FindPath(context.Background(), Query{"Jamsil", "Samjeon", "distance"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"path_query_completed"`)
	assert.Contains(t, buf.String(), `"component":"path_service"`)

	buf.Reset()
	_, err = svc.FindPath(context.Background(), Query{"Jamsil", "Jamsil", "distance"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"kind":"invalid_query"`)
}

func TestKnownStationNames(t *testing.T) {
	svc := NewPathService(newFixtureRepository(), nil)

	names, err := svc.KnownStationNames(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 7)
	assert.Equal(t, "Jamsil", names[0])
}
