package network

import (
	"context"
	"errors"
)

const (
	jamsil StationID = iota + 1
	jamsilsaenae
	playground
	samjeon
	seokchonGobun
	seokchon
	songnae
)

func fixtureStations() []Station {
	return []Station{
		{ID: jamsil, Name: "Jamsil"},
		{ID: jamsilsaenae, Name: "Jamsilsaenae"},
		{ID: playground, Name: "Playground"},
		{ID: samjeon, Name: "Samjeon"},
		{ID: seokchonGobun, Name: "SeokchonGobun"},
		{ID: seokchon, Name: "Seokchon"},
		{ID: songnae, Name: "Songnae"},
	}
}

func fixtureLines() []Line {
	return []Line{
		{ID: 1, Name: "Line 2", Segments: []Segment{
			{LineID: 1, UpstreamID: NoStation, StationID: jamsil},
			{LineID: 1, UpstreamID: jamsil, StationID: jamsilsaenae, Distance: 10, Duration: 1},
			{LineID: 1, UpstreamID: jamsilsaenae, StationID: playground, Distance: 10, Duration: 1},
		}},
		{ID: 2, Name: "Bundang", Segments: []Segment{
			{LineID: 2, UpstreamID: NoStation, StationID: playground},
			{LineID: 2, UpstreamID: playground, StationID: samjeon, Distance: 10, Duration: 1},
			{LineID: 2, UpstreamID: samjeon, StationID: seokchonGobun, Distance: 1, Duration: 10},
			{LineID: 2, UpstreamID: seokchonGobun, StationID: seokchon, Distance: 1, Duration: 10},
		}},
		{ID: 3, Name: "Line 3", Segments: []Segment{
			{LineID: 3, UpstreamID: NoStation, StationID: jamsil},
			{LineID: 3, UpstreamID: jamsil, StationID: seokchon, Distance: 1, Duration: 10},
		}},
		{ID: 4, Name: "Line 4", Segments: []Segment{
			{LineID: 4, UpstreamID: NoStation, StationID: songnae, Distance: 10, Duration: 10},
		}},
	}
}

// stubRepository serves a fixed snapshot.
type stubRepository struct {
	stations []Station
	lines    []Line
	err      error
}

func newFixtureRepository() *stubRepository {
	return &stubRepository{stations: fixtureStations(), lines: fixtureLines()}
}

func (r *stubRepository) ListStations(context.Context) ([]Station, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.stations, nil
}

func (r *stubRepository) ListLines(context.Context) ([]Line, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.lines, nil
}

func (r *stubRepository) FindStationByName(_ context.Context, name string) (Station, error) {
	for _, s := range r.stations {
		if s.Name == name {
			return s, nil
		}
	}
	return Station{}, errors.New("no such station")
}
