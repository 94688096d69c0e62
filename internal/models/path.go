package models

import "subwaymap.org/internal/network"

// Path is the entry returned for a shortest-path query.
type Path struct {
	Stations []Station `json:"stations"`
	Distance int       `json:"distance"`
	Duration int       `json:"duration"`
}

func NewPath(result network.PathResult) Path {
	stations := make([]Station, len(result.Stations))
	for i, st := range result.Stations {
		stations[i] = NewStation(st)
	}
	return Path{
		Stations: stations,
		Distance: result.Distance,
		Duration: result.Duration,
	}
}
