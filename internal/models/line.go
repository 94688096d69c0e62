package models

import "subwaymap.org/internal/network"

// Line lists a line's stations in travel order together with its totals.
type Line struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Stations []Station `json:"stations"`
	Distance int       `json:"distance"`
	Duration int       `json:"duration"`
}

// NewLine resolves station ids through names. Stations missing from names keep an empty name.
func NewLine(line network.Line, names map[network.StationID]string) Line {
	stations := make([]Station, 0, len(line.Segments))
	var distance, duration int
	for _, seg := range line.Segments {
		stations = append(stations, Station{ID: int64(seg.StationID), Name: names[seg.StationID]})
		if !seg.IsLineStart() {
			distance += seg.Distance
			duration += seg.Duration
		}
	}
	return Line{
		ID:       line.ID,
		Name:     line.Name,
		Stations: stations,
		Distance: distance,
		Duration: duration,
	}
}
