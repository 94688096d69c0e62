package network

import "context"

// StationID identifies a station in the repository.
type StationID int64

// NoStation marks the missing upstream of a line's first segment.
const NoStation StationID = 0

// Station is a named stop shared by any number of lines.
type Station struct {
	ID   StationID
	Name string
}

// Segment connects two consecutive stations on a line.
// A segment with UpstreamID == NoStation only registers the line's first station.
type Segment struct {
	LineID     int64
	UpstreamID StationID
	StationID  StationID
	Distance   int
	Duration   int
}

// IsLineStart reports whether the segment is the sentinel for the first station of a line.
func (s Segment) IsLineStart() bool {
	return s.UpstreamID == NoStation
}

// Line is an ordered chain of segments.
type Line struct {
	ID       int64
	Name     string
	Segments []Segment
}

// StationIDs returns the stations of the line in order.
func (l Line) StationIDs() []StationID {
	ids := make([]StationID, 0, len(l.Segments))
	for _, s := range l.Segments {
		if !s.IsLineStart() && len(ids) == 0 {
			ids = append(ids, s.UpstreamID)
		}
		ids = append(ids, s.StationID)
	}
	return ids
}

// Repository is the read-only source of stations and line segments.
// Weights are trusted to be positive; stores enforce that on write.
type Repository interface {
	ListStations(ctx context.Context) ([]Station, error)
	ListLines(ctx context.Context) ([]Line, error)
	FindStationByName(ctx context.Context, name string) (Station, error)
}
