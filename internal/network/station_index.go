package network

import (
	"fmt"
	"sort"
	"strings"
)

// StationIndex maps station names to identifiers and back.
type StationIndex struct {
	byName map[string]StationID
	byID   map[StationID]Station
}

// NewStationIndex indexes a snapshot of stations. Later duplicates of a name are ignored.
func NewStationIndex(stations []Station) *StationIndex {
	idx := &StationIndex{
		byName: make(map[string]StationID, len(stations)),
		byID:   make(map[StationID]Station, len(stations)),
	}
	for _, s := range stations {
		if _, dup := idx.byName[s.Name]; dup {
			continue
		}
		idx.byName[s.Name] = s.ID
		idx.byID[s.ID] = s
	}
	return idx
}

// Resolve returns the identifier of the station with the given name.
func (idx *StationIndex) Resolve(name string) (StationID, error) {
	id, ok := idx.byName[strings.TrimSpace(name)]
	if !ok {
		return NoStation, fmt.Errorf("%w: %q", ErrStationNotFound, name)
	}
	return id, nil
}

// Station returns the station with the given id.
func (idx *StationIndex) Station(id StationID) (Station, bool) {
	s, ok := idx.byID[id]
	return s, ok
}

// KnownNames returns every indexed name in sorted order.
func (idx *StationIndex) KnownNames() []string {
	names := make([]string, 0, len(idx.byName))
	for name := range idx.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of indexed stations.
func (idx *StationIndex) Len() int {
	return len(idx.byName)
}
