package network

import (
	"fmt"
	"strings"
)

// Criterion selects which segment weight drives the search.
type Criterion int

const (
	Distance Criterion = iota + 1
	Duration
)

// ParseCriterion accepts "distance" or "duration", ignoring case and surrounding space.
func ParseCriterion(s string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distance":
		return Distance, nil
	case "duration":
		return Duration, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCriterion, s)
	}
}

func (c Criterion) String() string {
	switch c {
	case Distance:
		return "distance"
	case Duration:
		return "duration"
	default:
		return "unknown"
	}
}

// Weight returns the weight of e under this criterion.
func (c Criterion) Weight(e Edge) int {
	if c == Duration {
		return e.Duration
	}
	return e.Distance
}
