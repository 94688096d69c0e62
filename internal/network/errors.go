package network

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCriterion = errors.New("invalid criterion")
	ErrStationNotFound  = errors.New("station not found")
	ErrInvalidQuery     = errors.New("source and target are the same station")
	ErrPathNotFound     = errors.New("path not found")
	ErrUnavailable      = errors.New("network data unavailable")
)

// Kind names the failure class of a path query.
type Kind string

const (
	KindInvalidCriterion Kind = "invalid_criterion"
	KindStationNotFound  Kind = "station_not_found"
	KindInvalidQuery     Kind = "invalid_query"
	KindPathNotFound     Kind = "path_not_found"
	KindUnavailable      Kind = "unavailable"
)

// QueryError is returned by PathService for every failed query.
type QueryError struct {
	Kind Kind
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("path query failed (%s): %v", e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func newQueryError(err error) *QueryError {
	return &QueryError{Kind: kindOf(err), Err: err}
}

func kindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidCriterion):
		return KindInvalidCriterion
	case errors.Is(err, ErrStationNotFound):
		return KindStationNotFound
	case errors.Is(err, ErrInvalidQuery):
		return KindInvalidQuery
	case errors.Is(err, ErrPathNotFound):
		return KindPathNotFound
	default:
		return KindUnavailable
	}
}
