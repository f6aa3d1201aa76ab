package fuel

import "errors"

var (
	// ErrDateNotFound, ErrStationNotFound, ErrProductNotFound and
	// ErrMomentNotFound are returned when a natural key resolves to no
	// active dimension row.
	ErrDateNotFound    = errors.New("no active date dimension row")
	ErrStationNotFound = errors.New("no active station dimension row")
	ErrProductNotFound = errors.New("no active product dimension row")
	ErrMomentNotFound  = errors.New("no active moment dimension row")

	// ErrPriceParse is returned for a malformed upstream price string.
	ErrPriceParse = errors.New("malformed price value")

	// ErrDuplicateFact is reported when an ingestion tries to write a fact
	// whose composite key already exists. The first-written row wins.
	ErrDuplicateFact = errors.New("fact row already exists")

	// ErrUpstreamUnavailable is returned when the price API fetch fails;
	// fatal for that ingestion run, no facts are produced.
	ErrUpstreamUnavailable = errors.New("upstream price api unavailable")
)
