package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the reference catalog cannot be
	// loaded at startup. This is a fatal configuration error: the engine must
	// not serve requests in this state.
	ErrCatalogUnavailable = errors.New("reference catalog unavailable")

	// ErrNoIdentifyingInfo is returned when the extraction carries neither a
	// usable brand name nor a usable composition.
	ErrNoIdentifyingInfo = errors.New("no identifying information extracted")

	// ErrRecordNotFound is returned when a matched string cannot be resolved
	// back to a catalog record.
	ErrRecordNotFound = errors.New("record not found in catalog")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
