package domain

import "errors"

// KeyPrefix namespaces every key this service writes to the cache.
const KeyPrefix = "fbc:"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID signals a malformed consultant identifier.
	ErrInvalidID = errors.New("invalid consultant id")

	// ErrUpstreamUnavailable signals that the record store could not be read.
	ErrUpstreamUnavailable = errors.New("record store unavailable")
	// ErrTaxonomyLookup signals a failed service/industry junction lookup.
	ErrTaxonomyLookup = errors.New("taxonomy lookup failed")
	// ErrResolverTimeout signals that the server attempt exceeded its deadline.
	ErrResolverTimeout = errors.New("server resolver timed out")
	// ErrSearchUnavailable signals that every resolution strategy failed.
	ErrSearchUnavailable = errors.New("search unavailable")
)
