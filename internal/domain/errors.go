package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is returned when a lookup key is not one of the recognized values
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnknownGoal is returned when a profile goal is not lose, maintain or gain
	ErrUnknownGoal = fmt.Errorf("%w: unknown goal", ErrKeyNotFound)

	// ErrInvalidSlotRatios is returned when meal slot ratios do not cover every slot or do not sum to 1
	ErrInvalidSlotRatios = errors.New("invalid meal slot ratios")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSessionNotFound is returned when a session id is unknown or expired
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrDocumentNotFound is returned when an archived PDF does not exist
	ErrDocumentNotFound = errors.New("document not found")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrCatalogUnavailable is returned by catalog sources that could not be read
	ErrCatalogUnavailable = errors.New("food catalog unavailable")

	// ErrUnauthorized is returned when admin credentials or tokens are rejected
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited is attached to requests rejected by the rate limiter
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNotConfigured is returned when an optional adapter was not set up
	ErrNotConfigured = errors.New("not configured")
)
