package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals malformed request parameters.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrIntersectionUnsupported signals that the store cannot run a precomputed set intersection.
	ErrIntersectionUnsupported = errors.New("set intersection not supported by backend")
	// ErrPrimarySearch signals a failure of the required listing search.
	ErrPrimarySearch = errors.New("primary listing search failed")
)
