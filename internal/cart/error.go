package cart

import "errors"

var (
	// -- Persistence --
	// The in-memory cart stays authoritative when this is returned.
	ErrStorageUnavailable = errors.New("cart storage unavailable")
)
