package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage key not found")

// Storage holds opaque blobs under string keys. Set replaces the whole value.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
