// Package store persists per-owner state as opaque values under string keys.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrClosed   = errors.New("store_closed")
)

// Store is the persisted key/value collaborator. Get returns ErrNotFound
// for keys that were never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}
