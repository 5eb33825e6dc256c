// Package metadata is a small key/value table in the local database. The
// session store keeps its persisted keys here.
package metadata

import (
	"context"
)

// Repository reads and writes raw values by key. Get returns (nil, nil)
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context, prefix string) (map[string][]byte, error)
}
