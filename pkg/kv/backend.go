// Package kv provides the key-value backends the diary collection is persisted in.
// Values are opaque byte strings replaced whole on every write.
package kv

import "context"

// Backend is a minimal durable key-value store.
type Backend interface {
	// Get returns the value stored under key. found is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}
