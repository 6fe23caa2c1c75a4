// Package kvstore abstracts the client's durable key-value state so the
// storage medium can be swapped for an in-memory substitute in tests.
package kvstore

// Store persists opaque string values by key.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
