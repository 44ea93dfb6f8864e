// Package store persists the portal's record lists. Every list lives as one
// JSON array under a fixed key in a key-value Backend.
package store

import "context"

// Backend is a flat key-value namespace holding one JSON document per key.
type Backend interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all values together; drivers that support transactions
	// apply them atomically.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Close(ctx context.Context) error
	Driver() string
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
)
