// Package blob stores uploaded document files. Document metadata lives in
// the state store; only the bytes are kept here.
package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

const (
	DriverMemory     = "memory"
	DriverFilesystem = "fs"
	DriverS3         = "s3"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("blob not found")

// ErrInvalidKey is returned for keys that are empty or would resolve outside
// the store.
var ErrInvalidKey = errors.New("invalid blob key")

type Info struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Store is a flat key to bytes namespace. Put overwrites an existing key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Driver() string
}

// Config selects and configures a blob driver.
type Config struct {
	Driver        string
	FSRoot        string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3PathStyle   bool
	S3AccessKeyID string
	S3SecretKey   string
}

// Open constructs the store named by cfg.Driver. An empty driver means memory.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverFilesystem:
		return NewFS(cfg.FSRoot)
	case DriverS3:
		return NewS3(ctx, cfg)
	default:
		return nil, errors.New("unknown blob driver " + cfg.Driver)
	}
}
