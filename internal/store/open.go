package store

import "fmt"

// Options selects and configures a backend driver.
type Options struct {
	Driver        string
	SQLitePath    string
	PostgresDSN   string
	MongoURI      string
	MongoDatabase string
}

// Open constructs the backend named by opts.Driver.
func Open(opts Options) (Backend, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemoryBackend(), nil
	case DriverSQLite:
		return NewSQLiteBackend(opts.SQLitePath)
	case DriverPostgres:
		return NewPostgresBackend(opts.PostgresDSN)
	case DriverMongoDB:
		return NewMongoDB(opts.MongoURI, opts.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
