package config

import "time"

const defaultPort = 3000

const defaultOperationTimeout = 3 * time.Second

var defaultMongo = Mongo{
	URI:      "mongodb://127.0.0.1:27017",
	Database: "parcelDB",
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultMongo returns the default document store settings.
func DefaultMongo() Mongo {
	return defaultMongo
}

// DefaultOperationTimeout returns the default per-operation timeout.
func DefaultOperationTimeout() time.Duration {
	return defaultOperationTimeout
}
