// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the sync
// client. It is populated by merging values from environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the client description sent to the server.
	App App `envPrefix:"APP_"`

	// Adapter holds the sync server endpoints, timeouts and credentials.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the sync state database and the disk queue settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds the scheduling intervals of the sync job.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds the enabled data types and full-sync preference.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App describes the running client.
type App struct {
	// Product is the product name sent in <client_info>.
	// Env: APP_PRODUCT
	Product string `env:"PRODUCT"`

	// System and SystemVersion describe the operating system.
	// Env: APP_SYSTEM, APP_SYSTEM_VERSION
	System        string `env:"SYSTEM"`
	SystemVersion string `env:"SYSTEM_VERSION"`

	// Version is the client build. Overridden by the linker-injected
	// build version when that is set.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// HashKey signs request bodies with HMAC-SHA256 (HashSHA256 header).
	// Empty disables signing.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`
}

// Adapter holds outbound connection settings.
type Adapter struct {
	// ServerAddress is the base URL of the sync server.
	// Env: ADAPTER_ADDRESS
	ServerAddress string `env:"ADDRESS"`

	// AuthAddress is the base URL of the token endpoint. Defaults to
	// ServerAddress.
	// Env: ADAPTER_AUTH_ADDRESS
	AuthAddress string `env:"AUTH_ADDRESS"`

	// LoadingTimeout bounds a whole sync exchange.
	// Env: ADAPTER_LOADING_TIMEOUT
	LoadingTimeout time.Duration `env:"LOADING_TIMEOUT"`

	// AuthTimeout bounds token acquisition.
	// Env: ADAPTER_AUTH_TIMEOUT
	AuthTimeout time.Duration `env:"AUTH_TIMEOUT"`

	// Compress enables gzip request bodies.
	// Env: ADAPTER_COMPRESS
	Compress bool `env:"COMPRESS"`

	// Login and Password are the account credentials.
	// Env: ADAPTER_LOGIN, ADAPTER_PASSWORD
	Login    string `env:"LOGIN"`
	Password string `env:"PASSWORD"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`

	// Queue holds the disk queue settings.
	Queue Queue `envPrefix:"QUEUE_"`
}

// DB holds the local database settings.
type DB struct {
	// DSN is the SQLite file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Queue holds disk persistence settings of the outgoing queue.
type Queue struct {
	// Dir is the directory of the queue files. Defaults to the directory
	// of the database file.
	// Env: STORAGE_QUEUE_DIR
	Dir string `env:"DIR"`

	// Memory keeps the queue in memory only.
	// Env: STORAGE_QUEUE_MEMORY
	Memory bool `env:"MEMORY"`

	// WriteDelay coalesces queue writes.
	// Env: STORAGE_QUEUE_WRITE_DELAY
	WriteDelay time.Duration `env:"WRITE_DELAY"`
}

// Workers holds the sync job intervals.
type Workers struct {
	// LongInterval is used when nothing is queued.
	// Env: WORKERS_LONG_INTERVAL
	LongInterval time.Duration `env:"LONG_INTERVAL"`

	// ShortInterval is used while local changes are queued.
	// Env: WORKERS_SHORT_INTERVAL
	ShortInterval time.Duration `env:"SHORT_INTERVAL"`
}

// Sync holds what to synchronize.
type Sync struct {
	// Supports lists the enabled supports types by wire name.
	// Env: SYNC_SUPPORTS (comma separated)
	Supports []string `env:"SUPPORTS" envSeparator:","`

	// Complete forces a full reconciliation on the next cycle.
	// Env: SYNC_COMPLETE
	Complete bool `env:"COMPLETE"`

	// MaxItems caps the number of items sent per request.
	// Env: SYNC_MAX_ITEMS
	MaxItems int `env:"MAX_ITEMS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
