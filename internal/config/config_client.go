package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fanyer/presto-sub061/models"
)

// Defaults applied by GetClientConfig to unset values.
const (
	DefaultLoadingTimeout = 60 * time.Second
	DefaultAuthTimeout    = 60 * time.Second
	DefaultWriteDelay     = 5 * time.Second
	DefaultLongInterval   = 70 * time.Second
	DefaultShortInterval  = 10 * time.Second
	DefaultMaxItems       = 200
	DefaultProduct        = "presto-sync"
)

// ClientApp holds the client description.
type ClientApp struct {
	Info    models.SystemInfo
	HashKey string
}

// ClientAdapter holds the transport settings.
type ClientAdapter struct {
	ServerAddress  string
	AuthAddress    string
	LoadingTimeout time.Duration
	AuthTimeout    time.Duration
	Compress       bool
	Credentials    models.Credentials
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	DSN string
}

// ClientStorage groups storage settings.
type ClientStorage struct {
	DB ClientDB
	// QueueDir is empty when the queue is kept in memory.
	QueueDir   string
	WriteDelay time.Duration
}

// ClientWorkers contains the sync job intervals.
type ClientWorkers struct {
	LongInterval  time.Duration
	ShortInterval time.Duration
}

// ClientSync holds the initial sync preferences.
type ClientSync struct {
	Supports models.SupportsSet
	Complete bool
	MaxItems int
}

// ClientConfig is the validated configuration view used by the client.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Sync    ClientSync
}

// GetClientConfig builds and validates the client configuration from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	return newClientConfig(cfg)
}

// newClientConfig maps cfg, fills defaults and validates the result.
func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	supports, err := parseSupports(cfg.Sync.Supports)
	if err != nil {
		return nil, err
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Info: models.SystemInfo{
				Build:         cfg.App.Version,
				System:        cfg.App.System,
				SystemVersion: cfg.App.SystemVersion,
				Product:       orDefault(cfg.App.Product, DefaultProduct),
			},
			HashKey: cfg.App.HashKey,
		},
		Adapter: ClientAdapter{
			ServerAddress:  cfg.Adapter.ServerAddress,
			AuthAddress:    orDefault(cfg.Adapter.AuthAddress, cfg.Adapter.ServerAddress),
			LoadingTimeout: durationOrDefault(cfg.Adapter.LoadingTimeout, DefaultLoadingTimeout),
			AuthTimeout:    durationOrDefault(cfg.Adapter.AuthTimeout, DefaultAuthTimeout),
			Compress:       cfg.Adapter.Compress,
			Credentials: models.Credentials{
				Username: cfg.Adapter.Login,
				Password: cfg.Adapter.Password,
			},
		},
		Storage: ClientStorage{
			DB:         ClientDB{DSN: cfg.Storage.DB.DSN},
			WriteDelay: durationOrDefault(cfg.Storage.Queue.WriteDelay, DefaultWriteDelay),
		},
		Workers: ClientWorkers{
			LongInterval:  durationOrDefault(cfg.Workers.LongInterval, DefaultLongInterval),
			ShortInterval: durationOrDefault(cfg.Workers.ShortInterval, DefaultShortInterval),
		},
		Sync: ClientSync{
			Supports: supports,
			Complete: cfg.Sync.Complete,
			MaxItems: cfg.Sync.MaxItems,
		},
	}

	if clientCfg.Sync.MaxItems <= 0 {
		clientCfg.Sync.MaxItems = DefaultMaxItems
	}
	if !cfg.Storage.Queue.Memory {
		clientCfg.Storage.QueueDir = cfg.Storage.Queue.Dir
		if clientCfg.Storage.QueueDir == "" && cfg.Storage.DB.DSN != "" {
			clientCfg.Storage.QueueDir = filepath.Dir(cfg.Storage.DB.DSN)
		}
	}

	return clientCfg, clientCfg.validate()
}

// parseSupports resolves supports names. An empty list enables every
// implemented supports type.
func parseSupports(names []string) (models.SupportsSet, error) {
	var set models.SupportsSet
	if len(names) == 0 {
		for _, s := range models.AllSupports() {
			if s.Implemented() {
				set = set.With(s, true)
			}
		}
		return set, nil
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		s, ok := models.ParseSupports(name)
		if !ok {
			return 0, fmt.Errorf("%w: unknown supports type %q", ErrInvalidSyncConfigs, name)
		}
		set = set.With(s, true)
	}
	return set, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func durationOrDefault(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
