package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON names and
// durations written as strings ("30s") or nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		Product       string `json:"product"`
		System        string `json:"system"`
		SystemVersion string `json:"system_version"`
		Version       string `json:"version"`
		HashKey       string `json:"hash_key"`
	} `json:"app,omitempty"`

	Adapter struct {
		ServerAddress  string   `json:"server_address"`
		AuthAddress    string   `json:"auth_address"`
		LoadingTimeout Duration `json:"loading_timeout"`
		AuthTimeout    Duration `json:"auth_timeout"`
		Compress       bool     `json:"compress"`
		Login          string   `json:"login"`
		Password       string   `json:"password"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Queue struct {
			Dir        string   `json:"dir"`
			Memory     bool     `json:"memory"`
			WriteDelay Duration `json:"write_delay"`
		} `json:"queue,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		LongInterval  Duration `json:"long_interval"`
		ShortInterval Duration `json:"short_interval"`
	} `json:"workers,omitempty"`

	Sync struct {
		Supports []string `json:"supports"`
		Complete bool     `json:"complete"`
		MaxItems int      `json:"max_items"`
	} `json:"sync,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Product:       jsonCfg.App.Product,
			System:        jsonCfg.App.System,
			SystemVersion: jsonCfg.App.SystemVersion,
			Version:       jsonCfg.App.Version,
			HashKey:       jsonCfg.App.HashKey,
		},
		Adapter: Adapter{
			ServerAddress:  jsonCfg.Adapter.ServerAddress,
			AuthAddress:    jsonCfg.Adapter.AuthAddress,
			LoadingTimeout: time.Duration(jsonCfg.Adapter.LoadingTimeout),
			AuthTimeout:    time.Duration(jsonCfg.Adapter.AuthTimeout),
			Compress:       jsonCfg.Adapter.Compress,
			Login:          jsonCfg.Adapter.Login,
			Password:       jsonCfg.Adapter.Password,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
			Queue: Queue{
				Dir:        jsonCfg.Storage.Queue.Dir,
				Memory:     jsonCfg.Storage.Queue.Memory,
				WriteDelay: time.Duration(jsonCfg.Storage.Queue.WriteDelay),
			},
		},
		Workers: Workers{
			LongInterval:  time.Duration(jsonCfg.Workers.LongInterval),
			ShortInterval: time.Duration(jsonCfg.Workers.ShortInterval),
		},
		Sync: Sync{
			Supports: jsonCfg.Sync.Supports,
			Complete: jsonCfg.Sync.Complete,
			MaxItems: jsonCfg.Sync.MaxItems,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
