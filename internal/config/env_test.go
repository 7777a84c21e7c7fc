// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_PRODUCT":        "presto",
		"APP_SYSTEM":         "linux",
		"APP_SYSTEM_VERSION": "6.1",
		"APP_VERSION":        "2.0.1",
		"APP_HASH_KEY":       "secret",

		"ADAPTER_ADDRESS":         "https://sync.example",
		"ADAPTER_AUTH_ADDRESS":    "https://auth.example",
		"ADAPTER_LOADING_TIMEOUT": "45s",
		"ADAPTER_AUTH_TIMEOUT":    "20s",
		"ADAPTER_COMPRESS":        "true",
		"ADAPTER_LOGIN":           "john",
		"ADAPTER_PASSWORD":        "pw",

		"STORAGE_DB_DSN":            "/var/lib/sync/state.db",
		"STORAGE_QUEUE_DIR":         "/var/lib/sync/queue",
		"STORAGE_QUEUE_MEMORY":      "true",
		"STORAGE_QUEUE_WRITE_DELAY": "2s",

		"WORKERS_LONG_INTERVAL":  "90s",
		"WORKERS_SHORT_INTERVAL": "5s",

		"SYNC_SUPPORTS":  "bookmark,note",
		"SYNC_COMPLETE":  "true",
		"SYNC_MAX_ITEMS": "50",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "presto", cfg.App.Product)
	assert.Equal(t, "linux", cfg.App.System)
	assert.Equal(t, "6.1", cfg.App.SystemVersion)
	assert.Equal(t, "2.0.1", cfg.App.Version)
	assert.Equal(t, "secret", cfg.App.HashKey)

	assert.Equal(t, "https://sync.example", cfg.Adapter.ServerAddress)
	assert.Equal(t, "https://auth.example", cfg.Adapter.AuthAddress)
	assert.Equal(t, 45*time.Second, cfg.Adapter.LoadingTimeout)
	assert.Equal(t, 20*time.Second, cfg.Adapter.AuthTimeout)
	assert.True(t, cfg.Adapter.Compress)
	assert.Equal(t, "john", cfg.Adapter.Login)
	assert.Equal(t, "pw", cfg.Adapter.Password)

	assert.Equal(t, "/var/lib/sync/state.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/var/lib/sync/queue", cfg.Storage.Queue.Dir)
	assert.True(t, cfg.Storage.Queue.Memory)
	assert.Equal(t, 2*time.Second, cfg.Storage.Queue.WriteDelay)

	assert.Equal(t, 90*time.Second, cfg.Workers.LongInterval)
	assert.Equal(t, 5*time.Second, cfg.Workers.ShortInterval)

	assert.Equal(t, []string{"bookmark", "note"}, cfg.Sync.Supports)
	assert.True(t, cfg.Sync.Complete)
	assert.Equal(t, 50, cfg.Sync.MaxItems)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("WORKERS_LONG_INTERVAL", "soon")

	err := parseEnv(&StructuredConfig{})
	assert.Error(t, err)
}
