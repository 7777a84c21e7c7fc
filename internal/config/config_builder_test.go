package config

import (
	"os"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0", Product: "env"}},
		&StructuredConfig{App: App{Product: "flags"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "flags", cfg.App.Product)
}

func TestBuild_RejectsNegativeMaxItems(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Sync: Sync{MaxItems: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidSyncConfigs)
}

// ── sources ───────────────────────────────────────────────────────────────────

func TestBuilder_EnvFlagsJSON(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"workers": map[string]any{"long_interval": "2m"},
		"sync":    map[string]any{"supports": []string{"note"}},
	})
	t.Setenv("ADAPTER_ADDRESS", "https://env.example")
	t.Setenv("STORAGE_DB_DSN", "/tmp/env.db")

	cfg, err := newConfigBuilder().
		withEnv().
		withArgs([]string{"-a", "https://flag.example", "-c", path}).
		withJSON().
		build()

	require.NoError(t, err)
	assert.Equal(t, "https://flag.example", cfg.Adapter.ServerAddress)
	assert.Equal(t, "/tmp/env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 2*time.Minute, cfg.Workers.LongInterval)
	assert.Equal(t, []string{"note"}, cfg.Sync.Supports)
}

func TestBuilder_MissingJSONFile(t *testing.T) {
	_, err := newConfigBuilder().
		withArgs([]string{"-config", "/does/not/exist.json"}).
		withJSON().
		build()

	assert.Error(t, err)
}

func TestBuilder_BadFlag(t *testing.T) {
	_, err := newConfigBuilder().withArgs([]string{"-no-such-flag"}).build()
	assert.Error(t, err)
}
