package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(b), &entry))
	return entry
}

// TestNewLogger_Fields verifies role, timestamp and caller fields.
func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test-role")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeLine(t, buf.Bytes())
	assert.Equal(t, "test-role", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited-role")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)
	child.Info().Msg("child message")

	assert.Equal(t, "inherited-role", decodeLine(t, buf.Bytes())["role"])
}

// ── cycle context ─────────────────────────────────────────────────────────────

func TestWithCycle_TagsContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger("client")
	base.Logger = base.Output(&buf)

	ctx, cycleLog := base.WithCycle(context.Background(), "01HZX")
	cycleLog.Info().Msg("direct")
	FromContext(ctx).Info().Msg("via context")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, "01HZX", decodeLine(t, []byte(line))["cycle_id"])
	}
}

func TestFromContext_NotNil(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

// ── file output ───────────────────────────────────────────────────────────────

func TestNewFileLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.log")

	l := NewFileLogger("file-role", path)
	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file-role", decodeLine(t, data)["role"])
}

func TestNewFileLogger_FallsBackWhenDirMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "sync.log")

	l := NewFileLogger("fallback", path)

	require.NotNil(t, l)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
