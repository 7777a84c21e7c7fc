package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/internal/store"
	"github.com/fanyer/presto-sub061/models"
)

func bookmark(id, title string, fields ...string) *dataitem.Item {
	item := dataitem.NewWithKey(models.DataItemBookmark, models.StatusAdded, "id", id)
	item.SetChild("title", title)
	for i := 0; i+1 < len(fields); i += 2 {
		item.SetChild(fields[i], fields[i+1])
	}
	return item
}

func writeQueue(t *testing.T, active, outgoing []*dataitem.Item) string {
	t.Helper()
	dir := t.TempDir()
	s, err := store.NewFileQueueStore(dir, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.SaveQueue(context.Background(), active, outgoing))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ── Command tree ─────────────────────────────────────────────────────────────

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"dump", "count", "validate"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCommand_FormatFlag(t *testing.T) {
	cmd := newRootCommand()
	flag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "text", flag.DefValue)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	dir := writeQueue(t, nil, nil)
	_, err := execute(t, "count", dir, "--format", "yaml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestRootCommand_MissingPath(t *testing.T) {
	_, err := execute(t, "count", filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

// ── dump ─────────────────────────────────────────────────────────────────────

func TestDump_Text(t *testing.T) {
	dir := writeQueue(t, []*dataitem.Item{bookmark("a", "First"), bookmark("b", "Second")}, nil)

	out, err := execute(t, "dump", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "id=a")
	assert.Contains(t, out, "title: Second")
}

func TestDump_JSON(t *testing.T) {
	dir := writeQueue(t, []*dataitem.Item{bookmark("a", "First")}, []*dataitem.Item{bookmark("c", "Sent")})

	out, err := execute(t, "dump", dir, "--format", "json")
	require.NoError(t, err)

	var items []dumpedItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Value)
	assert.Equal(t, filepath.Join(dir, store.OutgoingFileName), items[1].File)
}

func TestDump_SingleFile(t *testing.T) {
	dir := writeQueue(t, []*dataitem.Item{bookmark("a", "First")}, []*dataitem.Item{bookmark("c", "Sent")})

	out, err := execute(t, "dump", filepath.Join(dir, store.OutgoingFileName))
	require.NoError(t, err)
	assert.Contains(t, out, "id=c")
	assert.NotContains(t, out, "id=a")
}

// ── count ────────────────────────────────────────────────────────────────────

func TestCount_JSON(t *testing.T) {
	dir := writeQueue(t, []*dataitem.Item{bookmark("a", "A"), bookmark("b", "B")}, nil)

	out, err := execute(t, "count", dir, "--format", "json")
	require.NoError(t, err)

	var counts []fileCount
	require.NoError(t, json.Unmarshal([]byte(out), &counts))
	require.Len(t, counts, 2)
	assert.Equal(t, 2, counts[0].Total)
	assert.Equal(t, 2, counts[0].ByType[models.DataItemBookmark.String()])
	assert.Zero(t, counts[1].Total)
}

// ── validate ─────────────────────────────────────────────────────────────────

func TestValidate_OK(t *testing.T) {
	dir := writeQueue(t, []*dataitem.Item{bookmark("a", "A"), bookmark("b", "B", "previous", "a")}, nil)

	out, err := execute(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
}

func TestValidate_OrderViolation(t *testing.T) {
	dir := writeQueue(t, []*dataitem.Item{bookmark("b", "B", "previous", "a"), bookmark("a", "A")}, nil)

	out, err := execute(t, "validate", dir)
	assert.ErrorIs(t, err, errQueueInvalid)
	assert.Contains(t, out, `references later previous "a"`)
}

func TestValidate_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, store.QueueFileName), []byte("<link><data><bookmark"), 0o600))

	_, err := execute(t, "validate", dir)
	assert.ErrorIs(t, err, errQueueInvalid)
}
