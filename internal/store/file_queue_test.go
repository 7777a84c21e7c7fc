package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanyer/presto-sub061/internal/codec"
	"github.com/fanyer/presto-sub061/internal/config"
	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/models"
)

func configForDir(dir string) config.ClientStorage {
	return config.ClientStorage{
		DB:       config.ClientDB{DSN: filepath.Join(dir, "sync.db")},
		QueueDir: dir,
	}
}

func queueBookmark(id, title string) *dataitem.Item {
	item := dataitem.NewWithKey(models.DataItemBookmark, models.StatusAdded, "id", id)
	item.SetChild("title", title)
	return item
}

func TestNewFileQueueStore_RequiresDir(t *testing.T) {
	_, err := NewFileQueueStore("", logger.Nop())
	assert.ErrorIs(t, err, ErrQueueDirRequired)
}

func TestFileQueueStore_MissingFilesAreEmpty(t *testing.T) {
	s, err := NewFileQueueStore(filepath.Join(t.TempDir(), "nested"), logger.Nop())
	require.NoError(t, err)

	active, outgoing, err := s.LoadQueue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)
	assert.Empty(t, outgoing)
}

func TestFileQueueStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileQueueStore(dir, logger.Nop())
	require.NoError(t, err)

	active := []*dataitem.Item{queueBookmark("a", "First"), queueBookmark("b", "Second")}
	outgoing := []*dataitem.Item{queueBookmark("c", "Sent")}
	require.NoError(t, s.SaveQueue(ctx, active, outgoing))

	assert.FileExists(t, filepath.Join(dir, QueueFileName))
	assert.FileExists(t, filepath.Join(dir, OutgoingFileName))

	gotActive, gotOutgoing, err := s.LoadQueue(ctx)
	require.NoError(t, err)
	require.Len(t, gotActive, 2)
	require.Len(t, gotOutgoing, 1)
	assert.True(t, gotActive[0].Equal(active[0]))
	assert.True(t, gotActive[1].Equal(active[1]))
	assert.True(t, gotOutgoing[0].Equal(outgoing[0]))

	title, _ := gotActive[1].Child("title")
	assert.Equal(t, "Second", title)
}

func TestFileQueueStore_EmptyOutgoingRemovesFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileQueueStore(dir, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.SaveQueue(ctx, nil, []*dataitem.Item{queueBookmark("c", "Sent")}))
	require.NoError(t, s.SaveQueue(ctx, []*dataitem.Item{queueBookmark("d", "Next")}, nil))

	assert.NoFileExists(t, filepath.Join(dir, OutgoingFileName))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestReadQueueFile_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), QueueFileName)
	require.NoError(t, os.WriteFile(path, []byte("<link><data><bookmark"), 0o600))

	_, err := ReadQueueFile(path)
	assert.ErrorIs(t, err, codec.ErrParse)
}

func TestFileQueueStore_CancelledContext(t *testing.T) {
	s, err := NewFileQueueStore(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SaveQueue(ctx, nil, nil), context.Canceled)
}
