package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/models"
)

func bookmark(id string, status models.ItemStatus, fields ...string) *dataitem.Item {
	item := dataitem.NewWithKey(models.DataItemBookmark, status, "id", id)
	for i := 0; i+1 < len(fields); i += 2 {
		item.SetChild(fields[i], fields[i+1])
	}
	return item
}

func collectionOf(items ...*dataitem.Item) *dataitem.Collection {
	c := dataitem.NewCollection()
	for _, item := range items {
		_ = c.AddItem(item)
	}
	return c
}

func child(t *testing.T, item *dataitem.Item, name string) string {
	t.Helper()
	v, ok := item.Child(name)
	require.True(t, ok, "missing field %q on %s", name, item)
	return v
}

func TestMergeDirtySyncItems_ConflictLocalWins(t *testing.T) {
	client := collectionOf(bookmark("42", models.StatusModified, "title", "A"))
	server := collectionOf(bookmark("42", models.StatusAdded, "title", "B", "uri", "http://x"))

	onClient, onServer := MergeDirtySyncItems(client, server)

	require.Equal(t, 1, onServer.Len())
	up := onServer.First()
	assert.Equal(t, models.StatusModified, up.Status)
	assert.Equal(t, "A", child(t, up, "title"))
	assert.Equal(t, "http://x", child(t, up, "uri"))

	require.Equal(t, 1, onClient.Len())
	down := onClient.First()
	assert.Equal(t, models.StatusModified, down.Status)
	assert.Equal(t, "A", child(t, down, "title"))
	assert.Equal(t, "http://x", child(t, down, "uri"))

	assert.True(t, client.IsEmpty())
}

func TestMergeDirtySyncItems_IdenticalRecords(t *testing.T) {
	client := collectionOf(bookmark("1", models.StatusModified, "title", "same"))
	server := collectionOf(bookmark("1", models.StatusAdded, "title", "same"))

	onClient, onServer := MergeDirtySyncItems(client, server)
	assert.True(t, onClient.IsEmpty())
	assert.True(t, onServer.IsEmpty())
}

func TestMergeDirtySyncItems_LocalOnly(t *testing.T) {
	client := collectionOf(
		bookmark("new", models.StatusNone, "title", "fresh"),
		bookmark("gone", models.StatusDeleted),
	)

	onClient, onServer := MergeDirtySyncItems(client, dataitem.NewCollection())

	assert.True(t, onClient.IsEmpty())
	require.Equal(t, 2, onServer.Len())
	items := onServer.Items()
	_, id := items[0].PrimaryKey()
	assert.Equal(t, "new", id)
	assert.Equal(t, models.StatusAdded, items[0].Status)
	_, id = items[1].PrimaryKey()
	assert.Equal(t, "gone", id)
	assert.Equal(t, models.StatusDeleted, items[1].Status)
}

func TestMergeDirtySyncItems_ServerOnly(t *testing.T) {
	server := collectionOf(
		bookmark("s1", models.StatusAdded, "title", "one"),
		bookmark("s2", models.StatusAdded, "title", "two"),
	)

	onClient, onServer := MergeDirtySyncItems(dataitem.NewCollection(), server)

	assert.True(t, onServer.IsEmpty())
	require.Equal(t, 2, onClient.Len())
	_, first := onClient.First().PrimaryKey()
	assert.Equal(t, "s1", first)
}

func TestMergeDirtySyncItems_Deletions(t *testing.T) {
	tests := []struct {
		name         string
		local        models.ItemStatus
		remote       models.ItemStatus
		wantOnClient int
	}{
		{name: "both deleted", local: models.StatusDeleted, remote: models.StatusDeleted, wantOnClient: 0},
		{name: "deleted on server", local: models.StatusModified, remote: models.StatusDeleted, wantOnClient: 1},
		{name: "deleted locally", local: models.StatusDeleted, remote: models.StatusAdded, wantOnClient: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := collectionOf(bookmark("7", tt.local, "title", "local"))
			server := collectionOf(bookmark("7", tt.remote, "title", "remote"))

			onClient, onServer := MergeDirtySyncItems(client, server)

			assert.True(t, onServer.IsEmpty())
			require.Equal(t, tt.wantOnClient, onClient.Len())
			if tt.wantOnClient > 0 {
				assert.Equal(t, tt.remote, onClient.First().Status)
			}
		})
	}
}

func TestMergeDirtySyncItems_ServerItemsWithoutKeyIgnored(t *testing.T) {
	keyless := dataitem.New(models.DataItemNote, models.StatusAdded)
	keyless.SetChild("content", "orphan")

	onClient, onServer := MergeDirtySyncItems(dataitem.NewCollection(), collectionOf(keyless))
	assert.True(t, onClient.IsEmpty())
	assert.True(t, onServer.IsEmpty())
}

func TestMergeDirtySyncItems_MatchesAcrossSubKinds(t *testing.T) {
	// folders and bookmarks share a key space
	local := dataitem.NewWithKey(models.DataItemBookmarkFolder, models.StatusModified, "id", "f")
	local.SetChild("title", "Local")
	remote := dataitem.NewWithKey(models.DataItemBookmarkFolder, models.StatusAdded, "id", "f")
	remote.SetChild("title", "Remote")

	onClient, onServer := MergeDirtySyncItems(collectionOf(local), collectionOf(remote))

	assert.True(t, onClient.IsEmpty())
	require.Equal(t, 1, onServer.Len())
	assert.Equal(t, "Local", child(t, onServer.First(), "title"))
}
