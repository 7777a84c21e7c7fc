package dataitem

import (
	"testing"

	"github.com/fanyer/presto-sub061/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_PrimaryKeyIsImmutable(t *testing.T) {
	item := New(models.DataItemNote, models.StatusAdded)
	require.False(t, item.HasPrimaryKey())

	require.NoError(t, item.SetPrimaryKey("id", "1"))
	require.NoError(t, item.SetPrimaryKey("id", "1"))
	err := item.SetPrimaryKey("id", "2")

	assert.ErrorIs(t, err, ErrPrimaryKeyImmutable)
	k, v := item.PrimaryKey()
	assert.Equal(t, "id", k)
	assert.Equal(t, "1", v)
}

func TestItem_SameRecordAcrossSubKinds(t *testing.T) {
	folder := NewWithKey(models.DataItemBookmarkFolder, models.StatusAdded, "id", "x")
	bookmark := NewWithKey(models.DataItemBookmark, models.StatusModified, "id", "x")
	note := NewWithKey(models.DataItemNote, models.StatusModified, "id", "x")

	assert.True(t, folder.SameRecord(bookmark))
	assert.False(t, folder.SameRecord(note))
	assert.False(t, folder.SameRecord(nil))
}

func TestItem_SetFieldReportsChange(t *testing.T) {
	item := New(models.DataItemBookmark, models.StatusAdded)

	assert.True(t, item.SetChild("title", "a"))
	assert.False(t, item.SetChild("title", "a"))
	assert.True(t, item.SetChild("title", "b"))
	assert.True(t, item.SetAttribute("parent", "p"))

	v, ok := item.Lookup("parent")
	assert.True(t, ok)
	assert.Equal(t, "p", v)

	item.RemoveChild("title")
	_, ok = item.Child("title")
	assert.False(t, ok)

	item.RemoveAttribute("parent")
	assert.False(t, item.HasAttributes())
}

func TestItem_References(t *testing.T) {
	bm := NewWithKey(models.DataItemBookmark, models.StatusAdded, "id", "b")
	bm.SetAttribute("previous", "a")
	bm.SetAttribute("parent", "f")
	assert.Equal(t, "a", bm.PreviousRef())
	assert.Equal(t, "f", bm.ParentRef())

	sd := NewWithKey(models.DataItemSpeeddial, models.StatusAdded, "position", "1")
	sd.SetAttribute("previous", "0")
	sd.SetAttribute("parent", "x")
	assert.Empty(t, sd.PreviousRef())
	assert.Empty(t, sd.ParentRef())
}

func TestItem_CopyIsDetached(t *testing.T) {
	c := NewCollection()
	item := NewWithKey(models.DataItemBookmark, models.StatusAdded, "id", "b")
	item.SetChild("title", "t")
	require.NoError(t, c.AddItem(item))

	cp := item.Copy()
	cp.SetChild("title", "changed")

	assert.Nil(t, cp.Owner())
	v, _ := item.Child("title")
	assert.Equal(t, "t", v)
	assert.False(t, item.Equal(cp))
}

func TestItem_Remove(t *testing.T) {
	c := NewCollection()
	item := NewWithKey(models.DataItemBookmark, models.StatusAdded, "id", "b")
	require.NoError(t, c.AddItem(item))

	item.Remove()
	item.Remove()

	assert.Zero(t, c.Len())
}
