package dataitem

import (
	"fmt"
	"testing"

	"github.com/fanyer/presto-sub061/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(c *Collection) []string {
	out := make([]string, 0, c.Len())
	for item := range c.All() {
		_, v := item.PrimaryKey()
		out = append(out, v)
	}
	return out
}

func fill(t *testing.T, c *Collection, values ...string) []*Item {
	t.Helper()
	items := make([]*Item, 0, len(values))
	for _, v := range values {
		item := newBookmark(models.StatusAdded, v)
		require.NoError(t, c.AddItem(item))
		items = append(items, item)
	}
	return items
}

// ── ordering ────────────────────────────────────────────────────────────────

func TestCollection_AddItemKeepsInsertionOrder(t *testing.T) {
	c := NewCollection()
	fill(t, c, "a", "b", "c")

	assert.Equal(t, []string{"a", "b", "c"}, ids(c))
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "a", c.First().value)
	assert.Equal(t, "c", c.Last().value)
}

func TestCollection_AddBeforeAndAfter(t *testing.T) {
	c := NewCollection()
	items := fill(t, c, "a", "b", "c")

	require.NoError(t, c.AddBefore(items[2], items[0]))
	assert.Equal(t, []string{"c", "a", "b"}, ids(c))

	require.NoError(t, c.AddAfter(items[2], items[1]))
	assert.Equal(t, []string{"a", "b", "c"}, ids(c))

	d := newBookmark(models.StatusAdded, "d")
	require.NoError(t, c.AddAfter(d, items[0]))
	assert.Equal(t, []string{"a", "d", "b", "c"}, ids(c))
}

func TestCollection_AnchorMustBeMember(t *testing.T) {
	c := NewCollection()
	fill(t, c, "a")
	stranger := newBookmark(models.StatusAdded, "x")

	err := c.AddBefore(newBookmark(models.StatusAdded, "y"), stranger)
	assert.ErrorIs(t, err, ErrNotMember)

	err = c.AddAfter(newBookmark(models.StatusAdded, "y"), stranger)
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestCollection_NilItem(t *testing.T) {
	c := NewCollection()
	assert.ErrorIs(t, c.AddItem(nil), ErrNilItem)
	assert.ErrorIs(t, c.AddFirst(nil), ErrNilItem)
}

func TestCollection_PrecedesAndPosition(t *testing.T) {
	c := NewCollection()
	items := fill(t, c, "a", "b", "c")

	assert.True(t, c.Precedes(items[0], items[2]))
	assert.False(t, c.Precedes(items[2], items[0]))
	assert.False(t, c.Precedes(items[1], items[1]))
	assert.Equal(t, 1, c.Position(items[1]))
	assert.Equal(t, -1, c.Position(newBookmark(models.StatusAdded, "z")))
}

// ── membership ──────────────────────────────────────────────────────────────

func TestCollection_ItemBelongsToOneCollection(t *testing.T) {
	first := NewCollection()
	second := NewCollection()
	items := fill(t, first, "a", "b")

	require.NoError(t, second.AddItem(items[0]))

	assert.False(t, first.Contains(items[0]))
	assert.True(t, second.Contains(items[0]))
	assert.Equal(t, []string{"b"}, ids(first))
	assert.Same(t, second, items[0].Owner())
}

func TestCollection_RemoveItem(t *testing.T) {
	c := NewCollection()
	items := fill(t, c, "a", "b")

	assert.True(t, c.RemoveItem(items[0]))
	assert.False(t, c.RemoveItem(items[0]))
	assert.Nil(t, items[0].Owner())
	assert.Equal(t, []string{"b"}, ids(c))
}

func TestCollection_AllAllowsRemovalWhileIterating(t *testing.T) {
	c := NewCollection()
	fill(t, c, "a", "b", "c", "d")

	for item := range c.All() {
		if item.value == "b" || item.value == "c" {
			c.RemoveItem(item)
		}
	}

	assert.Equal(t, []string{"a", "d"}, ids(c))
}

func TestCollection_AppendAndPrependCollection(t *testing.T) {
	c := NewCollection()
	fill(t, c, "c", "d")
	front := NewCollection()
	fill(t, front, "a", "b")
	back := NewCollection()
	fill(t, back, "e")

	c.PrependCollection(front)
	c.AppendCollection(back)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(c))
	assert.True(t, front.IsEmpty())
	assert.True(t, back.IsEmpty())
}

func TestCollection_Clear(t *testing.T) {
	c := NewHashedCollection()
	items := fill(t, c, "a", "b")

	c.Clear()

	assert.Zero(t, c.Len())
	assert.Nil(t, items[0].Owner())
	assert.Nil(t, c.FindPrimaryKey(models.DataItemBookmark, "id", "a"))
}

// ── primary key lookup ──────────────────────────────────────────────────────

func TestCollection_FindPrimaryKeyUsesBaseType(t *testing.T) {
	for _, c := range []*Collection{NewCollection(), NewHashedCollection()} {
		folder := NewWithKey(models.DataItemBookmarkFolder, models.StatusAdded, "id", "f")
		require.NoError(t, c.AddItem(folder))

		assert.Same(t, folder, c.FindPrimaryKey(models.DataItemBookmark, "id", "f"))
		assert.Same(t, folder, c.FindPrimaryKey(models.DataItemBookmarkSeparator, "id", "f"))
		assert.Nil(t, c.FindPrimaryKey(models.DataItemNote, "id", "f"))
		assert.Nil(t, c.FindPrimaryKey(models.DataItemBookmark, "id", "g"))
	}
}

func TestCollection_HashedIndexFollowsRemoval(t *testing.T) {
	c := NewHashedCollection()
	items := fill(t, c, "a", "b")

	c.RemoveItem(items[0])

	assert.Nil(t, c.FindPrimaryKey(models.DataItemBookmark, "id", "a"))
	assert.Same(t, items[1], c.FindPrimaryKey(models.DataItemBookmark, "id", "b"))
}

func TestCollection_HashedIndexAfterSetPrimaryKey(t *testing.T) {
	c := NewHashedCollection()
	item := New(models.DataItemNote, models.StatusAdded)
	require.NoError(t, c.AddItem(item))
	require.Nil(t, c.FindPrimaryKey(models.DataItemNote, "id", "n1"))

	require.NoError(t, item.SetPrimaryKey("id", "n1"))

	assert.Same(t, item, c.FindPrimaryKey(models.DataItemNote, "id", "n1"))
}

func TestCollection_IndexDegradesToLinearScan(t *testing.T) {
	c := NewHashedCollection(WithIndexLimit(3))
	values := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		values = append(values, fmt.Sprintf("id-%d", i))
	}
	items := fill(t, c, values...)

	require.True(t, c.IndexDegraded())
	for i, v := range values {
		assert.Same(t, items[i], c.FindPrimaryKey(models.DataItemBookmark, "id", v))
	}
	assert.Nil(t, c.FindPrimaryKey(models.DataItemBookmark, "id", "missing"))
}

func TestCollection_DegradedLookupMatchesIndexedLookup(t *testing.T) {
	indexed := NewHashedCollection()
	degraded := NewHashedCollection(WithIndexLimit(1))
	for i := 0; i < 5; i++ {
		v := fmt.Sprintf("%d", i)
		require.NoError(t, indexed.AddItem(newBookmark(models.StatusAdded, v)))
		require.NoError(t, degraded.AddItem(newBookmark(models.StatusAdded, v)))
	}

	require.False(t, indexed.IndexDegraded())
	require.True(t, degraded.IndexDegraded())
	for i := 0; i < 6; i++ {
		v := fmt.Sprintf("%d", i)
		a := indexed.FindPrimaryKey(models.DataItemBookmark, "id", v)
		b := degraded.FindPrimaryKey(models.DataItemBookmark, "id", v)
		assert.Equal(t, a == nil, b == nil, v)
		if a != nil {
			assert.True(t, a.Equal(b))
		}
	}
}

func TestCollection_FindReference(t *testing.T) {
	c := NewCollection()
	items := fill(t, c, "a")

	assert.Same(t, items[0], c.FindReference(models.DataItemBookmark, "a"))
	assert.Nil(t, c.FindReference(models.DataItemBookmark, ""))
}

func TestCollection_RemoveWhere(t *testing.T) {
	c := NewCollection()
	fill(t, c, "a", "b", "c")
	require.NoError(t, c.AddItem(NewWithKey(models.DataItemNote, models.StatusAdded, "id", "n")))

	removed := c.RemoveWhere(func(i *Item) bool { return i.Type == models.DataItemBookmark })

	assert.Equal(t, 3, removed)
	assert.Equal(t, []string{"n"}, ids(c))
}
