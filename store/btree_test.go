package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache layering.
func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	k, v := []byte("french"), []byte("fry")
	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, base.Set(k, v))
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	got, err = cache.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	has, err := cache.Has(k2)
	require.NoError(t, err)
	assert.True(t, has)
	has, err = base.Has(k2)
	require.NoError(t, err)
	assert.False(t, has)

	// deleting in the cache hides the base value
	require.NoError(t, cache.Delete(k))
	got, err = cache.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	require.NoError(t, cache.Write())
	got, err = base.Get(k2)
	require.NoError(t, err)
	assert.Equal(t, v2, got)
	has, err = base.Has(k)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBTreeCacheDiscard(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("2")))
	require.NoError(t, cache.Set([]byte("b"), []byte("3")))
	cache.Discard()

	got, err := base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
	has, err := base.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)

	// A discarded cache is empty and reads through again.
	got, err = cache.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func TestBTreeCacheWriteOrder(t *testing.T) {
	rec := &recordingStore{}
	cache := NewBTreeCacheWrap(rec, nil)
	require.NoError(t, cache.Set([]byte("c"), []byte("3")))
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	require.NoError(t, cache.Delete([]byte("b")))
	require.NoError(t, cache.Set([]byte("a"), []byte("11")))
	assert.Equal(t, 3, cache.Len())

	require.NoError(t, cache.Write())
	assert.Equal(t, []string{"set a=11", "del b", "set c=3"}, rec.ops)
	assert.Equal(t, 0, cache.Len())
}

func TestNilKeyRejected(t *testing.T) {
	db := MemStore()
	assert.Error(t, db.Set(nil, []byte("x")))
	assert.Error(t, db.Delete(nil))
}

type recordingStore struct {
	EmptyKVStore
	ops []string
}

func (r *recordingStore) Set(key, value []byte) error {
	r.ops = append(r.ops, "set "+string(key)+"="+string(value))
	return nil
}

func (r *recordingStore) Delete(key []byte) error {
	r.ops = append(r.ops, "del "+string(key))
	return nil
}
