package store

import (
	"testing"

	"github.com/iov-one/stateless-weave/weavetest/assert"
)

func makeBase() (CacheableKVStore, func()) {
	commit := BTreeCacheable{EmptyKVStore{}}
	base := commit.CacheWrap()
	return base, func() {}
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(makeBase).GetSet(t)
}

// TestBTreeCacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(makeBase).CacheConflicts(t)
}

func TestBTreeCacheFuzzGetSet(t *testing.T) {
	NewTestSuite(makeBase).FuzzGetSet(t)
}

func TestLogableStoreShowsOps(t *testing.T) {
	kv, ops := LogableStore()

	assert.Nil(t, kv.Set([]byte("a"), []byte("1")))
	assert.Nil(t, kv.Set([]byte("b"), []byte("2")))
	assert.Nil(t, kv.Delete([]byte("a")))

	got := ops.ShowOps()
	assert.Equal(t, 3, len(got))
	assert.Equal(t, true, got[0].IsSetOp())
	assert.Equal(t, []byte("b"), got[1].Key())
	assert.Equal(t, []byte("2"), got[1].Value())
	assert.Equal(t, false, got[2].IsSetOp())
	assert.Equal(t, []byte("a"), got[2].Key())
}

func TestBTreeCacheDiscardKeepsParent(t *testing.T) {
	base := MemStore()
	assert.Nil(t, base.Set([]byte("key"), []byte("parent")))

	child := base.CacheWrap()
	assert.Nil(t, child.Set([]byte("key"), []byte("child")))
	child.Discard()

	got, err := base.Get([]byte("key"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("parent"), got)
}
