package kvstore

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/hexastore/errors"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	store, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetMissingKey(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get([]byte("absent"))
	assert.True(t, stderrors.Is(err, errors.ErrKeyNotFound))
}

func TestBatchSetGetDelete(t *testing.T) {
	store := openTestStore(t)

	batch := store.NewBatch()
	require.NoError(t, batch.Set([]byte("k1"), []byte("v1")))
	require.NoError(t, batch.Set([]byte("k2"), []byte("v2")))
	require.NoError(t, batch.Flush())

	got, err := store.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	ok, err := store.Has([]byte("k2"))
	require.NoError(t, err)
	assert.True(t, ok)

	del := store.NewBatch()
	require.NoError(t, del.Delete([]byte("k1")))
	require.NoError(t, del.Flush())

	ok, err = store.Has([]byte("k1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBatchCancelDiscardsWrites(t *testing.T) {
	store := openTestStore(t)

	batch := store.NewBatch()
	require.NoError(t, batch.Set([]byte("ghost"), []byte("x")))
	batch.Cancel()

	ok, err := store.Has([]byte("ghost"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScanReturnsPrefixInAscendingOrder(t *testing.T) {
	store := openTestStore(t)

	batch := store.NewBatch()
	for _, k := range []string{"p/3", "p/1", "q/9", "p/2", "p/10"} {
		require.NoError(t, batch.Set([]byte(k), []byte(k)))
	}
	require.NoError(t, batch.Flush())

	it := store.Scan([]byte("p/"), nil)
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Err())

	// Byte order, not numeric order.
	assert.Equal(t, []string{"p/1", "p/10", "p/2", "p/3"}, keys)
}

func TestScanSeeksToStart(t *testing.T) {
	store := openTestStore(t)

	batch := store.NewBatch()
	for i := 1; i <= 5; i++ {
		key := fmt.Sprintf("p/%d", i)
		require.NoError(t, batch.Set([]byte(key), nil))
	}
	require.NoError(t, batch.Flush())

	it := store.Scan([]byte("p/"), []byte("p/3"))
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"p/3", "p/4", "p/5"}, keys)
}

func TestScanCopiesAreStable(t *testing.T) {
	store := openTestStore(t)

	batch := store.NewBatch()
	require.NoError(t, batch.Set([]byte("a/1"), []byte("first")))
	require.NoError(t, batch.Set([]byte("a/2"), []byte("second")))
	require.NoError(t, batch.Flush())

	it := store.Scan([]byte("a/"), nil)
	defer it.Close()

	require.True(t, it.Next())
	k1, v1 := it.Key(), it.Value()
	require.True(t, it.Next())

	// Slices captured before the advance must still be intact.
	assert.Equal(t, []byte("a/1"), k1)
	assert.Equal(t, []byte("first"), v1)
}
