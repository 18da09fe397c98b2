package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/hexastore/config"
	"github.com/c360/hexastore/metric"
	"github.com/c360/hexastore/triple"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.InMemory = true
	cfg.Storage.Dir = ""

	store, err := Open(cfg, metric.NewRegistry(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGraphPrimitives(t *testing.T) {
	store := openTestStore(t)
	g := store.Graph("tenant-1")

	tr := triple.New("a1", "name", "Alice")
	require.NoError(t, g.Insert(tr))

	got, err := g.PO("name", "Alice", nil).Collect()
	require.NoError(t, err)
	assert.Equal(t, []triple.Triple{tr}, got)

	ok, err := g.Exists("a1", "name", "Alice")
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := g.Count("a1", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	report, err := g.Verify(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent)
}

func TestGraphHandleIsCached(t *testing.T) {
	store := openTestStore(t)
	assert.Same(t, store.Graph("tenant-1"), store.Graph("tenant-1"))
	assert.NotSame(t, store.Graph("tenant-1"), store.Graph("tenant-2"))
}

func TestStoresAreIsolated(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Graph("tenant-1").Insert(triple.New("a1", "name", "Alice")))

	got, err := store.Graph("tenant-2").P("name", nil).Collect()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNamedGraphsAreIsolated(t *testing.T) {
	store := openTestStore(t)

	data := store.Graph("tenant-1")
	infer := store.NamedGraph("tenant-1", Infer)

	require.NoError(t, data.Insert(triple.New("a1", "name", "Alice")))
	require.NoError(t, infer.Insert(triple.Edge("a1", "same.as", "a9")))

	fromData, err := data.S("a1").Collect()
	require.NoError(t, err)
	require.Len(t, fromData, 1)
	assert.Equal(t, "name", fromData[0].Predicate)

	fromInfer, err := infer.S("a1").Collect()
	require.NoError(t, err)
	require.Len(t, fromInfer, 1)
	assert.Equal(t, "same.as", fromInfer[0].Predicate)
}

func TestNewStoreID(t *testing.T) {
	a, b := NewStoreID(), NewStoreID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestNameTags(t *testing.T) {
	assert.Equal(t, byte('d'), Data.Tag())
	assert.Equal(t, byte('i'), Infer.Tag())
	assert.Equal(t, byte('m'), Meta.Tag())
	assert.True(t, Data.IsValid())
	assert.False(t, Name("shadow").IsValid())
}
