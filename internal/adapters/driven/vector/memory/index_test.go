package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

func entry(id string, v ...float32) domain.IndexEntry {
	return domain.IndexEntry{ID: id, Vector: v, Text: "text-" + id}
}

func TestIndex_AddAndLen(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, []domain.IndexEntry{entry("a", 1, 0), entry("b", 0, 1)}))
	assert.Equal(t, 2, ix.Len())

	require.NoError(t, ix.Add(ctx, []domain.IndexEntry{entry("c", 1, 1)}))
	assert.Equal(t, 3, ix.Len())
}

func TestIndex_Search_RanksByCosine(t *testing.T) {
	ix := New()
	ctx := context.Background()

	require.NoError(t, ix.Add(ctx, []domain.IndexEntry{
		entry("north", 0, 1),
		entry("east", 1, 0),
		entry("northeast", 1, 1),
	}))

	hits, err := ix.Search(ctx, []float32{0, 2}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "north", hits[0].Entry.ID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-9)
	assert.Equal(t, "northeast", hits[1].Entry.ID)
}

func TestIndex_Search_KLargerThanIndex(t *testing.T) {
	ix := New()
	ctx := context.Background()
	require.NoError(t, ix.Add(ctx, []domain.IndexEntry{entry("a", 1, 0)}))

	hits, err := ix.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestIndex_Search_Empty(t *testing.T) {
	hits, err := New().Search(context.Background(), []float32{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_Merge_AppendOnlyAndOrderPreserving(t *testing.T) {
	ctx := context.Background()

	first := New()
	require.NoError(t, first.Add(ctx, []domain.IndexEntry{entry("a", 1, 0), entry("b", 0, 1)}))

	second := New()
	require.NoError(t, second.Add(ctx, []domain.IndexEntry{entry("c", 1, 1), entry("d", 1, 2)}))

	require.NoError(t, first.Merge(ctx, second))

	got := first.Entries()
	require.Len(t, got, 4)
	assert.Equal(t, []string{"a", "b", "c", "d"},
		[]string{got[0].ID, got[1].ID, got[2].ID, got[3].ID})

	// The merged-from index is untouched.
	assert.Equal(t, 2, second.Len())
}

func TestIndex_Entries_Snapshot(t *testing.T) {
	ix := New()
	ctx := context.Background()
	require.NoError(t, ix.Add(ctx, []domain.IndexEntry{entry("a", 1)}))

	snap := ix.Entries()
	snap[0].ID = "mutated"

	assert.Equal(t, "a", ix.Entries()[0].ID)
}

func TestCosine_ZeroVector(t *testing.T) {
	assert.Equal(t, 0.0, cosine([]float32{0, 0}, []float32{1, 1}))
}
