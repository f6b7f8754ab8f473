// Package memory provides an in-memory vector index using brute-force
// cosine similarity. Suited to single-document sessions where the
// entry count stays in the thousands.
package memory

import (
	"context"
	"math"
	"sort"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index holds embedded chunks in insertion order. Growth is
// append-only: entries are never removed or replaced.
type Index struct {
	entries []domain.IndexEntry
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// Factory is a driven.IndexFactory producing empty memory indexes.
func Factory() driven.VectorIndex {
	return New()
}

// Add appends entries to the index.
func (ix *Index) Add(_ context.Context, entries []domain.IndexEntry) error {
	ix.entries = append(ix.entries, entries...)
	return nil
}

// Merge appends every entry of other, preserving its internal order.
func (ix *Index) Merge(ctx context.Context, other driven.VectorIndex) error {
	return ix.Add(ctx, other.Entries())
}

// Search returns the k entries nearest to the query vector, best first.
func (ix *Index) Search(_ context.Context, query []float32, k int) ([]domain.VectorHit, error) {
	if k <= 0 || len(ix.entries) == 0 {
		return nil, nil
	}

	hits := make([]domain.VectorHit, 0, len(ix.entries))
	for i := range ix.entries {
		hits = append(hits, domain.VectorHit{
			Entry:      ix.entries[i],
			Similarity: cosine(ix.entries[i].Vector, query),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

// Entries returns a snapshot of all entries in insertion order.
func (ix *Index) Entries() []domain.IndexEntry {
	out := make([]domain.IndexEntry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// cosine computes the cosine similarity of two vectors. Mismatched
// lengths compare over the shorter prefix.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
