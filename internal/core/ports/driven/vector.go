package driven

import (
	"context"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// VectorIndex stores embedded chunks and answers nearest-neighbour
// queries. Growth is append-only: entries are never removed and their
// identifiers are never reused.
type VectorIndex interface {
	// Add appends entries to the index.
	Add(ctx context.Context, entries []domain.IndexEntry) error

	// Merge appends every entry of other to this index, preserving
	// other's internal order. Other is left untouched.
	Merge(ctx context.Context, other VectorIndex) error

	// Search returns the k entries nearest to the query vector,
	// best first.
	Search(ctx context.Context, query []float32, k int) ([]domain.VectorHit, error)

	// Entries returns a snapshot of all entries in insertion order,
	// used for persistence.
	Entries() []domain.IndexEntry

	// Len returns the number of entries.
	Len() int
}

// IndexFactory creates an empty vector index. The ingestion engine uses
// it for per-batch partial indexes and for the cumulative result.
type IndexFactory func() VectorIndex
