package driven

import (
	"context"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// IndexCache persists built vector indexes keyed on document identity.
// Entries are immutable: a changed document produces a new key and a
// new entry, never an in-place update.
type IndexCache interface {
	// Key computes the cache key for a document location. For URLs the
	// key hashes the URL string itself; for local files it hashes the
	// path together with the file's size and modification time, so any
	// edit invalidates the old key. Fails with domain.ErrNotFound when
	// a local file does not exist.
	Key(location string, docType domain.DocumentType) (string, error)

	// Has reports whether a readable entry exists for the key.
	Has(key string) bool

	// Load reconstructs the persisted entries and metadata for the key.
	Load(ctx context.Context, key string) ([]domain.IndexEntry, *domain.IndexMetadata, error)

	// Store persists the entries and metadata under the key.
	Store(ctx context.Context, key string, entries []domain.IndexEntry, meta domain.IndexMetadata) error

	// Clear removes every cache entry.
	Clear() error
}
