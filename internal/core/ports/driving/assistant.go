package driving

import (
	"context"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// Assistant is the document question-answering capability exposed to
// external actors. Callers must serialise access: the implementation
// assumes a single owning session and performs ingestion synchronously.
type Assistant interface {
	// Load ingests the document at location and installs it as the
	// live index, replacing any previous one. A cache hit restores the
	// persisted index without any embedding work.
	Load(ctx context.Context, location string, docType domain.DocumentType) (*domain.IndexMetadata, error)

	// Add ingests another document and merges it into the live index.
	// Fails with domain.ErrInvalidState when nothing has been loaded.
	Add(ctx context.Context, location string, docType domain.DocumentType) (*domain.IndexMetadata, error)

	// Ask answers a question against the loaded documents. Fails with
	// domain.ErrInvalidState when no document has been loaded.
	Ask(ctx context.Context, question string) (*domain.Answer, error)

	// Info returns metadata for the loaded documents: cached metadata
	// when the index was restored from cache, computed counts otherwise.
	Info() (*domain.IndexMetadata, error)
}
