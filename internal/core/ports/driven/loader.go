package driven

import (
	"context"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// Loader produces document pages from a location string.
// Each loader handles exactly one document type.
type Loader interface {
	// Type returns the document type this loader handles.
	Type() domain.DocumentType

	// Load reads the document at location and returns its pages in order.
	// No chunking is performed here.
	Load(ctx context.Context, location string) ([]domain.Page, error)
}

// LoaderRegistry resolves document types and dispatches to loaders.
type LoaderRegistry interface {
	// Resolve determines the effective document type for a location.
	// When explicit is TypeAuto the type is detected from the location:
	// http/https URLs are web, otherwise the file extension decides.
	// Returns domain.ErrUnsupportedType when no loader is registered
	// for the resolved type.
	Resolve(location string, explicit domain.DocumentType) (domain.DocumentType, error)

	// Load resolves the type and loads the document. Local types fail
	// with domain.ErrNotFound when the file does not exist on disk.
	Load(ctx context.Context, location string, explicit domain.DocumentType) (*domain.Document, error)
}

// Chunker splits document pages into overlapping chunks.
type Chunker interface {
	// Split produces the ordered chunk sequence for a document.
	// Deterministic: the same document and configuration always yield
	// the same chunk texts in the same order.
	Split(doc *domain.Document) []domain.Chunk
}
