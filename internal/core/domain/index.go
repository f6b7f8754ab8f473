package domain

// IndexEntry is one embedded chunk held by a vector index.
// Entries are append-only: once merged into the cumulative index
// an entry's identifier is stable and never reused.
type IndexEntry struct {
	// ID is the stable identifier assigned when the entry was built.
	ID string

	// Vector is the embedding.
	Vector []float32

	// DocumentName is the display name of the source document.
	DocumentName string

	// Page is the 1-based source page number.
	Page int

	// Section is the source page's section label, if any.
	Section string

	// Text is the chunk content, kept for answer synthesis.
	Text string
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// Entry is the matched index entry.
	Entry IndexEntry

	// Similarity is the cosine similarity score.
	Similarity float64
}

// IndexMetadata describes an ingested document's index, as persisted
// alongside it in the cache.
type IndexMetadata struct {
	// DocumentPath is the original path or URL.
	DocumentPath string

	// DocumentName is the display name.
	DocumentName string

	// Pages is the number of pages loaded.
	Pages int

	// Chunks is the number of chunks embedded.
	Chunks int

	// TotalCharacters is the combined page text length.
	TotalCharacters int
}

// Answer is the result of a question against the loaded documents.
type Answer struct {
	// Text is the synthesized natural-language answer.
	Text string

	// Sources lists the retrieved chunks' page references,
	// best match first.
	Sources []SourceRef
}

// SourceRef points back at the page a retrieved chunk came from.
type SourceRef struct {
	// DocumentName is the display name of the source document.
	DocumentName string

	// Page is the 1-based page number.
	Page int

	// Section is the page's section label, if any.
	Section string

	// Similarity is the retrieval score for this chunk.
	Similarity float64
}
