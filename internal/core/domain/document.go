package domain

// DocumentType identifies which loader handles a document.
type DocumentType string

// Known document types.
const (
	// TypeAuto requests automatic detection from the location string.
	TypeAuto DocumentType = "auto"

	// TypePDF is a PDF file.
	TypePDF DocumentType = "pdf"

	// TypeSlides is a PowerPoint presentation.
	TypeSlides DocumentType = "slides"

	// TypeWord is a Word document.
	TypeWord DocumentType = "word"

	// TypeWeb is a page fetched over HTTP(S).
	TypeWeb DocumentType = "web"

	// TypeText is plain text or Markdown.
	TypeText DocumentType = "text"
)

// IsLocal reports whether the type reads from the local filesystem.
// Local types require the file to exist before loading.
func (t DocumentType) IsLocal() bool {
	return t != TypeWeb
}

// Page is one raw text unit of a document: a PDF page, a slide,
// a Word section, or the whole body of a web page or text file.
type Page struct {
	// Number is the 1-based position within the document.
	Number int

	// Section is an optional human-readable label (e.g. slide title).
	Section string

	// Text is the raw extracted text.
	Text string
}

// Document is a loaded document: identity plus ordered pages.
// Immutable once loaded; owned by the assistant for the session.
type Document struct {
	// Location is the original path or URL.
	Location string

	// Name is the display name (base filename or URL host/path).
	Name string

	// Type is the resolved document type.
	Type DocumentType

	// Pages is the ordered sequence of text units.
	Pages []Page
}

// TotalCharacters returns the combined length of all page text.
func (d *Document) TotalCharacters() int {
	total := 0
	for i := range d.Pages {
		total += len(d.Pages[i].Text)
	}
	return total
}

// Chunk is a bounded substring of a page's text prepared for embedding.
// Chunks are ephemeral: produced, embedded, then discarded in favour of
// the resulting index entries.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentName is the display name of the source document.
	DocumentName string

	// Page is the 1-based page number the chunk was cut from.
	Page int

	// Section is the page's section label, if any.
	Section string

	// Text is the chunk content.
	Text string
}
