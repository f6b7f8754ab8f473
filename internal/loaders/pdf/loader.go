// Package pdf loads PDF files, one page per PDF page.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/quantia-labs/docqa-cli/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// maxFileSize caps in-memory extraction to avoid OOM on huge files.
const maxFileSize = 200 << 20

// Loader extracts text from PDF files.
type Loader struct{}

// New creates a new PDF loader.
func New() *Loader {
	return &Loader{}
}

// Type returns the document type this loader handles.
func (l *Loader) Type() domain.DocumentType {
	return domain.TypePDF
}

// Load extracts one page of text per PDF page. Pages whose text cannot
// be extracted are kept as empty pages so page numbering stays aligned
// with the source document.
func (l *Loader) Load(_ context.Context, location string) ([]domain.Page, error) {
	stat, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}
	if stat.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: pdf too large for in-memory extraction", domain.ErrInvalidInput)
	}

	content, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	total := reader.NumPage()
	pages := make([]domain.Page, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, domain.Page{Number: i})
			continue
		}

		fonts := make(map[string]*pdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			logger.Warn("pdf: failed to extract text from page %d: %v", i, err)
			pages = append(pages, domain.Page{Number: i})
			continue
		}

		pages = append(pages, domain.Page{Number: i, Text: strings.TrimSpace(text)})
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: pdf contains no pages", domain.ErrInvalidInput)
	}
	return pages, nil
}
