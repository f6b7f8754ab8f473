// Package text loads plain text and Markdown files.
package text

import (
	"context"
	"os"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader reads a whole text file as a single page.
type Loader struct{}

// New creates a new text loader.
func New() *Loader {
	return &Loader{}
}

// Type returns the document type this loader handles.
func (l *Loader) Type() domain.DocumentType {
	return domain.TypeText
}

// Load reads the file at location as one page.
func (l *Loader) Load(_ context.Context, location string) ([]domain.Page, error) {
	content, err := os.ReadFile(location)
	if err != nil {
		return nil, err
	}
	return []domain.Page{{Number: 1, Text: string(content)}}, nil
}
