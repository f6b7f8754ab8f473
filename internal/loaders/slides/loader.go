// Package slides loads PowerPoint presentations (OOXML .pptx),
// one page per slide.
package slides

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader extracts text from PowerPoint presentations. Only the OOXML
// container is supported; legacy binary .ppt files are rejected.
type Loader struct{}

// New creates a new slides loader.
func New() *Loader {
	return &Loader{}
}

// Type returns the document type this loader handles.
func (l *Loader) Type() domain.DocumentType {
	return domain.TypeSlides
}

// Load extracts one page per slide, in slide order. The first text
// line of a slide is used as its section label.
func (l *Loader) Load(_ context.Context, location string) ([]domain.Page, error) {
	content, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read presentation: %w", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: not an OOXML presentation", domain.ErrInvalidInput)
	}

	slides := slideFiles(reader)
	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: presentation contains no slides", domain.ErrInvalidInput)
	}

	pages := make([]domain.Page, 0, len(slides))
	for i, file := range slides {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable slide %s", domain.ErrInvalidInput, file.Name)
		}

		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable slide %s", domain.ErrInvalidInput, file.Name)
		}

		text := extractSlideText(raw)
		pages = append(pages, domain.Page{
			Number:  i + 1,
			Section: firstLine(text),
			Text:    text,
		})
	}
	return pages, nil
}

// slideFiles returns the slide parts of the archive in slide order.
func slideFiles(reader *zip.Reader) []*zip.File {
	type numbered struct {
		n    int
		file *zip.File
	}

	var found []numbered
	for _, file := range reader.File {
		var n int
		if _, err := fmt.Sscanf(file.Name, "ppt/slides/slide%d.xml", &n); err != nil {
			continue
		}
		found = append(found, numbered{n: n, file: file})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	files := make([]*zip.File, len(found))
	for i := range found {
		files[i] = found[i].file
	}
	return files
}

// extractSlideText collects the DrawingML text runs (a:t elements) of
// one slide, one line per run.
func extractSlideText(raw []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(raw))

	var (
		result strings.Builder
		inText bool
	)
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		case xml.CharData:
			if inText {
				if result.Len() > 0 {
					result.WriteString("\n")
				}
				result.Write([]byte(t))
			}
		}
	}
	return strings.TrimSpace(result.String())
}

// firstLine returns the first non-empty line, truncated for use as a
// section label.
func firstLine(text string) string {
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		if len(ln) > 80 {
			return ln[:80]
		}
		return ln
	}
	return ""
}
