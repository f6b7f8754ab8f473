// Package web loads pages fetched over HTTP(S).
package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// DefaultTimeout is the fetch timeout when none is configured.
const DefaultTimeout = 30 * time.Second

// userAgent identifies docqa to web servers.
const userAgent = "docqa/1.0 (+https://github.com/quantia-labs/docqa-cli)"

// contentSelectors are tried in order; the first selector yielding
// substantial text wins. "body" is the final fallback.
var contentSelectors = []string{
	"main",
	"article",
	"[role='main']",
	".main-content",
	".content",
	"#content",
	"body",
}

// Loader fetches a web page and extracts its readable text.
type Loader struct {
	client *http.Client
}

// New creates a new web loader.
func New() *Loader {
	return &Loader{
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Type returns the document type this loader handles.
func (l *Loader) Type() domain.DocumentType {
	return domain.TypeWeb
}

// Load fetches the URL and returns its readable text as a single page.
// The page title, if any, is used as the section label.
func (l *Loader) Load(ctx context.Context, location string) ([]domain.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", location, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", location, err)
	}

	text := extractMainContent(doc)
	if text == "" {
		return nil, fmt.Errorf("%w: page contains no readable text", domain.ErrInvalidInput)
	}

	return []domain.Page{{
		Number:  1,
		Section: strings.TrimSpace(doc.Find("title").First().Text()),
		Text:    text,
	}}, nil
}

// extractMainContent strips chrome elements and returns the text of
// the first substantial content region.
func extractMainContent(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, header, aside, noscript").Remove()

	for _, selector := range contentSelectors {
		var content strings.Builder
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := collapseWhitespace(s.Text())
			if len(text) > 100 {
				if content.Len() > 0 {
					content.WriteString("\n\n")
				}
				content.WriteString(text)
			}
		})
		if content.Len() > 0 {
			return content.String()
		}
	}

	return collapseWhitespace(doc.Find("body").Text())
}

// collapseWhitespace normalises runs of blank lines and trailing
// spaces left behind by HTML-to-text conversion.
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, ln := range lines {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return strings.Join(out, "\n")
}
