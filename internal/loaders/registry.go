package loaders

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/quantia-labs/docqa-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.LoaderRegistry = (*Registry)(nil)

// extensionTypes maps file extensions to document types.
// Anything unlisted falls back to plain text.
var extensionTypes = map[string]domain.DocumentType{
	".pdf":  domain.TypePDF,
	".ppt":  domain.TypeSlides,
	".pptx": domain.TypeSlides,
	".doc":  domain.TypeWord,
	".docx": domain.TypeWord,
	".txt":  domain.TypeText,
	".md":   domain.TypeText,
}

// Registry dispatches document loading to typed loaders.
type Registry struct {
	loaders map[domain.DocumentType]driven.Loader
}

// NewRegistry creates a registry over the given loaders.
func NewRegistry(ls ...driven.Loader) *Registry {
	r := &Registry{loaders: make(map[domain.DocumentType]driven.Loader, len(ls))}
	for _, l := range ls {
		r.loaders[l.Type()] = l
	}
	return r
}

// DetectType determines the document type from a location string.
// http/https URLs are web documents; everything else is decided by
// the file extension.
func DetectType(location string) domain.DocumentType {
	if u, err := url.Parse(location); err == nil {
		if u.Scheme == "http" || u.Scheme == "https" {
			return domain.TypeWeb
		}
	}

	ext := strings.ToLower(filepath.Ext(location))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return domain.TypeText
}

// Resolve determines the effective document type for a location.
func (r *Registry) Resolve(location string, explicit domain.DocumentType) (domain.DocumentType, error) {
	t := explicit
	if t == "" || t == domain.TypeAuto {
		t = DetectType(location)
	}
	if _, ok := r.loaders[t]; !ok {
		return "", fmt.Errorf("%w: no loader for document type %q", domain.ErrUnsupportedType, t)
	}
	return t, nil
}

// Load resolves the type and loads the document at location.
func (r *Registry) Load(ctx context.Context, location string, explicit domain.DocumentType) (*domain.Document, error) {
	t, err := r.Resolve(location, explicit)
	if err != nil {
		return nil, err
	}

	if t.IsLocal() {
		if _, err := os.Stat(location); err != nil {
			return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, location)
		}
	}

	logger.Info("Loading document %s (type: %s)", location, t)

	pages, err := r.loaders[t].Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", location, err)
	}

	doc := &domain.Document{
		Location: location,
		Name:     displayName(location, t),
		Type:     t,
		Pages:    pages,
	}
	logger.Info("Loaded %d pages/sections from %s", len(doc.Pages), doc.Name)
	return doc, nil
}

// displayName derives a human-readable document name.
func displayName(location string, t domain.DocumentType) string {
	if t == domain.TypeWeb {
		if u, err := url.Parse(location); err == nil && u.Host != "" {
			name := u.Host + u.Path
			return strings.TrimSuffix(name, "/")
		}
		return location
	}
	return filepath.Base(location)
}
