package loaders

import (
	"github.com/quantia-labs/docqa-cli/internal/loaders/pdf"
	"github.com/quantia-labs/docqa-cli/internal/loaders/slides"
	"github.com/quantia-labs/docqa-cli/internal/loaders/text"
	"github.com/quantia-labs/docqa-cli/internal/loaders/web"
	"github.com/quantia-labs/docqa-cli/internal/loaders/word"
)

// Default creates a registry with every built-in loader registered.
func Default() *Registry {
	return NewRegistry(
		text.New(),
		pdf.New(),
		word.New(),
		slides.New(),
		web.New(),
	)
}
