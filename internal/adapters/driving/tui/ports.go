// Package tui provides an interactive chat session for docqa built on
// Bubbletea. Questions are answered against the loaded documents, and
// slash commands load or add documents mid-session.
package tui

import (
	"errors"

	"github.com/quantia-labs/docqa-cli/internal/core/ports/driving"
)

// ErrMissingAssistant is returned when no assistant is provided.
var ErrMissingAssistant = errors.New("tui: assistant is required")

// Ports aggregates the driving port interfaces required by the chat view.
type Ports struct {
	// Assistant answers questions against loaded documents.
	Assistant driving.Assistant
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistant
	}
	return nil
}
