package mcp

import (
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers questions against loaded documents.
	Assistant driving.Assistant

	// History records question/answer exchanges. Optional.
	History driven.HistoryStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistant
	}
	// History is optional
	return nil
}
