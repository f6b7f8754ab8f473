// Package mcp provides an MCP (Model Context Protocol) server adapter for docqa.
// It lets AI assistants load documents and ask questions against them.
package mcp

import "errors"

// ErrMissingAssistant is returned when no assistant is provided.
var ErrMissingAssistant = errors.New("mcp: assistant is required")
