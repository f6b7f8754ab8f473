package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// AskInput is the input schema for the documentation_search tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the loaded documents"`
}

// AskOutput is the output schema for the documentation_search tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources"`
}

// SourceOutput is one page reference backing an answer.
type SourceOutput struct {
	Document   string  `json:"document"`
	Page       int     `json:"page"`
	Section    string  `json:"section,omitempty"`
	Similarity float64 `json:"similarity"`
}

// LoadInput is the input schema for the load_document and
// add_document tools.
type LoadInput struct {
	Location string `json:"location" jsonschema:"local file path or http(s) URL of the document"`
	Type     string `json:"type,omitempty" jsonschema:"document type: auto, pdf, slides, word, web or text (default auto)"`
}

// InfoOutput is the output schema for the metadata-returning tools.
type InfoOutput struct {
	Document        string `json:"document"`
	Path            string `json:"path"`
	Pages           int    `json:"pages"`
	Chunks          int    `json:"chunks"`
	TotalCharacters int    `json:"total_characters"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_document",
		Description: "Load a document (PDF, Word, PowerPoint, web page or text) and index it for question answering. Replaces any previously loaded documents.",
	}, s.handleLoad)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_document",
		Description: "Index an additional document alongside the ones already loaded.",
	}, s.handleAdd)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "documentation_search",
		Description: "Answer a question from the loaded documents, with page-level source references.",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "document_info",
		Description: "Return metadata about the currently loaded documents.",
	}, s.handleInfo)
}

// handleLoad handles the load_document tool invocation.
func (s *Server) handleLoad(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadInput,
) (*mcp.CallToolResult, InfoOutput, error) {
	docType, err := parseType(input.Type)
	if err != nil {
		return nil, InfoOutput{}, err
	}

	meta, err := s.ports.Assistant.Load(ctx, input.Location, docType)
	if err != nil {
		return nil, InfoOutput{}, err
	}

	return nil, infoOutput(meta), nil
}

// handleAdd handles the add_document tool invocation.
func (s *Server) handleAdd(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadInput,
) (*mcp.CallToolResult, InfoOutput, error) {
	docType, err := parseType(input.Type)
	if err != nil {
		return nil, InfoOutput{}, err
	}

	meta, err := s.ports.Assistant.Add(ctx, input.Location, docType)
	if err != nil {
		return nil, InfoOutput{}, err
	}

	return nil, infoOutput(meta), nil
}

// handleAsk handles the documentation_search tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Assistant.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  answer.Text,
		Sources: make([]SourceOutput, len(answer.Sources)),
	}
	for i, src := range answer.Sources {
		output.Sources[i] = SourceOutput{
			Document:   src.DocumentName,
			Page:       src.Page,
			Section:    src.Section,
			Similarity: src.Similarity,
		}
	}

	return nil, output, nil
}

// handleInfo handles the document_info tool invocation.
func (s *Server) handleInfo(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, InfoOutput, error) {
	meta, err := s.ports.Assistant.Info()
	if err != nil {
		return nil, InfoOutput{}, err
	}

	return nil, infoOutput(meta), nil
}

func infoOutput(meta *domain.IndexMetadata) InfoOutput {
	return InfoOutput{
		Document:        meta.DocumentName,
		Path:            meta.DocumentPath,
		Pages:           meta.Pages,
		Chunks:          meta.Chunks,
		TotalCharacters: meta.TotalCharacters,
	}
}

func parseType(name string) (domain.DocumentType, error) {
	switch name {
	case "", "auto":
		return domain.TypeAuto, nil
	case "pdf":
		return domain.TypePDF, nil
	case "slides", "ppt", "pptx":
		return domain.TypeSlides, nil
	case "word", "doc", "docx":
		return domain.TypeWord, nil
	case "web":
		return domain.TypeWeb, nil
	case "text", "txt":
		return domain.TypeText, nil
	default:
		return "", fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidInput, name)
	}
}
