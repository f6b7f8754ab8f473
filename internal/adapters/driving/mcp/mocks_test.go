package mcp

import (
	"context"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// mockAssistant records the last call and returns canned values.
type mockAssistant struct {
	meta   *domain.IndexMetadata
	answer *domain.Answer
	err    error

	loadedLocation string
	loadedType     domain.DocumentType
	addedLocation  string
	askedQuestion  string
}

func (m *mockAssistant) Load(_ context.Context, location string, docType domain.DocumentType) (*domain.IndexMetadata, error) {
	m.loadedLocation = location
	m.loadedType = docType
	if m.err != nil {
		return nil, m.err
	}
	return m.meta, nil
}

func (m *mockAssistant) Add(_ context.Context, location string, docType domain.DocumentType) (*domain.IndexMetadata, error) {
	m.addedLocation = location
	m.loadedType = docType
	if m.err != nil {
		return nil, m.err
	}
	return m.meta, nil
}

func (m *mockAssistant) Ask(_ context.Context, question string) (*domain.Answer, error) {
	m.askedQuestion = question
	if m.err != nil {
		return nil, m.err
	}
	return m.answer, nil
}

func (m *mockAssistant) Info() (*domain.IndexMetadata, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.meta, nil
}
