package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

func testMeta() *domain.IndexMetadata {
	return &domain.IndexMetadata{
		DocumentPath:    "/docs/manual.pdf",
		DocumentName:    "manual.pdf",
		Pages:           12,
		Chunks:          40,
		TotalCharacters: 52000,
	}
}

func TestNewServer_RequiresAssistant(t *testing.T) {
	_, err := NewServer(&Ports{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAssistant)
}

func TestServer_handleLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("loads and returns metadata", func(t *testing.T) {
		mock := &mockAssistant{meta: testMeta()}
		server, err := NewServer(&Ports{Assistant: mock})
		require.NoError(t, err)

		_, output, err := server.handleLoad(ctx, nil, LoadInput{Location: "/docs/manual.pdf"})

		require.NoError(t, err)
		assert.Equal(t, "/docs/manual.pdf", mock.loadedLocation)
		assert.Equal(t, domain.TypeAuto, mock.loadedType)
		assert.Equal(t, "manual.pdf", output.Document)
		assert.Equal(t, 12, output.Pages)
		assert.Equal(t, 40, output.Chunks)
	})

	t.Run("honours explicit type", func(t *testing.T) {
		mock := &mockAssistant{meta: testMeta()}
		server, err := NewServer(&Ports{Assistant: mock})
		require.NoError(t, err)

		_, _, err = server.handleLoad(ctx, nil, LoadInput{Location: "notes", Type: "pptx"})

		require.NoError(t, err)
		assert.Equal(t, domain.TypeSlides, mock.loadedType)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		mock := &mockAssistant{meta: testMeta()}
		server, err := NewServer(&Ports{Assistant: mock})
		require.NoError(t, err)

		_, _, err = server.handleLoad(ctx, nil, LoadInput{Location: "notes", Type: "csv"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("adds and returns combined metadata", func(t *testing.T) {
		mock := &mockAssistant{meta: testMeta()}
		server, err := NewServer(&Ports{Assistant: mock})
		require.NoError(t, err)

		_, output, err := server.handleAdd(ctx, nil, LoadInput{Location: "https://example.com/guide"})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/guide", mock.addedLocation)
		assert.Equal(t, 52000, output.TotalCharacters)
	})

	t.Run("surfaces invalid state", func(t *testing.T) {
		mock := &mockAssistant{err: domain.ErrInvalidState}
		server, err := NewServer(&Ports{Assistant: mock})
		require.NoError(t, err)

		_, _, err = server.handleAdd(ctx, nil, LoadInput{Location: "/docs/extra.pdf"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with sources", func(t *testing.T) {
		mock := &mockAssistant{
			answer: &domain.Answer{
				Text: "Use the --profile flag.",
				Sources: []domain.SourceRef{
					{DocumentName: "manual.pdf", Page: 3, Section: "Flags", Similarity: 0.91},
				},
			},
		}
		server, err := NewServer(&Ports{Assistant: mock})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "how do I set a profile?"})

		require.NoError(t, err)
		assert.Equal(t, "how do I set a profile?", mock.askedQuestion)
		assert.Equal(t, "Use the --profile flag.", output.Answer)
		require.Len(t, output.Sources, 1)
		assert.Equal(t, "manual.pdf", output.Sources[0].Document)
		assert.Equal(t, 3, output.Sources[0].Page)
		assert.Equal(t, 0.91, output.Sources[0].Similarity)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockAssistant{err: errors.New("llm unavailable")}
		server, err := NewServer(&Ports{Assistant: mock})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "llm unavailable")
	})
}

func TestServer_handleInfo(t *testing.T) {
	mock := &mockAssistant{meta: testMeta()}
	server, err := NewServer(&Ports{Assistant: mock})
	require.NoError(t, err)

	_, output, err := server.handleInfo(context.Background(), nil, struct{}{})

	require.NoError(t, err)
	assert.Equal(t, "manual.pdf", output.Document)
	assert.Equal(t, "/docs/manual.pdf", output.Path)
}
