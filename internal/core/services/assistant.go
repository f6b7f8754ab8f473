package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/quantia-labs/docqa-cli/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.Assistant = (*AssistantService)(nil)

// Retrieval breadth: fresh sessions retrieve 3 chunks; after the first
// add the spread of documents warrants 5. The widening happens exactly
// once per loaded session.
const (
	retrievalKFresh   = 3
	retrievalKWidened = 5
)

// answerMaxTokens caps answer synthesis length.
const answerMaxTokens = 1024

// defaultAnswerPrompt is used when no prompt store is configured.
const defaultAnswerPrompt = `You are a documentation assistant. Answer the question using ONLY the
context below. If the context does not contain the answer, say so.
Cite the page numbers you relied on.

Context:
%s

Question: %s

Answer:`

// AssistantService is the document question-answering facade. It owns
// the live vector index and serialises all operations on it; callers
// must not share one instance across concurrent goroutines.
type AssistantService struct {
	registry driven.LoaderRegistry
	chunker  driven.Chunker
	embedder driven.EmbeddingService
	llm      driven.LLMService
	cache    driven.IndexCache
	newIndex driven.IndexFactory
	ingestor *Ingestor

	history driven.HistoryStore
	prompts driven.PromptStore

	index   driven.VectorIndex
	meta    *domain.IndexMetadata
	k       int
	widened bool
}

// NewAssistant creates the facade. The llm parameter is optional (can
// be nil); asking questions then fails with ErrLLMUnavailable while
// loading and adding still work.
func NewAssistant(
	registry driven.LoaderRegistry,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	cache driven.IndexCache,
	newIndex driven.IndexFactory,
	ingestor *Ingestor,
) *AssistantService {
	return &AssistantService{
		registry: registry,
		chunker:  chunker,
		embedder: embedder,
		llm:      llm,
		cache:    cache,
		newIndex: newIndex,
		ingestor: ingestor,
		k:        retrievalKFresh,
	}
}

// SetHistoryStore enables recording of question/answer exchanges.
func (s *AssistantService) SetHistoryStore(store driven.HistoryStore) {
	s.history = store
}

// SetPromptStore sets the store for customisable prompt templates.
func (s *AssistantService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Load ingests the document at location and installs it as the live
// index, replacing any previous one. Retrieval breadth resets to the
// fresh value.
func (s *AssistantService) Load(
	ctx context.Context, location string, docType domain.DocumentType,
) (*domain.IndexMetadata, error) {
	index, meta, err := s.ingest(ctx, location, docType)
	if err != nil {
		return nil, err
	}

	s.index = index
	s.meta = meta
	s.k = retrievalKFresh
	s.widened = false

	logger.Info("Loaded %s: %d pages, %d chunks", meta.DocumentName, meta.Pages, meta.Chunks)
	return meta, nil
}

// Add ingests another document and merges it into the live index.
// The first add widens retrieval from 3 to 5 chunks; later adds do
// not widen further.
func (s *AssistantService) Add(
	ctx context.Context, location string, docType domain.DocumentType,
) (*domain.IndexMetadata, error) {
	if s.index == nil {
		return nil, fmt.Errorf("%w: load a document before adding", domain.ErrInvalidState)
	}

	index, meta, err := s.ingest(ctx, location, docType)
	if err != nil {
		return nil, err
	}

	if err := s.index.Merge(ctx, index); err != nil {
		return nil, fmt.Errorf("merge added document: %w", err)
	}

	s.meta = &domain.IndexMetadata{
		DocumentPath:    s.meta.DocumentPath,
		DocumentName:    s.meta.DocumentName + ", " + meta.DocumentName,
		Pages:           s.meta.Pages + meta.Pages,
		Chunks:          s.meta.Chunks + meta.Chunks,
		TotalCharacters: s.meta.TotalCharacters + meta.TotalCharacters,
	}

	if !s.widened {
		s.k = retrievalKWidened
		s.widened = true
		logger.Debug("Retrieval widened to %d chunks", s.k)
	}

	logger.Info("Added %s: %d pages, %d chunks", meta.DocumentName, meta.Pages, meta.Chunks)
	return meta, nil
}

// Ask answers a question against the loaded documents.
func (s *AssistantService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	if s.index == nil {
		return nil, fmt.Errorf("%w: load a document before asking", domain.ErrInvalidState)
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	logger.Section("Question Answering")
	logger.Debug("Question: %q, k=%d", question, s.k)

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	hits, err := s.index.Search(ctx, queryVec, s.k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(hits))

	var contextText strings.Builder
	sources := make([]domain.SourceRef, 0, len(hits))
	for _, hit := range hits {
		fmt.Fprintf(&contextText, "[%s, page %d] %s\n\n",
			hit.Entry.DocumentName, hit.Entry.Page, hit.Entry.Text)
		sources = append(sources, domain.SourceRef{
			DocumentName: hit.Entry.DocumentName,
			Page:         hit.Entry.Page,
			Section:      hit.Entry.Section,
			Similarity:   hit.Similarity,
		})
	}

	prompt := fmt.Sprintf(s.answerPrompt(), contextText.String(), question)
	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize answer: %w", err)
	}

	answer := &domain.Answer{
		Text:    strings.TrimSpace(text),
		Sources: sources,
	}

	if s.history != nil {
		if err := s.history.Save(ctx, driven.Exchange{
			Question: question,
			Answer:   answer.Text,
			Sources:  answer.Sources,
		}); err != nil {
			logger.Warn("Failed to record exchange: %v", err)
		}
	}

	return answer, nil
}

// Info returns metadata for the loaded documents.
func (s *AssistantService) Info() (*domain.IndexMetadata, error) {
	if s.meta == nil {
		return nil, fmt.Errorf("%w: no document loaded", domain.ErrInvalidState)
	}
	meta := *s.meta
	return &meta, nil
}

// ingest produces an index and metadata for one document, restoring
// from cache when possible and storing on a fresh build. A cache
// persist failure is logged and otherwise ignored.
func (s *AssistantService) ingest(
	ctx context.Context, location string, docType domain.DocumentType,
) (driven.VectorIndex, *domain.IndexMetadata, error) {
	resolved, err := s.registry.Resolve(location, docType)
	if err != nil {
		return nil, nil, err
	}

	key, err := s.cache.Key(location, resolved)
	if err != nil {
		return nil, nil, err
	}

	if s.cache.Has(key) {
		entries, meta, err := s.cache.Load(ctx, key)
		if err == nil {
			index := s.newIndex()
			if err := index.Add(ctx, entries); err != nil {
				return nil, nil, fmt.Errorf("rebuild cached index: %w", err)
			}
			logger.Info("Cache hit for %s (%d entries)", meta.DocumentName, index.Len())
			return index, meta, nil
		}
		// An unreadable entry falls through to a fresh build.
		logger.Warn("Cache entry for %s unreadable: %v", location, err)
	}

	doc, err := s.registry.Load(ctx, location, docType)
	if err != nil {
		return nil, nil, err
	}

	chunks := s.chunker.Split(doc)
	if len(chunks) == 0 {
		return nil, nil, fmt.Errorf("%w: document %s has no text", domain.ErrInvalidInput, doc.Name)
	}

	index, err := s.ingestor.Ingest(ctx, chunks)
	if err != nil {
		return nil, nil, err
	}

	meta := &domain.IndexMetadata{
		DocumentPath:    doc.Location,
		DocumentName:    doc.Name,
		Pages:           len(doc.Pages),
		Chunks:          len(chunks),
		TotalCharacters: doc.TotalCharacters(),
	}

	if err := s.cache.Store(ctx, key, index.Entries(), *meta); err != nil {
		// Non-fatal: the in-memory index is still good.
		logger.Warn("Failed to persist index for %s: %v", doc.Name, err)
	}

	return index, meta, nil
}

// answerPrompt returns the synthesis template, preferring the store.
func (s *AssistantService) answerPrompt() string {
	if s.prompts != nil {
		if prompt, err := s.prompts.Load(driven.PromptAnswer); err == nil {
			return prompt
		}
	}
	return defaultAnswerPrompt
}
