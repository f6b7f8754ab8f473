package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a required local document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedType indicates a document type with no loader.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState indicates an operation precondition is not met,
	// e.g. adding a document before any initial load.
	ErrInvalidState = errors.New("invalid state")

	// ErrRateLimited indicates the embedding provider throttled a call.
	// This is transient and recovered inside the ingestion engine.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the completion service is not configured.
	// Answer synthesis is disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
