package driven

import (
	"context"
	"time"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// Exchange is one recorded question/answer pair.
type Exchange struct {
	// ID is the unique identifier for the exchange.
	ID string

	// Question is the user's query.
	Question string

	// Answer is the synthesized answer text.
	Answer string

	// Sources are the page references the answer drew on.
	Sources []domain.SourceRef

	// AskedAt is when the question was asked.
	AskedAt time.Time
}

// HistoryStore records question/answer exchanges.
// Optional: when nil, exchanges are not recorded.
type HistoryStore interface {
	// Save records an exchange.
	Save(ctx context.Context, ex Exchange) error

	// List returns the most recent exchanges, newest first.
	List(ctx context.Context, limit int) ([]Exchange, error)

	// Close releases resources.
	Close() error
}
