package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/quantia-labs/docqa-cli/internal/logger"
)

const (
	// batchShrinkStep is how much the batch size drops after an
	// unlocked throttling error.
	batchShrinkStep = 2

	// minBatchSize is the smallest batch the engine will shrink to.
	minBatchSize = 2

	// minRecoveryWait is the shortest pause before retrying a
	// throttled batch.
	minRecoveryWait = 5 * time.Second

	// maxBatchAttempts bounds retries of a single batch. Exceeding it
	// turns the throttle into a fatal error.
	maxBatchAttempts = 5

	// cleanBatchesBeforeTuning is how many consecutive unthrottled
	// batches must complete before the delay is speculatively lowered.
	cleanBatchesBeforeTuning = 2
)

// runState holds the adaptive tuning state for one ingestion run.
// It is constructed fresh per Ingest call so tuning never leaks
// between independent runs.
type runState struct {
	batchSize    int
	delay        time.Duration
	lastGood     time.Duration
	hasLastGood  bool
	locked       bool
	throttled    bool
	cleanBatches int
}

// Ingestor turns an ordered chunk sequence into a cumulative vector
// index, batching provider calls and adapting batch size and pacing
// to rate limits.
type Ingestor struct {
	embedder driven.EmbeddingService
	newIndex driven.IndexFactory
	profile  domain.Profile

	// pacer enforces the floor between provider calls regardless of
	// the tuned delay.
	pacer *rate.Limiter

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewIngestor creates an ingestion engine using the given profile.
func NewIngestor(embedder driven.EmbeddingService, newIndex driven.IndexFactory, profile domain.Profile) *Ingestor {
	return &Ingestor{
		embedder: embedder,
		newIndex: newIndex,
		profile:  profile,
		pacer:    rate.NewLimiter(rate.Every(domain.PacingFloor), 1),
		sleep:    sleepCtx,
	}
}

// Profile returns the preset the engine was built with.
func (s *Ingestor) Profile() domain.Profile {
	return s.profile
}

// Ingest embeds all chunks and returns the finished cumulative index.
// A throttling error shrinks the run's effective settings and retries
// the same batch; any other provider error aborts the run and the
// partial index is discarded.
func (s *Ingestor) Ingest(ctx context.Context, chunks []domain.Chunk) (driven.VectorIndex, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	run := &runState{
		batchSize: s.profile.BatchSize,
		delay:     s.profile.BatchDelay,
	}

	logger.Section("Embedding Ingestion")
	logger.Info("Chunks: %d, profile: %s (batch %d, delay %s, adaptive %t)",
		len(chunks), s.profile.Name, run.batchSize, run.delay, s.profile.Adaptive)

	var cumulative driven.VectorIndex
	pos := 0
	batchNum := 0

	for pos < len(chunks) {
		batchNum++
		partial, consumed, err := s.embedNext(ctx, chunks, pos, batchNum, run)
		if err != nil {
			return nil, err
		}

		if cumulative == nil {
			// First batch becomes the cumulative index.
			cumulative = partial
		} else if err := cumulative.Merge(ctx, partial); err != nil {
			return nil, fmt.Errorf("merge batch %d: %w", batchNum, err)
		}

		pos += consumed

		if pos < len(chunks) {
			delay := s.nextDelay(run)
			logger.Debug("Batch %d done (%d entries so far), pacing %s", batchNum, cumulative.Len(), delay)
			if err := s.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}

	if cumulative == nil {
		cumulative = s.newIndex()
	}

	logger.Info("Ingestion complete: %d entries in %d batches", cumulative.Len(), batchNum)
	return cumulative, nil
}

// embedNext embeds the batch starting at pos, retrying the same batch
// on throttling. The batch is re-sliced on each attempt so a shrunk
// batch size takes effect immediately. Returns the partial index and
// the number of chunks consumed.
func (s *Ingestor) embedNext(
	ctx context.Context, chunks []domain.Chunk, pos, batchNum int, run *runState,
) (driven.VectorIndex, int, error) {
	for attempt := 1; attempt <= maxBatchAttempts; attempt++ {
		end := pos + run.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[pos:end]

		// Floor pacing between provider calls.
		if err := s.pacer.Wait(ctx); err != nil {
			return nil, 0, err
		}

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err == nil {
			if len(vectors) != len(batch) {
				return nil, 0, fmt.Errorf("embed batch %d: got %d vectors for %d chunks",
					batchNum, len(vectors), len(batch))
			}

			partial := s.newIndex()
			entries := make([]domain.IndexEntry, len(batch))
			for i, c := range batch {
				entries[i] = domain.IndexEntry{
					ID:           c.ID,
					Vector:       vectors[i],
					DocumentName: c.DocumentName,
					Page:         c.Page,
					Section:      c.Section,
					Text:         c.Text,
				}
			}
			if err := partial.Add(ctx, entries); err != nil {
				return nil, 0, fmt.Errorf("index batch %d: %w", batchNum, err)
			}

			run.cleanBatches++
			return partial, len(batch), nil
		}

		if !isThrottle(err) {
			// Fatal: propagate immediately, partial run is discarded.
			return nil, 0, fmt.Errorf("embed batch %d: %w", batchNum, err)
		}

		s.onThrottle(run)
		wait := 3 * run.delay
		if wait < minRecoveryWait {
			wait = minRecoveryWait
		}
		logger.Warn("Batch %d throttled (attempt %d/%d): batch size %d, delay %s, retrying in %s",
			batchNum, attempt, maxBatchAttempts, run.batchSize, run.delay, wait)

		if err := s.sleep(ctx, wait); err != nil {
			return nil, 0, err
		}
	}

	return nil, 0, fmt.Errorf("embed batch %d: still throttled after %d attempts: %w",
		batchNum, maxBatchAttempts, domain.ErrRateLimited)
}

// onThrottle adjusts run settings after a throttling error. Once the
// delay is locked nothing changes any more; with a recorded last-good
// delay the run snaps back to it and locks; otherwise the batch size
// shrinks and the delay stays.
func (s *Ingestor) onThrottle(run *runState) {
	run.throttled = true
	run.cleanBatches = 0

	switch {
	case run.locked:
		// Settings already proven; just wait out the throttle.
	case run.hasLastGood:
		run.delay = run.lastGood
		run.locked = true
		logger.Info("Throttled: restoring last known good delay %s and locking it", run.delay)
	default:
		run.batchSize -= batchShrinkStep
		if run.batchSize < minBatchSize {
			run.batchSize = minBatchSize
		}
		logger.Info("Throttled: shrinking batch size to %d", run.batchSize)
	}
}

// nextDelay picks the inter-batch pacing delay, speculatively lowering
// it to the floor after enough clean batches when tuning is on.
func (s *Ingestor) nextDelay(run *runState) time.Duration {
	if run.locked || !s.profile.Adaptive {
		return run.delay
	}
	if run.cleanBatches >= cleanBatchesBeforeTuning && run.delay > domain.PacingFloor {
		// Record the proven delay before gambling on a faster one.
		run.lastGood = run.delay
		run.hasLastGood = true
		run.delay = domain.PacingFloor
		logger.Debug("Speculatively lowering delay to %s (last good %s)", run.delay, run.lastGood)
	}
	return run.delay
}

// isThrottle reports whether err is a provider rate-limit signal.
func isThrottle(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "Too Many Requests")
}

// sleepCtx sleeps for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
