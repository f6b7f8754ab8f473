package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/quantia-labs/docqa-cli/internal/adapters/driven/vector/memory"
	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// fakeEmbedder produces deterministic letter-frequency vectors and can
// be scheduled to fail specific calls.
type fakeEmbedder struct {
	calls      int
	batchSizes []int
	failOn     map[int]error // 1-based call index -> error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	f.batchSizes = append(f.batchSizes, len(texts))
	if err, ok := f.failOn[f.calls]; ok {
		return nil, err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = letterFreqVector(t)
	}
	return out, nil
}

func (f *fakeEmbedder) ModelName() string { return "fake" }
func (f *fakeEmbedder) Close() error      { return nil }

// letterFreqVector maps text to its letter-frequency histogram. The
// same word repeated any number of times keeps the same direction, so
// cosine similarity against the single word is exactly 1.
func letterFreqVector(text string) []float32 {
	vec := make([]float32, 26)
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		}
	}
	return vec
}

func makeChunks(n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:           fmt.Sprintf("chunk-%d", i),
			DocumentName: "doc",
			Page:         i + 1,
			Text:         fmt.Sprintf("text %d", i),
		}
	}
	return chunks
}

// newTestIngestor builds an engine with sleeping and floor pacing
// stubbed out, recording every pacing/recovery sleep.
func newTestIngestor(embedder *fakeEmbedder, profile domain.Profile) (*Ingestor, *[]time.Duration) {
	ing := NewIngestor(embedder, memory.Factory, profile)
	ing.pacer = rate.NewLimiter(rate.Inf, 1)
	sleeps := &[]time.Duration{}
	ing.sleep = func(_ context.Context, d time.Duration) error {
		*sleeps = append(*sleeps, d)
		return nil
	}
	return ing, sleeps
}

func throttleErr() error {
	return fmt.Errorf("%w: 429 Too Many Requests", domain.ErrRateLimited)
}

func TestIngestAllChunksIndexed(t *testing.T) {
	embedder := &fakeEmbedder{}
	ing, sleeps := newTestIngestor(embedder, domain.DefaultProfile)

	chunks := makeChunks(12)
	index, err := ing.Ingest(context.Background(), chunks)
	require.NoError(t, err)

	assert.Equal(t, 12, index.Len())
	// ceil(12/5) = 3 batches, pacing sleep after all but the last.
	assert.Equal(t, []int{5, 5, 2}, embedder.batchSizes)
	assert.Len(t, *sleeps, 2)
	for _, d := range *sleeps {
		assert.Equal(t, domain.DefaultProfile.BatchDelay, d)
	}
}

func TestIngestPreservesBatchOrder(t *testing.T) {
	embedder := &fakeEmbedder{}
	ing, _ := newTestIngestor(embedder, domain.DefaultProfile)

	chunks := makeChunks(7)
	index, err := ing.Ingest(context.Background(), chunks)
	require.NoError(t, err)

	entries := index.Entries()
	require.Len(t, entries, 7)
	for i, e := range entries {
		assert.Equal(t, chunks[i].ID, e.ID)
	}
}

func TestIngestRetryDoesNotDuplicate(t *testing.T) {
	// Second provider call throttles once; the same batch is retried
	// and the final index must hold exactly one entry per chunk.
	embedder := &fakeEmbedder{failOn: map[int]error{2: throttleErr()}}
	ing, _ := newTestIngestor(embedder, domain.DefaultProfile)

	chunks := makeChunks(10)
	index, err := ing.Ingest(context.Background(), chunks)
	require.NoError(t, err)

	assert.Equal(t, 10, index.Len())
	seen := map[string]bool{}
	for _, e := range index.Entries() {
		assert.False(t, seen[e.ID], "duplicate entry %s", e.ID)
		seen[e.ID] = true
	}
}

func TestIngestBatchSizeShrinksWithoutLastGood(t *testing.T) {
	// No clean-batch streak yet, so a throttle shrinks the batch size
	// by 2 and the retried batch is re-sliced at the new size.
	embedder := &fakeEmbedder{failOn: map[int]error{1: throttleErr()}}
	ing, sleeps := newTestIngestor(embedder, domain.DefaultProfile)

	chunks := makeChunks(9)
	index, err := ing.Ingest(context.Background(), chunks)
	require.NoError(t, err)

	assert.Equal(t, 9, index.Len())
	// First attempt at size 5 throttles; retry at 3, then 3, 3.
	assert.Equal(t, []int{5, 3, 3, 3}, embedder.batchSizes)

	// Recovery wait is max(3*delay, 5s); default delay 15s -> 45s.
	require.NotEmpty(t, *sleeps)
	assert.Equal(t, 45*time.Second, (*sleeps)[0])

	// Batch size never grows back during the run.
	for i := 2; i < len(embedder.batchSizes); i++ {
		assert.LessOrEqual(t, embedder.batchSizes[i], embedder.batchSizes[i-1])
	}
}

func TestIngestBatchSizeFloorsAtTwo(t *testing.T) {
	embedder := &fakeEmbedder{failOn: map[int]error{
		1: throttleErr(),
		2: throttleErr(),
	}}
	ing, _ := newTestIngestor(embedder, domain.Profile{
		Name: "tiny", BatchSize: 3, BatchDelay: time.Second,
	})

	index, err := ing.Ingest(context.Background(), makeChunks(4))
	require.NoError(t, err)

	assert.Equal(t, 4, index.Len())
	// 3 -> shrink to 2 (floor applies on the second throttle too).
	assert.Equal(t, []int{3, 2, 2, 2}, embedder.batchSizes)
}

func TestIngestSpeculativeLoweringAndLock(t *testing.T) {
	// Adaptive run: two clean batches record the proven delay and drop
	// to the floor; the next throttle snaps back and locks.
	embedder := &fakeEmbedder{failOn: map[int]error{4: throttleErr()}}
	profile := domain.Profile{Name: "test", BatchSize: 2, BatchDelay: 2 * time.Second, Adaptive: true}
	ing, sleeps := newTestIngestor(embedder, profile)

	index, err := ing.Ingest(context.Background(), makeChunks(12))
	require.NoError(t, err)
	assert.Equal(t, 12, index.Len())

	// Pacing after b1: 2s (one clean batch). After b2: lowered to the
	// floor. After b3: still floor. Batch 4 throttles: recovery wait
	// max(3*2s, 5s) = 6s with the delay restored and locked. All
	// pacing after that equals the locked 2s exactly.
	want := []time.Duration{
		2 * time.Second,
		domain.PacingFloor,
		domain.PacingFloor,
		6 * time.Second,
		2 * time.Second,
		2 * time.Second,
	}
	assert.Equal(t, want, *sleeps)
}

func TestIngestLockedRunNeverShrinksBatchSize(t *testing.T) {
	// Two consecutive throttles on the same batch with a recorded
	// last-known-good: the first locks the delay, the second changes
	// nothing. Batch size stays at its initial value throughout.
	embedder := &fakeEmbedder{failOn: map[int]error{
		3: throttleErr(),
		4: throttleErr(),
	}}
	profile := domain.Profile{Name: "test", BatchSize: 4, BatchDelay: time.Second, Adaptive: true}
	ing, _ := newTestIngestor(embedder, profile)

	index, err := ing.Ingest(context.Background(), makeChunks(16))
	require.NoError(t, err)
	assert.Equal(t, 16, index.Len())

	for _, size := range embedder.batchSizes {
		assert.Equal(t, 4, size)
	}
}

func TestIngestNonThrottleErrorIsFatal(t *testing.T) {
	fatal := errors.New("model not found")
	embedder := &fakeEmbedder{failOn: map[int]error{2: fatal}}
	ing, _ := newTestIngestor(embedder, domain.DefaultProfile)

	index, err := ing.Ingest(context.Background(), makeChunks(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, fatal)
	assert.Nil(t, index)
	// No retry after a fatal error.
	assert.Equal(t, 2, embedder.calls)
}

func TestIngestBoundedRetry(t *testing.T) {
	failures := map[int]error{}
	for i := 1; i <= maxBatchAttempts+1; i++ {
		failures[i] = throttleErr()
	}
	embedder := &fakeEmbedder{failOn: failures}
	ing, _ := newTestIngestor(embedder, domain.DefaultProfile)

	_, err := ing.Ingest(context.Background(), makeChunks(10))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, maxBatchAttempts, embedder.calls)
}

func TestIngestEmptyChunks(t *testing.T) {
	embedder := &fakeEmbedder{}
	ing, _ := newTestIngestor(embedder, domain.DefaultProfile)

	index, err := ing.Ingest(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, index.Len())
	assert.Zero(t, embedder.calls)
}

func TestIsThrottle(t *testing.T) {
	assert.True(t, isThrottle(throttleErr()))
	assert.True(t, isThrottle(errors.New("openai error (status 429): slow down")))
	assert.True(t, isThrottle(errors.New("Too Many Requests")))
	assert.False(t, isThrottle(errors.New("connection refused")))
}
