// Package chunker provides a fixed-size, line-boundary-aware text
// chunking implementation.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Chunker splits document pages into overlapping chunks, preferring to
// cut on line boundaries. A chunk never crosses a page boundary.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split produces the ordered chunk sequence for a document.
func (c *Chunker) Split(doc *domain.Document) []domain.Chunk {
	var chunks []domain.Chunk
	for i := range doc.Pages {
		page := &doc.Pages[i]
		for _, text := range c.splitText(page.Text) {
			chunks = append(chunks, domain.Chunk{
				ID:           uuid.New().String(),
				DocumentName: doc.Name,
				Page:         page.Number,
				Section:      page.Section,
				Text:         text,
			})
		}
	}
	return chunks
}

// splitText cuts one page's text into chunk texts. Lines are packed
// greedily up to the chunk size; when a chunk is emitted, trailing
// lines totalling at most the overlap are carried into the next one.
func (c *Chunker) splitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	pieces := c.splitOversized(strings.Split(text, "\n"))

	var (
		out    []string
		cur    []string
		curLen int
	)

	flush := func() {
		if curLen == 0 {
			return
		}
		out = append(out, strings.Join(cur, "\n"))
		cur, curLen = overlapTail(cur, c.overlap)
	}

	for _, p := range pieces {
		added := len(p)
		if curLen > 0 {
			added++ // joining newline
		}
		if curLen > 0 && curLen+added > c.chunkSize {
			flush()
			added = len(p)
			if curLen > 0 {
				added++
			}
		}
		cur = append(cur, p)
		curLen += added
	}

	if curLen > 0 {
		out = append(out, strings.Join(cur, "\n"))
	}
	return out
}

// splitOversized hard-splits any line longer than the chunk size,
// stepping by (size - overlap) so the fragments themselves overlap.
func (c *Chunker) splitOversized(lines []string) []string {
	step := c.chunkSize - c.overlap
	pieces := make([]string, 0, len(lines))
	for _, ln := range lines {
		if len(ln) <= c.chunkSize {
			pieces = append(pieces, ln)
			continue
		}
		for start := 0; ; start += step {
			end := start + c.chunkSize
			if end >= len(ln) {
				pieces = append(pieces, ln[start:])
				break
			}
			pieces = append(pieces, ln[start:end])
		}
	}
	return pieces
}

// overlapTail returns the trailing lines whose joined length does not
// exceed the overlap budget, with the resulting length.
func overlapTail(lines []string, overlap int) ([]string, int) {
	if overlap == 0 || len(lines) == 0 {
		return nil, 0
	}

	total := 0
	start := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		add := len(lines[i])
		if total > 0 {
			add++
		}
		if total+add > overlap {
			break
		}
		total += add
		start = i
	}

	if start == len(lines) {
		return nil, 0
	}
	tail := make([]string, len(lines)-start)
	copy(tail, lines[start:])
	return tail, total
}
