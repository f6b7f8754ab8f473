package chunker

import (
	"strings"
	"testing"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, c.overlap)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		c := New(WithChunkSize(500), WithOverlap(100))
		if c.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", c.chunkSize)
		}
		if c.overlap != 100 {
			t.Errorf("expected overlap 100, got %d", c.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(150))
		if c.overlap >= c.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1))
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", c.overlap)
		}
	})
}

func TestSplit_EmptyDocument(t *testing.T) {
	c := New()
	doc := &domain.Document{Name: "empty.txt", Pages: []domain.Page{{Number: 1, Text: "  \n "}}}
	if got := c.Split(doc); len(got) != 0 {
		t.Errorf("expected no chunks, got %d", len(got))
	}
}

func TestSplit_ShortPageSingleChunk(t *testing.T) {
	c := New()
	doc := &domain.Document{
		Name:  "note.txt",
		Pages: []domain.Page{{Number: 1, Text: "a short page\nwith two lines"}},
	}

	chunks := c.Split(doc)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "a short page\nwith two lines" {
		t.Errorf("unexpected chunk text: %q", chunks[0].Text)
	}
	if chunks[0].Page != 1 || chunks[0].DocumentName != "note.txt" {
		t.Errorf("chunk metadata not carried: %+v", chunks[0])
	}
}

func TestSplit_PrefersLineBoundaries(t *testing.T) {
	c := New(WithChunkSize(25), WithOverlap(0))
	text := "first line here\nsecond line\nthird"
	doc := &domain.Document{Name: "doc", Pages: []domain.Page{{Number: 1, Text: text}}}

	chunks := c.Split(doc)
	for _, ch := range chunks {
		if len(ch.Text) > 25 {
			t.Errorf("chunk exceeds size: %q", ch.Text)
		}
		for _, ln := range strings.Split(ch.Text, "\n") {
			if !strings.Contains(text, ln) {
				t.Errorf("chunk line %q does not appear in source", ln)
			}
		}
	}
}

func TestSplit_OverlapCarriedBetweenChunks(t *testing.T) {
	c := New(WithChunkSize(30), WithOverlap(12))

	lines := []string{"alpha beta", "gamma delta", "epsilon zeta", "eta theta"}
	doc := &domain.Document{
		Name:  "doc",
		Pages: []domain.Page{{Number: 1, Text: strings.Join(lines, "\n")}},
	}

	chunks := c.Split(doc)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := strings.Split(chunks[i-1].Text, "\n")
		curFirst := strings.Split(chunks[i].Text, "\n")[0]
		if prev[len(prev)-1] != curFirst {
			t.Errorf("chunk %d does not start with tail of chunk %d: %q vs %q",
				i, i-1, curFirst, prev[len(prev)-1])
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	c := New(WithChunkSize(50), WithOverlap(10))
	doc := &domain.Document{
		Name: "doc",
		Pages: []domain.Page{
			{Number: 1, Text: strings.Repeat("some repeated content\n", 20)},
		},
	}

	first := c.Split(doc)
	second := c.Split(doc)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Errorf("chunk %d text differs between runs", i)
		}
	}
}

func TestSplit_OversizedLineHardSplit(t *testing.T) {
	c := New(WithChunkSize(20), WithOverlap(5))
	long := strings.Repeat("x", 55)
	doc := &domain.Document{Name: "doc", Pages: []domain.Page{{Number: 1, Text: long}}}

	chunks := c.Split(doc)
	if len(chunks) < 3 {
		t.Fatalf("expected the long line to be split, got %d chunks", len(chunks))
	}
	var rebuilt strings.Builder
	step := 20 - 5
	for i, ch := range chunks {
		if len(ch.Text) > 20 {
			t.Errorf("chunk %d exceeds size: %d", i, len(ch.Text))
		}
		if i == len(chunks)-1 {
			rebuilt.WriteString(ch.Text)
		} else {
			rebuilt.WriteString(ch.Text[:step])
		}
	}
	if rebuilt.String() != long {
		t.Error("hard-split fragments do not reconstruct the original line")
	}
}

func TestSplit_ChunksDoNotCrossPages(t *testing.T) {
	c := New(WithChunkSize(1000), WithOverlap(200))
	doc := &domain.Document{
		Name: "doc",
		Pages: []domain.Page{
			{Number: 1, Text: "page one content"},
			{Number: 2, Text: "page two content"},
		},
	}

	chunks := c.Split(doc)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Page != 1 || chunks[1].Page != 2 {
		t.Errorf("page back-references wrong: %d, %d", chunks[0].Page, chunks[1].Page)
	}
}
