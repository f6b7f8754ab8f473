// Package fscache persists vector indexes in a content-addressed
// directory layout: one subdirectory per cache key, holding the
// serialized index and a plain-text metadata record.
package fscache

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.IndexCache = (*Cache)(nil)

const (
	indexFile    = "index.gob"
	metadataFile = "metadata.txt"
)

// Cache is a filesystem-backed index cache. Entries are immutable:
// a changed source document hashes to a new key and a new entry.
type Cache struct {
	root string
}

// New creates a cache rooted at dir. If dir is empty, defaults to
// ~/.docqa/cache.
func New(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".docqa", "cache")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Cache{root: dir}, nil
}

// Root returns the cache root directory.
func (c *Cache) Root() string {
	return c.root
}

// Key computes the cache key for a document location. URLs hash the
// location string itself; local files hash path, size and modification
// time together so any edit or replacement invalidates the old key.
func (c *Cache) Key(location string, docType domain.DocumentType) (string, error) {
	if !docType.IsLocal() {
		return hashString(location), nil
	}

	stat, err := os.Stat(location)
	if err != nil {
		return "", fmt.Errorf("%w: document %s", domain.ErrNotFound, location)
	}

	identity := fmt.Sprintf("%s|%d|%d", location, stat.Size(), stat.ModTime().UnixNano())
	return hashString(identity), nil
}

// Has reports whether a readable entry exists for the key. The
// metadata record is written last on store, so its presence marks a
// complete entry.
func (c *Cache) Has(key string) bool {
	meta, err := os.Stat(filepath.Join(c.root, key, metadataFile))
	return err == nil && meta.Mode().IsRegular()
}

// Load reconstructs the persisted entries and metadata for the key.
func (c *Cache) Load(_ context.Context, key string) ([]domain.IndexEntry, *domain.IndexMetadata, error) {
	dir := filepath.Join(c.root, key)

	meta, err := readMetadata(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, nil, fmt.Errorf("read cache metadata: %w", err)
	}

	f, err := os.Open(filepath.Join(dir, indexFile))
	if err != nil {
		return nil, nil, fmt.Errorf("open cached index: %w", err)
	}
	defer f.Close()

	var entries []domain.IndexEntry
	if err := gob.NewDecoder(f).Decode(&entries); err != nil {
		return nil, nil, fmt.Errorf("decode cached index: %w", err)
	}

	return entries, meta, nil
}

// Store persists the entries and metadata under the key. The index is
// written before the metadata record so a torn write never reads as a
// complete entry.
func (c *Cache) Store(_ context.Context, key string, entries []domain.IndexEntry, meta domain.IndexMetadata) error {
	dir := filepath.Join(c.root, key)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, indexFile))
	if err != nil {
		return fmt.Errorf("create cached index: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(entries); err != nil {
		f.Close()
		return fmt.Errorf("encode cached index: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("flush cached index: %w", err)
	}

	if err := writeMetadata(filepath.Join(dir, metadataFile), meta); err != nil {
		return fmt.Errorf("write cache metadata: %w", err)
	}
	return nil
}

// Clear removes every cache entry.
func (c *Cache) Clear() error {
	dirents, err := os.ReadDir(c.root)
	if err != nil {
		return fmt.Errorf("read cache root: %w", err)
	}
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.root, d.Name())); err != nil {
			return fmt.Errorf("remove cache entry %s: %w", d.Name(), err)
		}
	}
	return nil
}

// Keys lists the present cache keys.
func (c *Cache) Keys() ([]string, error) {
	dirents, err := os.ReadDir(c.root)
	if err != nil {
		return nil, fmt.Errorf("read cache root: %w", err)
	}
	var keys []string
	for _, d := range dirents {
		if d.IsDir() && c.Has(d.Name()) {
			keys = append(keys, d.Name())
		}
	}
	return keys, nil
}

// Metadata reads just the metadata record for a key.
func (c *Cache) Metadata(key string) (*domain.IndexMetadata, error) {
	return readMetadata(filepath.Join(c.root, key, metadataFile))
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// writeMetadata writes the record as "key: value" lines.
func writeMetadata(path string, meta domain.IndexMetadata) error {
	var b strings.Builder
	fmt.Fprintf(&b, "document_path: %s\n", meta.DocumentPath)
	fmt.Fprintf(&b, "document_name: %s\n", meta.DocumentName)
	fmt.Fprintf(&b, "pages: %d\n", meta.Pages)
	fmt.Fprintf(&b, "chunks: %d\n", meta.Chunks)
	fmt.Fprintf(&b, "total_characters: %d\n", meta.TotalCharacters)
	return os.WriteFile(path, []byte(b.String()), 0600)
}

// readMetadata parses a "key: value" record.
func readMetadata(path string) (*domain.IndexMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta := &domain.IndexMetadata{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.TrimSpace(key) {
		case "document_path":
			meta.DocumentPath = value
		case "document_name":
			meta.DocumentName = value
		case "pages":
			meta.Pages, _ = strconv.Atoi(value)
		case "chunks":
			meta.Chunks, _ = strconv.Atoi(value)
		case "total_characters":
			meta.TotalCharacters, _ = strconv.Atoi(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return meta, nil
}
