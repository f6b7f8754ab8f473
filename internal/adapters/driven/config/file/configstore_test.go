package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	s, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSetAndGet(t *testing.T) {
	s := newTestConfigStore(t)

	require.NoError(t, s.Set(KeyLLMModel, "gpt-4o-mini"))
	require.NoError(t, s.Set(KeyChunkSize, 1000))
	require.NoError(t, s.Set("verbose", true))

	assert.Equal(t, "gpt-4o-mini", s.GetString(KeyLLMModel))
	assert.Equal(t, 1000, s.GetInt(KeyChunkSize))
	assert.True(t, s.GetBool("verbose"))
}

func TestGetMissingKeys(t *testing.T) {
	s := newTestConfigStore(t)

	_, ok := s.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, "", s.GetString("nope"))
	assert.Equal(t, 0, s.GetInt("nope"))
	assert.False(t, s.GetBool("nope"))
}

func TestSetPersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set(KeyProfile, "turbo"))

	s2, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "turbo", s2.GetString(KeyProfile))
}

func TestLoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[ai]\nllm_model = \"gpt-4o-mini\"\n\n[ingest]\nchunk_size = 800\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	s, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", s.GetString("ai.llm_model"))
	assert.Equal(t, 800, s.GetInt("ingest.chunk_size"))
}

func TestReadSettingsEnvOverridesAPIKey(t *testing.T) {
	s := newTestConfigStore(t)
	require.NoError(t, s.Set(KeyAPIKey, "stored-key"))

	t.Setenv("OPENAI_API_KEY", "env-key")
	assert.Equal(t, "env-key", ReadSettings(s).APIKey)

	t.Setenv("OPENAI_API_KEY", "")
	assert.Equal(t, "stored-key", ReadSettings(s).APIKey)
}
