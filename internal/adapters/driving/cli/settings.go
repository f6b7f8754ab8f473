package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quantia-labs/docqa-cli/internal/adapters/driven/config/file"
	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the AI provider, ingestion profile, and chunking.

Settings are stored in ~/.docqa/config.toml. The OPENAI_API_KEY
environment variable overrides the stored API key.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long: `Set a configuration value by key.

Available keys:
  ai.base_url          OpenAI-compatible API base URL
  ai.embedding_model   Embedding model name
  ai.llm_model         Chat completion model name
  ingest.profile       Ingestion profile (default, turbo, extreme, ultra, maximum, insane)
  ingest.chunk_size    Target chunk size in characters
  ingest.chunk_overlap Chunk overlap in characters
  cache.dir            Index cache directory`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsAPIKeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Set the OpenAI API key",
	RunE:  runSettingsAPIKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsAPIKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := initStores(); err != nil {
		return err
	}

	settings := file.ReadSettings(configStore)

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[AI]")
	if settings.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Printf("  Base URL: %s\n", orDefault(settings.BaseURL, "https://api.openai.com/v1"))
	cmd.Printf("  Embedding Model: %s\n", orDefault(settings.EmbeddingModel, "text-embedding-3-small"))
	cmd.Printf("  LLM Model: %s\n", orDefault(settings.LLMModel, "gpt-4o-mini"))
	cmd.Println()

	cmd.Println("[Ingestion]")
	cmd.Printf("  Profile: %s\n", orDefault(settings.Profile, domain.DefaultProfile.Name))
	if settings.ChunkSize > 0 {
		cmd.Printf("  Chunk Size: %d\n", settings.ChunkSize)
	}
	if settings.ChunkOverlap > 0 {
		cmd.Printf("  Chunk Overlap: %d\n", settings.ChunkOverlap)
	}
	cmd.Println()

	cmd.Println("[Cache]")
	cmd.Printf("  Directory: %s\n", indexCache.Root())
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())

	if settings.APIKey == "" {
		cmd.Println()
		cmd.Println("No API key configured. Run 'docqa settings apikey' to set one.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := initStores(); err != nil {
		return err
	}

	key, raw := args[0], args[1]
	var value any = raw

	switch key {
	case file.KeyBaseURL, file.KeyEmbeddingModel, file.KeyLLMModel, file.KeyCacheDir:
	case file.KeyProfile:
		if _, err := domain.ProfileByName(raw); err != nil {
			return err
		}
	case file.KeyChunkSize, file.KeyChunkOverlap:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		value = int64(n)
	case file.KeyAPIKey:
		return fmt.Errorf("use 'docqa settings apikey' to set the API key")
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("save setting: %w", err)
	}

	cmd.Printf("Set %s to %s\n", key, raw)
	return nil
}

func runSettingsAPIKey(cmd *cobra.Command, _ []string) error {
	if err := initStores(); err != nil {
		return err
	}

	cmd.Print("Enter API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return fmt.Errorf("%w: API key must not be empty", domain.ErrInvalidInput)
	}

	if err := configStore.Set(file.KeyAPIKey, apiKey); err != nil {
		return fmt.Errorf("save API key: %w", err)
	}

	cmd.Printf("API key saved: %s\n", maskAPIKey(apiKey))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read the key without echo.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input.
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
