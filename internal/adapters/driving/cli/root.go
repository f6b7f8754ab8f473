// Package cli provides the docqa command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantia-labs/docqa-cli/internal/adapters/driven/cache/fscache"
	"github.com/quantia-labs/docqa-cli/internal/adapters/driven/config/file"
	openaiembed "github.com/quantia-labs/docqa-cli/internal/adapters/driven/embedding/openai"
	historysqlite "github.com/quantia-labs/docqa-cli/internal/adapters/driven/history/sqlite"
	openaillm "github.com/quantia-labs/docqa-cli/internal/adapters/driven/llm/openai"
	"github.com/quantia-labs/docqa-cli/internal/adapters/driven/vector/memory"
	"github.com/quantia-labs/docqa-cli/internal/chunker"
	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
	"github.com/quantia-labs/docqa-cli/internal/core/ports/driving"
	"github.com/quantia-labs/docqa-cli/internal/core/services"
	"github.com/quantia-labs/docqa-cli/internal/loaders"
	"github.com/quantia-labs/docqa-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "0.1.0"

// Shared service instances, wired by initAssistant / initStores.
var (
	configStore  driven.ConfigStore
	promptStore  driven.PromptStore
	historyStore driven.HistoryStore
	indexCache   *fscache.Cache
	assistant    driving.Assistant

	verbose     bool
	profileName string
	typeFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Ask questions about your documents",
	Long: `docqa ingests PDF, Word, slide, web and plain-text documents into a
local vector index and answers questions about them, citing pages.

Built indexes are cached on disk keyed by document identity, so
reloading an unchanged document never re-embeds it.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Ingestion profile (default, turbo, extreme, ultra, maximum, insane)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initStores wires the stores that work without an API key.
func initStores() error {
	if configStore != nil {
		return nil
	}

	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	configStore = store

	settings := file.ReadSettings(configStore)

	cache, err := fscache.New(settings.CacheDir)
	if err != nil {
		return fmt.Errorf("open index cache: %w", err)
	}
	indexCache = cache

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}
	promptStore = prompts

	history, err := historysqlite.NewStore("")
	if err != nil {
		// History is a convenience; the assistant works without it.
		logger.Warn("History store unavailable: %v", err)
	} else {
		historyStore = history
	}

	return nil
}

// initAssistant wires the full service graph. Requires an API key.
func initAssistant() error {
	if assistant != nil {
		return nil
	}
	if err := initStores(); err != nil {
		return err
	}

	settings := file.ReadSettings(configStore)
	if settings.APIKey == "" {
		return errors.New("no OpenAI API key configured: set OPENAI_API_KEY or run 'docqa settings apikey'")
	}

	embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.EmbeddingModel,
	})
	if err != nil {
		return fmt.Errorf("create embedding service: %w", err)
	}

	llm, err := openaillm.NewLLMService(openaillm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.LLMModel,
	})
	if err != nil {
		return fmt.Errorf("create LLM service: %w", err)
	}

	profile, err := resolveProfile(settings)
	if err != nil {
		return err
	}
	logger.Debug("Using profile %s", profile.Name)

	splitter := newChunker(settings)
	ingestor := services.NewIngestor(embedder, memory.Factory, profile)

	svc := services.NewAssistant(
		loaders.Default(),
		splitter,
		embedder,
		llm,
		indexCache,
		memory.Factory,
		ingestor,
	)
	svc.SetPromptStore(promptStore)
	if historyStore != nil {
		svc.SetHistoryStore(historyStore)
	}

	assistant = svc
	return nil
}

// resolveProfile picks the ingestion profile: the --profile flag wins
// over the configured default.
func resolveProfile(settings file.Settings) (domain.Profile, error) {
	name := settings.Profile
	if profileName != "" {
		name = profileName
	}
	return domain.ProfileByName(name)
}

// newChunker applies configured chunking overrides.
func newChunker(settings file.Settings) driven.Chunker {
	var opts []chunker.Option
	if settings.ChunkSize > 0 {
		opts = append(opts, chunker.WithChunkSize(settings.ChunkSize))
	}
	if settings.ChunkOverlap > 0 {
		opts = append(opts, chunker.WithOverlap(settings.ChunkOverlap))
	}
	return chunker.New(opts...)
}

// parseTypeFlag maps the --type flag to a document type.
func parseTypeFlag() (domain.DocumentType, error) {
	switch typeFlag {
	case "", "auto":
		return domain.TypeAuto, nil
	case "pdf":
		return domain.TypePDF, nil
	case "slides", "ppt", "pptx":
		return domain.TypeSlides, nil
	case "word", "doc", "docx":
		return domain.TypeWord, nil
	case "web":
		return domain.TypeWeb, nil
	case "text", "txt":
		return domain.TypeText, nil
	default:
		return "", fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidInput, typeFlag)
	}
}

// printMetadata renders index metadata in the standard layout.
func printMetadata(cmd *cobra.Command, meta *domain.IndexMetadata) {
	cmd.Printf("Document: %s\n", meta.DocumentName)
	cmd.Printf("  Path:       %s\n", meta.DocumentPath)
	cmd.Printf("  Pages:      %d\n", meta.Pages)
	cmd.Printf("  Chunks:     %d\n", meta.Chunks)
	cmd.Printf("  Characters: %d\n", meta.TotalCharacters)
}
