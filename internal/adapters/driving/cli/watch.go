package cli

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
	"github.com/quantia-labs/docqa-cli/internal/logger"
)

// watchDebounce coalesces the burst of events editors emit per save.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-index a local document whenever it changes",
	Long: `Watch a local document and rebuild its index on every change.

Each save produces a new cache entry keyed on the file's size and
modification time, so subsequent loads pick up the fresh index.
Press Ctrl-C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&typeFlag, "type", "t", "auto", "Document type (auto, pdf, slides, word, text)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := initAssistant(); err != nil {
		return err
	}

	docType, err := parseTypeFlag()
	if err != nil {
		return err
	}

	path := args[0]
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return fmt.Errorf("%w: watch requires a local file", domain.ErrInvalidInput)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	meta, err := assistant.Load(ctx, path, docType)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	printMetadata(cmd, meta)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck // Best-effort cleanup

	// Watch the directory: editors that replace the file on save break
	// a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	cmd.Printf("Watching %s for changes...\n", path)

	target := filepath.Clean(path)
	var debounce *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped watching.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			cmd.Printf("Change detected at %s, re-indexing...\n", time.Now().Format("15:04:05"))
			meta, err := assistant.Load(ctx, path, docType)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn("re-index of %s failed: %v", path, err)
				cmd.Printf("Re-index failed: %v\n", err)
				continue
			}
			printMetadata(cmd, meta)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}
