package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the index cache",
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached indexes",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheList(cmd *cobra.Command, args []string) error {
	if err := initStores(); err != nil {
		return err
	}

	keys, err := indexCache.Keys()
	if err != nil {
		return fmt.Errorf("list cache: %w", err)
	}

	if len(keys) == 0 {
		cmd.Println("Cache is empty.")
		return nil
	}

	cmd.Printf("Cache directory: %s\n\n", indexCache.Root())
	for _, key := range keys {
		meta, err := indexCache.Metadata(key)
		if err != nil {
			cmd.Printf("%s (unreadable: %v)\n", key, err)
			continue
		}
		cmd.Printf("%s\n", key)
		cmd.Printf("  Document: %s (%s)\n", meta.DocumentName, meta.DocumentPath)
		cmd.Printf("  Pages: %d, Chunks: %d, Characters: %d\n", meta.Pages, meta.Chunks, meta.TotalCharacters)
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	if err := initStores(); err != nil {
		return err
	}

	if err := indexCache.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	cmd.Println("Cache cleared.")
	return nil
}
