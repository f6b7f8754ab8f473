package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load [path-or-url]",
	Short: "Ingest a document and cache its index",
	Long: `Load a document from a local path or URL, build its vector index and
persist it in the cache. Reloading an unchanged document is a cache
hit and costs no embedding calls.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVarP(&typeFlag, "type", "t", "auto", "Document type (auto, pdf, slides, word, web, text)")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	if err := initAssistant(); err != nil {
		return err
	}

	docType, err := parseTypeFlag()
	if err != nil {
		return err
	}

	meta, err := assistant.Load(cmd.Context(), args[0], docType)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	printMetadata(cmd, meta)
	return nil
}
