package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// addTo is the primary document the added one is merged next to.
var addTo string

var addCmd = &cobra.Command{
	Use:   "add [path-or-url]",
	Short: "Add a document to an existing index",
	Long: `Add a document to the index of a previously loaded primary document.

The primary document is restored first (a cache hit when unchanged),
then the new document is ingested and merged into the same session.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addTo, "to", "", "Primary document the index was built from (required)")
	addCmd.Flags().StringVarP(&typeFlag, "type", "t", "auto", "Document type (auto, pdf, slides, word, web, text)")
	addCmd.MarkFlagRequired("to") //nolint:errcheck
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := initAssistant(); err != nil {
		return err
	}

	docType, err := parseTypeFlag()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	// The primary is always type-detected; --type describes the added document.
	if _, err := assistant.Load(ctx, addTo, domain.TypeAuto); err != nil {
		return fmt.Errorf("load primary document: %w", err)
	}

	meta, err := assistant.Add(ctx, args[0], docType)
	if err != nil {
		return fmt.Errorf("add document: %w", err)
	}
	printMetadata(cmd, meta)

	combined, err := assistant.Info()
	if err != nil {
		return err
	}
	cmd.Println()
	cmd.Printf("Session now spans %s: %d pages, %d chunks\n",
		combined.DocumentName, combined.Pages, combined.Chunks)
	return nil
}
