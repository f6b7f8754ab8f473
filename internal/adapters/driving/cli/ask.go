package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

// askDocs is the document set for the question: the first is loaded,
// the rest are added.
var askDocs []string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about documents",
	Long: `Ask a question against one or more documents. Each document is restored
from the cache when unchanged, so repeated questions are cheap.

Examples:
  docqa ask -d manual.pdf "What is the maximum operating pressure?"
  docqa ask -d manual.pdf -d addendum.pdf "What changed in revision B?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringArrayVarP(&askDocs, "doc", "d", nil, "Document path or URL (repeatable; first is primary)")
	askCmd.MarkFlagRequired("doc") //nolint:errcheck
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := initAssistant(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if _, err := assistant.Load(ctx, askDocs[0], domain.TypeAuto); err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	for _, doc := range askDocs[1:] {
		if _, err := assistant.Add(ctx, doc, domain.TypeAuto); err != nil {
			return fmt.Errorf("add document: %w", err)
		}
	}

	question := strings.Join(args, " ")
	answer, err := assistant.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	cmd.Println(answer.Text)
	if len(answer.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range answer.Sources {
			line := fmt.Sprintf("  %s, page %d", src.DocumentName, src.Page)
			if src.Section != "" {
				line += " (" + src.Section + ")"
			}
			cmd.Printf("%s  [similarity %.2f]\n", line, src.Similarity)
		}
	}
	return nil
}
