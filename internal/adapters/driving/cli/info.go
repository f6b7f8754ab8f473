package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [path-or-url]",
	Short: "Show index metadata for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&typeFlag, "type", "t", "auto", "Document type (auto, pdf, slides, word, web, text)")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	if err := initAssistant(); err != nil {
		return err
	}

	docType, err := parseTypeFlag()
	if err != nil {
		return err
	}

	if _, err := assistant.Load(cmd.Context(), args[0], docType); err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	meta, err := assistant.Info()
	if err != nil {
		return err
	}

	printMetadata(cmd, meta)
	return nil
}
