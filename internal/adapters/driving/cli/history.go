package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent questions and answers",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of exchanges to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := initStores(); err != nil {
		return err
	}
	if historyStore == nil {
		return fmt.Errorf("history is unavailable")
	}

	exchanges, err := historyStore.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(exchanges) == 0 {
		cmd.Println("No history yet.")
		return nil
	}

	for _, ex := range exchanges {
		cmd.Printf("[%s]\n", ex.AskedAt.Format("2006-01-02 15:04"))
		cmd.Printf("Q: %s\n", ex.Question)
		cmd.Printf("A: %s\n", ex.Answer)
		if len(ex.Sources) > 0 {
			cmd.Print("Sources:")
			for _, src := range ex.Sources {
				cmd.Printf(" %s p.%d", src.DocumentName, src.Page)
			}
			cmd.Println()
		}
		cmd.Println()
	}
	return nil
}
