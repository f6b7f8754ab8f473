package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quantia-labs/docqa-cli/internal/adapters/driving/tui"
	"github.com/quantia-labs/docqa-cli/internal/core/domain"
)

var chatDocs []string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question-answering session",
	Long: `Start an interactive chat session against one or more documents.

Documents named with --doc are loaded before the session starts; more
can be loaded from inside the chat with /load and /add.

Controls:
  enter    - Ask the typed question
  /help    - List in-session commands
  esc      - Quit`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringArrayVarP(&chatDocs, "doc", "d", nil, "Document to load before the session starts (repeatable)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps stack traces visible when the terminal is
	// in the alternate screen.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := initAssistant(); err != nil {
		return err
	}

	for i, doc := range chatDocs {
		var err error
		if i == 0 {
			_, err = assistant.Load(cmd.Context(), doc, domain.TypeAuto)
		} else {
			_, err = assistant.Add(cmd.Context(), doc, domain.TypeAuto)
		}
		if err != nil {
			return fmt.Errorf("load %s: %w", doc, err)
		}
	}

	app, err := tui.NewApp(&tui.Ports{Assistant: assistant})
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}

	return nil
}
