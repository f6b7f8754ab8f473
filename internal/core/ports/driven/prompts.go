package driven

// Prompt template names.
const (
	// PromptAnswer synthesizes an answer from retrieved context.
	// Placeholders: %s (context), %s (question).
	PromptAnswer = "answer"

	// PromptChatSystem frames the interactive chat session.
	PromptChatSystem = "chat_system"
)

// PromptStore loads prompt templates, typically from user-editable
// files with embedded fallbacks.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}
