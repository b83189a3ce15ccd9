package conversation

import (
	"strings"

	"github.com/wolfman30/saathi/internal/session"
)

// ContextWindow is how many stored turns, the current one included, are
// replayed to the provider. It is independent of the storage window in
// package session.
const ContextWindow = 5

// BuildPrompt renders persona, the last ContextWindow turns of history and the
// new message into one text block ending with the assistant cue.
func BuildPrompt(persona string, history []session.Turn, message string) string {
	if len(history) > ContextWindow {
		history = history[len(history)-ContextWindow:]
	}

	var b strings.Builder
	b.WriteString(persona)
	if len(history) > 0 {
		b.WriteString("\n\nConversation History:\n")
		for _, turn := range history {
			b.WriteString(roleLabel(turn.Role))
			b.WriteString(": ")
			b.WriteString(turn.Content)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("\n")
	}
	b.WriteString("\nUser: ")
	b.WriteString(message)
	b.WriteString("\n\n")
	b.WriteString(AssistantName)
	b.WriteString(":")
	return b.String()
}

func roleLabel(role session.Role) string {
	if role == session.RoleUser {
		return "User"
	}
	return AssistantName
}
