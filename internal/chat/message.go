package chat

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/brightlinelabs/leadchat/internal/leads"
)

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// Message is one conversation turn as supplied by the widget. The full
// ordered list arrives on every request; nothing is stored server-side.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toLeadMessages(history []Message) []leads.Message {
	out := make([]leads.Message, 0, len(history))
	for _, m := range history {
		out = append(out, leads.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func toOpenAIMessages(history []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		out = append(out, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return out
}
