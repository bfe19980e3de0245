package chat

import (
	"fmt"

	"github.com/ananya/saathi/internal/db"
	"github.com/ananya/saathi/internal/llm"
)

// SystemPrompt is the fixed instruction sent at the head of every
// provider call.
const SystemPrompt = `You are Saathi, a caring and empathetic companion.
Always respond in a supportive, non-judgmental, and concise way.
Validate the user's emotions and offer practical wellness suggestions when they help.`

const (
	// WindowSize bounds how many transcript entries ride along as context.
	WindowSize = 10
	// promptTokenBudget bounds the windowed history, on top of the entry
	// count, so one pathological turn cannot blow up the request.
	promptTokenBudget = 1500
)

// BuildPrompt assembles the message sequence for a completion call: one
// system message, the recent transcript window, and the new user text,
// normalized so no two adjacent messages share a role. The provider
// contract requires strict user/assistant alternation after the system
// message; merging with a newline is how a violating pair is repaired.
func BuildPrompt(ident *db.Identity, window []db.TranscriptEntry, userText string) []llm.Message {
	system := SystemPrompt
	if ident != nil {
		if ident.Greeted {
			system += "\nDo not address the user by name in this reply."
		} else {
			system += fmt.Sprintf("\nThe user's name is %s. You may use it once in this reply.", ident.Name)
		}
	}

	var msgs []llm.Message
	for _, e := range window {
		if e.Role != llm.RoleUser && e.Role != llm.RoleAssistant {
			continue
		}
		msgs = append(msgs, llm.Message{Role: e.Role, Content: e.Content})
	}

	final := userText
	if ident != nil && !ident.Greeted {
		final = fmt.Sprintf("User name: %s. %s", ident.Name, userText)
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: final})

	msgs = llm.TrimMessages(msgs, promptTokenBudget)
	msgs = normalizeAlternation(msgs)

	return append([]llm.Message{{Role: llm.RoleSystem, Content: system}}, msgs...)
}

// normalizeAlternation merges adjacent same-role messages by
// concatenating contents with a newline separator.
func normalizeAlternation(msgs []llm.Message) []llm.Message {
	var out []llm.Message
	for _, m := range msgs {
		if len(out) > 0 && out[len(out)-1].Role == m.Role {
			out[len(out)-1].Content += "\n" + m.Content
			continue
		}
		out = append(out, m)
	}
	return out
}
