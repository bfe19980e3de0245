package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/ananya/saathi/internal/db"
	"github.com/ananya/saathi/internal/llm"
)

// Service orchestrates one conversation turn: identity handling, prompt
// assembly, the provider call, and reply shaping. Provider failures never
// escape a turn; they degrade to an offline reply.
type Service struct {
	db        *db.DB
	client    llm.Client
	identity  *IdentityStore
	sentiment Classifier
}

func New(database *db.DB, client llm.Client) *Service {
	return &Service{
		db:        database,
		client:    client,
		identity:  NewIdentityStore(database),
		sentiment: KeywordClassifier{},
	}
}

// Reply is the structured result of a turn. Tone and Tip are advisory
// extras riding alongside the formatted content; Text is the plain
// rendering that goes into the transcript.
type Reply struct {
	Text    string  `json:"text"`
	Content Content `json:"content"`
	Tone    string  `json:"tone,omitempty"`
	Tip     string  `json:"tip,omitempty"`
	Offline bool    `json:"offline,omitempty"`
}

const offlineReply = "(Offline Mode) I couldn't reach my thinking service just now, but I'm still here with you."

// Respond handles one incoming user message.
//
// With no persisted identity the turn is a name negotiation and makes no
// provider call: an extractable name is greeted and stored, anything else
// gets a request for a name. With identity known, the turn assembles the
// prompt window, calls the provider, formats the result, and appends
// exactly one user and one assistant entry to the transcript.
func (s *Service) Respond(ctx context.Context, userText string) (*Reply, error) {
	if userText == "" {
		return canned("Please enter a message."), nil
	}

	ident, err := s.identity.Get()
	if err != nil {
		return nil, fmt.Errorf("loading identity: %w", err)
	}

	if ident == nil {
		if name := ExtractName(userText); name != "" {
			ok, err := s.identity.Set(name)
			if err != nil {
				return nil, err
			}
			if ok {
				if err := s.identity.MarkGreeted(); err != nil {
					return nil, err
				}
				return canned(fmt.Sprintf("Nice to meet you, %s! How are you feeling today?", name)), nil
			}
		}
		return canned("I'd love to know what to call you. What's your name?"), nil
	}

	label, _ := s.sentiment.Classify(userText)
	tone, tip := toneForSentiment(label)

	window, err := s.db.RecentTranscript(WindowSize)
	if err != nil {
		// A missing window degrades the prompt, not the turn.
		log.Printf("chat: reading transcript window: %v", err)
		window = nil
	}

	msgs := BuildPrompt(ident, window, userText)

	offline := false
	raw, err := s.client.Chat(ctx, msgs)
	if err != nil {
		log.Printf("chat: provider failure: %v", err)
		raw = offlineReply
		offline = true
	}

	content := Format(raw, FormatOptions{Followup: ChooseFollowup(userText)})
	text := content.Text()

	// Terminal step: the turn is recorded only once the reply exists, so
	// a failed provider call loses no state. The name rides on a user
	// entry just once, before the greeting flag flips.
	entryName := ""
	if !ident.Greeted {
		entryName = ident.Name
	}
	if _, err := s.db.AppendTranscript(llm.RoleUser, userText, entryName, nil); err != nil {
		return nil, fmt.Errorf("appending user turn: %w", err)
	}
	var meta map[string]any
	if offline {
		meta = map[string]any{"offline": true}
	}
	if _, err := s.db.AppendTranscript(llm.RoleAssistant, text, "", meta); err != nil {
		return nil, fmt.Errorf("appending assistant turn: %w", err)
	}

	if !ident.Greeted {
		if err := s.identity.MarkGreeted(); err != nil {
			return nil, err
		}
	}

	return &Reply{Text: text, Content: content, Tone: tone, Tip: tip, Offline: offline}, nil
}

// Transcript exposes the full conversation log.
func (s *Service) Transcript() ([]db.TranscriptEntry, error) {
	return s.db.ListTranscript()
}

func canned(text string) *Reply {
	return &Reply{Text: text, Content: Content{Blocks: []Block{paragraphOf(text)}}}
}
