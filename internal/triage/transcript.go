package triage

import (
	"context"

	"clinic-assistant/internal/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/schema"
)

// TranscriptKind tags the shape a Transcript was captured in.
type TranscriptKind int

const (
	// TranscriptMessages carries one Message per turn.
	TranscriptMessages TranscriptKind = iota
	// TranscriptText carries the whole exchange as a single blob.
	TranscriptText
	// TranscriptOpaque carries a value with no usable structure.
	TranscriptOpaque
)

func (k TranscriptKind) String() string {
	switch k {
	case TranscriptMessages:
		return "messages"
	case TranscriptText:
		return "text"
	default:
		return "opaque"
	}
}

type Message struct {
	Role    string
	Content string
}

// Transcript is the adapter's view of its conversation memory. Exactly one
// of Messages, Text or Raw is meaningful, selected by Kind.
type Transcript struct {
	Kind     TranscriptKind
	Messages []Message
	Text     string
	Raw      any
}

func MessagesTranscript(msgs []Message) Transcript {
	return Transcript{Kind: TranscriptMessages, Messages: msgs}
}

func TextTranscript(text string) Transcript {
	return Transcript{Kind: TranscriptText, Text: text}
}

func OpaqueTranscript(raw any) Transcript {
	return Transcript{Kind: TranscriptOpaque, Raw: raw}
}

// transcriptOf decides the shape once: a conversation buffer yields its
// structured history, any other memory its rendered string variable, and
// anything else is kept as is.
func transcriptOf(ctx context.Context, mem schema.Memory) Transcript {
	if buf, ok := mem.(*memory.ConversationBuffer); ok && buf.ChatHistory != nil {
		if msgs, err := buf.ChatHistory.Messages(ctx); err == nil {
			out := make([]Message, 0, len(msgs))
			for _, m := range msgs {
				out = append(out, Message{Role: roleOf(m), Content: m.GetContent()})
			}
			return MessagesTranscript(out)
		}
	}
	if mem != nil {
		if vars, err := mem.LoadMemoryVariables(ctx, map[string]any{}); err == nil {
			for _, key := range mem.MemoryVariables(ctx) {
				if s, ok := vars[key].(string); ok && s != "" {
					return TextTranscript(s)
				}
			}
		}
	}
	return OpaqueTranscript(mem)
}

func roleOf(m llms.ChatMessage) string {
	switch m.GetType() {
	case llms.ChatMessageTypeHuman:
		return models.RoleUser
	case llms.ChatMessageTypeAI:
		return models.RoleAssistant
	case llms.ChatMessageTypeSystem:
		return models.RoleSystem
	}
	if g, ok := m.(llms.GenericChatMessage); ok && g.Role != "" {
		return g.Role
	}
	if t := string(m.GetType()); t != "" {
		return t
	}
	return models.RoleAssistant
}
