package window

import (
	"github.com/sanjay123-Ad/AI-Backend/internal/constant"
	"github.com/sanjay123-Ad/AI-Backend/internal/entity"
	"github.com/sanjay123-Ad/AI-Backend/pkg/llm"
)

// DefaultLimit is the recency bound applied to every assembled window.
const DefaultLimit = 8

// Builder assembles the bounded message window sent to a provider. The
// synthetic system turn is not pinned: on long histories it falls out of
// the window together with the oldest turns.
type Builder struct {
	System string
	Limit  int
}

func NewBuilder(system string) *Builder {
	return &Builder{
		System: system,
		Limit:  DefaultLimit,
	}
}

// ForQuery builds the window for a fresh question: system turn, stored
// transcript, then the new user turn.
func (b *Builder) ForQuery(turns []entity.ChatTurn, question string) []llm.Message {
	msgs := make([]llm.Message, 0, len(turns)+2)
	msgs = append(msgs, llm.Message{Role: constant.ChatMessageRoleSystem, Content: b.System})
	for _, t := range turns {
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	msgs = append(msgs, llm.Message{Role: constant.ChatMessageRoleUser, Content: question})
	return b.trim(msgs)
}

// ForRegenerate builds the window for re-answering the latest question:
// system turn plus the stored transcript with every assistant turn removed.
// All prior user turns are resent; no new user turn is added.
func (b *Builder) ForRegenerate(turns []entity.ChatTurn) []llm.Message {
	msgs := make([]llm.Message, 0, len(turns)+1)
	msgs = append(msgs, llm.Message{Role: constant.ChatMessageRoleSystem, Content: b.System})
	for _, t := range turns {
		if t.Role == constant.ChatMessageRoleAssistant {
			continue
		}
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	return b.trim(msgs)
}

// trim keeps the most recent entries up to the limit, preserving order.
func (b *Builder) trim(msgs []llm.Message) []llm.Message {
	limit := b.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(msgs) <= limit {
		return msgs
	}
	return msgs[len(msgs)-limit:]
}
