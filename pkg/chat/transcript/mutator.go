// Package transcript owns the mutation rules for a session's message log:
// appends, regenerated answers, and title derivation.
package transcript

import (
	"time"

	"github.com/sanjay123-Ad/AI-Backend/internal/constant"
	"github.com/sanjay123-Ad/AI-Backend/internal/entity"
)

const (
	titleLimit    = 40
	titleEllipsis = "..."
)

// AppendExchange records one completed question/answer round. The title is
// derived from the first question only; later questions never overwrite it.
func AppendExchange(session *entity.ChatSession, question, answer string, now time.Time) {
	session.Turns = append(session.Turns,
		entity.ChatTurn{Role: constant.ChatMessageRoleUser, Content: question},
		entity.ChatTurn{Role: constant.ChatMessageRoleAssistant, Content: answer},
	)
	if session.Title == "" {
		session.Title = DeriveTitle(question)
	}
	session.UpdatedAt = &now
}

// AppendAnswer records a regenerated answer. The question it belongs to is
// already the latest user turn, and the answer it supersedes stays in place;
// regenerate appends an alternative, it never rewrites history.
func AppendAnswer(session *entity.ChatSession, answer string, now time.Time) {
	session.Turns = append(session.Turns,
		entity.ChatTurn{Role: constant.ChatMessageRoleAssistant, Content: answer},
	)
	session.UpdatedAt = &now
}

// DeriveTitle shortens a question to the session title bound, marking the
// cut with an ellipsis.
func DeriveTitle(question string) string {
	runes := []rune(question)
	if len(runes) <= titleLimit {
		return question
	}
	return string(runes[:titleLimit]) + titleEllipsis
}

// LastQuestion returns the most recent user turn's content, scanning from
// the end. ok is false when the transcript holds no user turn.
func LastQuestion(turns []entity.ChatTurn) (string, bool) {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == constant.ChatMessageRoleUser {
			return turns[i].Content, true
		}
	}
	return "", false
}
