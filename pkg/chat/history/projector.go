// Package history derives the read-side Q&A view from a flat transcript.
package history

import (
	"github.com/sanjay123-Ad/AI-Backend/internal/constant"
	"github.com/sanjay123-Ad/AI-Backend/internal/entity"
)

// Pair is one answered question.
type Pair struct {
	Question string
	Answer   string
}

// Project scans left to right pairing each user turn with the assistant
// turn directly after it. A user turn with no following assistant turn
// (a failed completion, for instance) is skipped. Pairs come back most
// recent first. Malformed or empty transcripts yield a partial or empty
// list, never an error.
func Project(turns []entity.ChatTurn) []Pair {
	pairs := make([]Pair, 0, len(turns)/2)
	for i := 0; i < len(turns); i++ {
		if turns[i].Role != constant.ChatMessageRoleUser {
			continue
		}
		if i+1 < len(turns) && turns[i+1].Role == constant.ChatMessageRoleAssistant {
			pairs = append(pairs, Pair{
				Question: turns[i].Content,
				Answer:   turns[i+1].Content,
			})
			i++
		}
	}

	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
	return pairs
}
