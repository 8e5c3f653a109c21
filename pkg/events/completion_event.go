package events

import (
	"time"

	"github.com/google/uuid"
)

const CompletionRecordedType = "CHAT_COMPLETION_RECORDED"

// CompletionRecorded is emitted after every successful query or regenerate
// round, once the session write-back has committed.
type CompletionRecorded struct {
	SessionId  uuid.UUID `json:"session_id"`
	UserId     uuid.UUID `json:"user_id"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	Operation  string    `json:"operation"` // "query" | "regenerate"
	DurationMs int64     `json:"duration_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}

var _ Event = &CompletionRecorded{}

func (e *CompletionRecorded) EventType() string {
	return CompletionRecordedType
}

func (e *CompletionRecorded) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":  e.SessionId.String(),
		"user_id":     e.UserId.String(),
		"provider":    e.Provider,
		"model":       e.Model,
		"operation":   e.Operation,
		"duration_ms": e.DurationMs,
		"occurred_at": e.OccurredAt,
	}
}

func (e *CompletionRecorded) Timestamp() time.Time {
	return e.OccurredAt
}
