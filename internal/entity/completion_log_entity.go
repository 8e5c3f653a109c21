package entity

import (
	"time"

	"github.com/google/uuid"
)

type CompletionLog struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	UserId        uuid.UUID
	Provider      string
	Model         string
	Operation     string
	DurationMs    int64
	CreatedAt     time.Time
}
