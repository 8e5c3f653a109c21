package model

import (
	"time"

	"github.com/google/uuid"
)

type CompletionLog struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"`
	Provider      string    `gorm:"type:varchar(50);not null"`
	Model         string    `gorm:"type:varchar(100);not null"`
	Operation     string    `gorm:"type:varchar(20);not null"`
	DurationMs    int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"default:now();not null;index"`
}

func (CompletionLog) TableName() string {
	return "completion_logs"
}
