package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatTurn is one role-tagged message in a session transcript. Turns are
// immutable once stored; only the session's sequence grows.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Turns     []ChatTurn
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
