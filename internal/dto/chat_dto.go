package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SessionSummaryResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type QueryRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Question      string    `json:"question" validate:"required"`
	Model         string    `json:"model" validate:"required"`
	// Provider picks the completion backend; empty means the default.
	Provider string `json:"provider,omitempty"`
}

type RegenerateRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Model         string    `json:"model" validate:"required"`
	Provider      string    `json:"provider,omitempty"`
}

// QueryResponse carries the formatted answer for both query and regenerate.
type QueryResponse struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Title         string    `json:"title"`
	Answer        string    `json:"answer"`
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"required,max=120"`
}

type HistoryPairResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
