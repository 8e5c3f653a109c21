package mapper

import (
	"encoding/json"
	"time"

	"github.com/sanjay123-Ad/AI-Backend/internal/entity"
	"github.com/sanjay123-Ad/AI-Backend/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	var turns []entity.ChatTurn
	if len(s.Turns) > 0 {
		// A corrupt column should not take the whole session down; the
		// transcript just comes back empty.
		if err := json.Unmarshal(s.Turns, &turns); err != nil {
			turns = nil
		}
	}

	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Turns:     turns,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	turns := s.Turns
	if turns == nil {
		turns = []entity.ChatTurn{}
	}
	raw, _ := json.Marshal(turns)

	return &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		Turns:     datatypes.JSON(raw),
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

// Completion Log Mappers

func (m *ChatMapper) CompletionLogToEntity(l *model.CompletionLog) *entity.CompletionLog {
	if l == nil {
		return nil
	}

	return &entity.CompletionLog{
		Id:            l.Id,
		ChatSessionId: l.ChatSessionId,
		UserId:        l.UserId,
		Provider:      l.Provider,
		Model:         l.Model,
		Operation:     l.Operation,
		DurationMs:    l.DurationMs,
		CreatedAt:     l.CreatedAt,
	}
}

func (m *ChatMapper) CompletionLogToModel(l *entity.CompletionLog) *model.CompletionLog {
	if l == nil {
		return nil
	}

	return &model.CompletionLog{
		Id:            l.Id,
		ChatSessionId: l.ChatSessionId,
		UserId:        l.UserId,
		Provider:      l.Provider,
		Model:         l.Model,
		Operation:     l.Operation,
		DurationMs:    l.DurationMs,
		CreatedAt:     l.CreatedAt,
	}
}
