package unitofwork

import (
	"context"

	"github.com/sanjay123-Ad/AI-Backend/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	CompletionLogRepository() contract.CompletionLogRepository
}
