package contract

import (
	"context"

	"github.com/sanjay123-Ad/AI-Backend/internal/entity"
	"github.com/sanjay123-Ad/AI-Backend/internal/repository/specification"
)

type CompletionLogRepository interface {
	Create(ctx context.Context, log *entity.CompletionLog) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
