package implementation

import (
	"context"

	"github.com/sanjay123-Ad/AI-Backend/internal/entity"
	"github.com/sanjay123-Ad/AI-Backend/internal/mapper"
	"github.com/sanjay123-Ad/AI-Backend/internal/model"
	"github.com/sanjay123-Ad/AI-Backend/internal/repository/contract"
	"github.com/sanjay123-Ad/AI-Backend/internal/repository/specification"

	"gorm.io/gorm"
)

type CompletionLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewCompletionLogRepository(db *gorm.DB) contract.CompletionLogRepository {
	return &CompletionLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *CompletionLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CompletionLogRepositoryImpl) Create(ctx context.Context, log *entity.CompletionLog) error {
	m := r.mapper.CompletionLogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.CompletionLogToEntity(m)
	return nil
}

func (r *CompletionLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CompletionLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
