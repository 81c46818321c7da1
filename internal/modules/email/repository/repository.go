package repository

import (
	"context"

	"desideri.com/pugliaclub/internal/entity"
	"gorm.io/gorm"
)

type EmailLogRepository interface {
	Create(ctx context.Context, log *entity.EmailLog) error
	List(ctx context.Context, limit int) ([]entity.EmailLog, error)
}

type emailLogRepository struct {
	db *gorm.DB
}

func NewEmailLogRepository(db *gorm.DB) EmailLogRepository {
	return &emailLogRepository{db: db}
}

func (r *emailLogRepository) Create(ctx context.Context, log *entity.EmailLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *emailLogRepository) List(ctx context.Context, limit int) ([]entity.EmailLog, error) {
	logs := []entity.EmailLog{}
	err := r.db.WithContext(ctx).Order("sent_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
