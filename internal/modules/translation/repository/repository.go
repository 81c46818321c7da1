package repository

import (
	"context"

	"desideri.com/pugliaclub/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TranslationRepository interface {
	List(ctx context.Context) ([]entity.Translation, error)
	FindByKey(ctx context.Context, key string) (*entity.Translation, error)
	Upsert(ctx context.Context, translation *entity.Translation) error
	DeleteByKey(ctx context.Context, key string) (bool, error)
}

type translationRepository struct {
	db *gorm.DB
}

func NewTranslationRepository(db *gorm.DB) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) List(ctx context.Context) ([]entity.Translation, error) {
	translations := []entity.Translation{}
	err := r.db.WithContext(ctx).Order("category ASC, key ASC").Find(&translations).Error
	return translations, err
}

func (r *translationRepository) FindByKey(ctx context.Context, key string) (*entity.Translation, error) {
	var translation entity.Translation
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&translation).Error; err != nil {
		return nil, err
	}
	return &translation, nil
}

func (r *translationRepository) Upsert(ctx context.Context, translation *entity.Translation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"italian", "english", "category", "updated_at"}),
	}).Create(translation).Error
}

func (r *translationRepository) DeleteByKey(ctx context.Context, key string) (bool, error) {
	res := r.db.WithContext(ctx).Where("key = ?", key).Delete(&entity.Translation{})
	return res.RowsAffected > 0, res.Error
}
