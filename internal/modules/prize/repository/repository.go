package repository

import (
	"context"

	"desideri.com/pugliaclub/internal/entity"
	"desideri.com/pugliaclub/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PrizeRepository interface {
	FindByMonth(ctx context.Context, monthYear string) ([]entity.Prize, error)
	FindOne(ctx context.Context, monthYear string, position int) (*entity.Prize, error)
	Upsert(ctx context.Context, prize *entity.Prize) error
	Delete(ctx context.Context, monthYear string, position int) error
}

type prizeRepository struct {
	db *gorm.DB
}

func NewPrizeRepository(db *gorm.DB) PrizeRepository {
	return &prizeRepository{db: db}
}

func (r *prizeRepository) FindByMonth(ctx context.Context, monthYear string) ([]entity.Prize, error) {
	prizes := []entity.Prize{}
	err := database.Conn(ctx, r.db).
		Where("month_year = ?", monthYear).
		Order("position ASC").
		Find(&prizes).Error
	return prizes, err
}

func (r *prizeRepository) FindOne(ctx context.Context, monthYear string, position int) (*entity.Prize, error) {
	var prize entity.Prize
	err := database.Conn(ctx, r.db).
		Where("month_year = ? AND position = ?", monthYear, position).
		First(&prize).Error
	if err != nil {
		return nil, err
	}
	return &prize, nil
}

// Upsert writes the prize keyed by (month_year, position). Rows loaded from
// the database are saved in place.
func (r *prizeRepository) Upsert(ctx context.Context, prize *entity.Prize) error {
	if prize.ID != 0 {
		return database.Conn(ctx, r.db).Save(prize).Error
	}
	return database.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "month_year"}, {Name: "position"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "image_url", "is_custom", "winner_id", "claimed", "updated_at",
		}),
	}).Create(prize).Error
}

func (r *prizeRepository) Delete(ctx context.Context, monthYear string, position int) error {
	return database.Conn(ctx, r.db).
		Where("month_year = ? AND position = ?", monthYear, position).
		Delete(&entity.Prize{}).Error
}
