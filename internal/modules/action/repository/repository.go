package repository

import (
	"context"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	"desideri.com/pugliaclub/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActionRepository interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	ListTypes(ctx context.Context, activeOnly bool) ([]entity.ActionType, error)
	FindType(ctx context.Context, id string) (*entity.ActionType, error)
	UpsertType(ctx context.Context, actionType *entity.ActionType) error
	Create(ctx context.Context, action *entity.UserAction) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserAction, error)
	CountSince(ctx context.Context, userID uuid.UUID, actionTypeID string, since time.Time) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.UserAction, error)
	ListPending(ctx context.Context) ([]entity.UserAction, error)
	UpdateVerification(ctx context.Context, id uuid.UUID, status string, pointsEarned int, verifiedAt time.Time) (bool, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status string) (int64, error)
}

type actionRepository struct {
	db *gorm.DB
}

func NewActionRepository(db *gorm.DB) ActionRepository {
	return &actionRepository{db: db}
}

func (r *actionRepository) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.Transaction(ctx, r.db, fn)
}

func (r *actionRepository) ListTypes(ctx context.Context, activeOnly bool) ([]entity.ActionType, error) {
	types := []entity.ActionType{}
	q := database.Conn(ctx, r.db).Order("points ASC, id ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&types).Error
	return types, err
}

func (r *actionRepository) FindType(ctx context.Context, id string) (*entity.ActionType, error) {
	var actionType entity.ActionType
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&actionType).Error; err != nil {
		return nil, err
	}
	return &actionType, nil
}

func (r *actionRepository) UpsertType(ctx context.Context, actionType *entity.ActionType) error {
	return database.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "points", "max_per_day", "max_per_week", "max_per_month", "description", "is_active"}),
	}).Create(actionType).Error
}

func (r *actionRepository) Create(ctx context.Context, action *entity.UserAction) error {
	return database.Conn(ctx, r.db).Create(action).Error
}

func (r *actionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserAction, error) {
	var action entity.UserAction
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&action).Error; err != nil {
		return nil, err
	}
	return &action, nil
}

// CountSince counts the member's pending and approved claims of a type
// created at or after since.
func (r *actionRepository) CountSince(ctx context.Context, userID uuid.UUID, actionTypeID string, since time.Time) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.UserAction{}).
		Where("user_id = ? AND action_type_id = ? AND created_at >= ? AND verification_status <> ?",
			userID, actionTypeID, since, entity.StatusRejected).
		Count(&count).Error
	return count, err
}

func (r *actionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]entity.UserAction, error) {
	actions := []entity.UserAction{}
	err := database.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&actions).Error
	return actions, err
}

func (r *actionRepository) ListPending(ctx context.Context) ([]entity.UserAction, error) {
	actions := []entity.UserAction{}
	err := database.Conn(ctx, r.db).
		Preload("User").
		Where("verification_status = ?", entity.StatusPending).
		Order("created_at ASC").
		Find(&actions).Error
	return actions, err
}

// UpdateVerification moves a pending action to its final status. It
// reports false when the action was no longer pending.
func (r *actionRepository) UpdateVerification(ctx context.Context, id uuid.UUID, status string, pointsEarned int, verifiedAt time.Time) (bool, error) {
	res := database.Conn(ctx, r.db).Model(&entity.UserAction{}).
		Where("id = ? AND verification_status = ?", id, entity.StatusPending).
		Updates(map[string]any{
			"verification_status": status,
			"points_earned":       pointsEarned,
			"verified_at":         verifiedAt,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *actionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.UserAction{}).
		Where("verification_status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *actionRepository) CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status string) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.UserAction{}).
		Where("user_id = ? AND verification_status = ?", userID, status).
		Count(&count).Error
	return count, err
}
