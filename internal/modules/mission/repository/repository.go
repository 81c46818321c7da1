package repository

import (
	"context"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	"desideri.com/pugliaclub/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MissionStats aggregates the submissions of one mission.
type MissionStats struct {
	MissionID     uuid.UUID
	Completions   int64
	Pending       int64
	PointsAwarded int64
}

type MissionRepository interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, mission *entity.Mission) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Mission, error)
	FindByTitle(ctx context.Context, title string) (*entity.Mission, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]entity.Mission, error)
	ListAll(ctx context.Context) ([]entity.Mission, error)
	CountActive(ctx context.Context) (int64, error)

	CreateSubmission(ctx context.Context, submission *entity.MissionSubmission) error
	FindSubmission(ctx context.Context, id uuid.UUID) (*entity.MissionSubmission, error)
	CountSubmissions(ctx context.Context, userID, missionID uuid.UUID, statuses []string, since time.Time) (int64, error)
	ListPendingSubmissions(ctx context.Context) ([]entity.MissionSubmission, error)
	UpdateSubmissionVerification(ctx context.Context, id uuid.UUID, status string, pointsEarned int, verifiedAt time.Time) (bool, error)
	Stats(ctx context.Context) ([]MissionStats, error)
	CountSubmissionsByStatus(ctx context.Context, status string) (int64, error)
	CountUserSubmissionsByStatus(ctx context.Context, userID uuid.UUID, status string) (int64, error)
}

type missionRepository struct {
	db *gorm.DB
}

func NewMissionRepository(db *gorm.DB) MissionRepository {
	return &missionRepository{db: db}
}

func (r *missionRepository) Create(ctx context.Context, mission *entity.Mission) error {
	return database.Conn(ctx, r.db).Create(mission).Error
}

func (r *missionRepository) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.Transaction(ctx, r.db, fn)
}

func (r *missionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Mission, error) {
	var mission entity.Mission
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&mission).Error; err != nil {
		return nil, err
	}
	return &mission, nil
}

func (r *missionRepository) FindByTitle(ctx context.Context, title string) (*entity.Mission, error) {
	var mission entity.Mission
	if err := database.Conn(ctx, r.db).Where("title = ?", title).First(&mission).Error; err != nil {
		return nil, err
	}
	return &mission, nil
}

func (r *missionRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := database.Conn(ctx, r.db).Model(&entity.Mission{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *missionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := database.Conn(ctx, r.db).Where("id = ?", id).Delete(&entity.Mission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *missionRepository) ListActive(ctx context.Context) ([]entity.Mission, error) {
	missions := []entity.Mission{}
	err := database.Conn(ctx, r.db).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&missions).Error
	return missions, err
}

func (r *missionRepository) ListAll(ctx context.Context) ([]entity.Mission, error) {
	missions := []entity.Mission{}
	err := database.Conn(ctx, r.db).Order("created_at DESC").Find(&missions).Error
	return missions, err
}

func (r *missionRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.Mission{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *missionRepository) CreateSubmission(ctx context.Context, submission *entity.MissionSubmission) error {
	return database.Conn(ctx, r.db).Create(submission).Error
}

func (r *missionRepository) FindSubmission(ctx context.Context, id uuid.UUID) (*entity.MissionSubmission, error) {
	var submission entity.MissionSubmission
	err := database.Conn(ctx, r.db).
		Preload("Mission", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("id = ?", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// CountSubmissions counts a member's submissions of a mission in the given
// statuses. A zero since counts all time.
func (r *missionRepository) CountSubmissions(ctx context.Context, userID, missionID uuid.UUID, statuses []string, since time.Time) (int64, error) {
	var count int64
	q := database.Conn(ctx, r.db).Model(&entity.MissionSubmission{}).
		Where("user_id = ? AND mission_id = ? AND verification_status IN ?", userID, missionID, statuses)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *missionRepository) ListPendingSubmissions(ctx context.Context) ([]entity.MissionSubmission, error) {
	submissions := []entity.MissionSubmission{}
	err := database.Conn(ctx, r.db).
		Preload("User").
		Preload("Mission", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("verification_status = ?", entity.StatusPending).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *missionRepository) UpdateSubmissionVerification(ctx context.Context, id uuid.UUID, status string, pointsEarned int, verifiedAt time.Time) (bool, error) {
	res := database.Conn(ctx, r.db).Model(&entity.MissionSubmission{}).
		Where("id = ? AND verification_status = ?", id, entity.StatusPending).
		Updates(map[string]any{
			"verification_status": status,
			"points_earned":       pointsEarned,
			"verified_at":         verifiedAt,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *missionRepository) Stats(ctx context.Context) ([]MissionStats, error) {
	var stats []MissionStats
	err := database.Conn(ctx, r.db).Model(&entity.MissionSubmission{}).
		Select(
			"mission_id, "+
				"SUM(CASE WHEN verification_status = ? THEN 1 ELSE 0 END) AS completions, "+
				"SUM(CASE WHEN verification_status = ? THEN 1 ELSE 0 END) AS pending, "+
				"SUM(CASE WHEN verification_status = ? THEN points_earned ELSE 0 END) AS points_awarded",
			entity.StatusApproved, entity.StatusPending, entity.StatusApproved,
		).
		Group("mission_id").
		Scan(&stats).Error
	return stats, err
}

func (r *missionRepository) CountSubmissionsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.MissionSubmission{}).
		Where("verification_status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *missionRepository) CountUserSubmissionsByStatus(ctx context.Context, userID uuid.UUID, status string) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.MissionSubmission{}).
		Where("user_id = ? AND verification_status = ?", userID, status).
		Count(&count).Error
	return count, err
}
