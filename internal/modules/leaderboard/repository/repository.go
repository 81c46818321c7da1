package repository

import (
	"context"

	"desideri.com/pugliaclub/internal/entity"
	"desideri.com/pugliaclub/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RankingRow is a member's score for one month.
type RankingRow struct {
	UserID uuid.UUID
	Score  int
}

// AwardOutcome is a member after a point movement, with the level they held
// before it.
type AwardOutcome struct {
	User          entity.User
	PreviousLevel string
}

type LeaderboardRepository interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
	AwardPoints(ctx context.Context, entry *entity.PointLog, levelFor func(total int) string) (*AwardOutcome, error)
	MonthlyRanking(ctx context.Context, monthYear string, limit int) ([]RankingRow, error)
	SumPoints(ctx context.Context, monthYear string) (int64, error)
	SnapshotExists(ctx context.Context, monthYear string) (bool, error)
	SaveSnapshot(ctx context.Context, rows []entity.LeaderboardSnapshot) error
	GetSnapshot(ctx context.Context, monthYear string) ([]entity.LeaderboardSnapshot, error)
	ResetMonthlyPoints(ctx context.Context, newMonth string) (int64, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// AwardPoints writes the ledger entry and moves both balances in one
// transaction, then stores the level levelFor derives from the new total.
// A debit larger than current_points is reduced to it, so the ledger of the
// running month keeps summing to current_points. A debit that reduces to
// nothing writes no entry; entry.Points holds the amount actually applied.
func (r *leaderboardRepository) AwardPoints(ctx context.Context, entry *entity.PointLog, levelFor func(total int) string) (*AwardOutcome, error) {
	var out AwardOutcome

	err := database.Transaction(ctx, r.db, func(ctx context.Context) error {
		tx := database.Conn(ctx, r.db)

		var user entity.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", entry.UserID).
			First(&user).Error; err != nil {
			return err
		}
		out.PreviousLevel = user.Level

		if entry.Points < 0 && -entry.Points > user.CurrentPoints {
			entry.Points = -user.CurrentPoints
		}

		if entry.Points != 0 {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}

			total := user.TotalPoints + entry.Points
			if total < 0 {
				total = 0
			}
			user.CurrentPoints += entry.Points
			user.TotalPoints = total
		}
		user.Level = levelFor(user.TotalPoints)

		if err := tx.Model(&entity.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{
				"current_points": user.CurrentPoints,
				"total_points":   user.TotalPoints,
				"level":          user.Level,
			}).Error; err != nil {
			return err
		}

		out.User = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *leaderboardRepository) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return database.Transaction(ctx, r.db, fn)
}

// MonthlyRanking sums the month's ledger per member, best first. Admins and
// members without a positive score are left out; ties go to whoever got
// there first. limit <= 0 returns everyone.
func (r *leaderboardRepository) MonthlyRanking(ctx context.Context, monthYear string, limit int) ([]RankingRow, error) {
	var rows []RankingRow

	q := database.Conn(ctx, r.db).
		Table("point_logs").
		Select("point_logs.user_id AS user_id, SUM(point_logs.points) AS score").
		Joins("JOIN users ON users.id = point_logs.user_id").
		Where("point_logs.month_year = ? AND users.is_admin = ?", monthYear, false).
		Group("point_logs.user_id").
		Having("SUM(point_logs.points) > 0").
		Order("score DESC").
		Order("MAX(point_logs.created_at) ASC").
		Order("point_logs.user_id ASC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *leaderboardRepository) SumPoints(ctx context.Context, monthYear string) (int64, error) {
	var total int64
	err := database.Conn(ctx, r.db).Model(&entity.PointLog{}).
		Select("COALESCE(SUM(points), 0)").
		Where("month_year = ? AND points > 0", monthYear).
		Scan(&total).Error
	return total, err
}

func (r *leaderboardRepository) SnapshotExists(ctx context.Context, monthYear string) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entity.LeaderboardSnapshot{}).
		Where("month_year = ?", monthYear).
		Count(&count).Error
	return count > 0, err
}

func (r *leaderboardRepository) SaveSnapshot(ctx context.Context, rows []entity.LeaderboardSnapshot) error {
	if len(rows) == 0 {
		return nil
	}
	return database.Conn(ctx, r.db).CreateInBatches(rows, 100).Error
}

func (r *leaderboardRepository) GetSnapshot(ctx context.Context, monthYear string) ([]entity.LeaderboardSnapshot, error) {
	var rows []entity.LeaderboardSnapshot
	err := database.Conn(ctx, r.db).
		Preload("User").
		Where("month_year = ?", monthYear).
		Order("position ASC").
		Find(&rows).Error
	return rows, err
}

// ResetMonthlyPoints starts a new month for every member not yet moved to
// it. current_points is recomputed from the new month's ledger so points
// earned before the reset ran are kept.
func (r *leaderboardRepository) ResetMonthlyPoints(ctx context.Context, newMonth string) (int64, error) {
	res := database.Conn(ctx, r.db).Model(&entity.User{}).
		Where("last_reset_month IS NULL OR last_reset_month <> ?", newMonth).
		Updates(map[string]any{
			"current_points": gorm.Expr(
				"(SELECT COALESCE(SUM(point_logs.points), 0) FROM point_logs WHERE point_logs.user_id = users.id AND point_logs.month_year = ?)",
				newMonth,
			),
			"last_reset_month": newMonth,
		})
	return res.RowsAffected, res.Error
}
