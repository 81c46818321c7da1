package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	leaderboardDto "desideri.com/pugliaclub/internal/modules/leaderboard/dto"
	leaderboardRepo "desideri.com/pugliaclub/internal/modules/leaderboard/repository"
	notifService "desideri.com/pugliaclub/internal/modules/notification/service"
	userRepo "desideri.com/pugliaclub/internal/modules/user/repository"
	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/metrics"
	"desideri.com/pugliaclub/pkg/period"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
	PrizeWinners = 3
)

// WinnerRecorder stores the prize winners of a closed month.
type WinnerRecorder interface {
	AssignWinners(ctx context.Context, monthYear string, winners []uuid.UUID) error
}

type LeaderboardService interface {
	AwardPoints(ctx context.Context, input leaderboardDto.AwardInput) (*leaderboardDto.AwardResult, error)
	ApplyPoints(ctx context.Context, input leaderboardDto.AwardInput) (*leaderboardDto.AwardResult, error)
	Announce(ctx context.Context, result *leaderboardDto.AwardResult)
	GetLeaderboard(ctx context.Context, limit int) (*leaderboardDto.LeaderboardResponse, error)
	GetUserPosition(ctx context.Context, userID uuid.UUID) (int, error)
	GetHistory(ctx context.Context, monthYear string) (*leaderboardDto.LeaderboardResponse, error)
	CloseMonth(ctx context.Context, monthYear string) (*leaderboardDto.CloseMonthResult, error)
	MonthlyPoints(ctx context.Context) (int64, error)
	CurrentMonth() string
}

type leaderboardService struct {
	repo                leaderboardRepo.LeaderboardRepository
	userRepo            userRepo.UserRepository
	notificationService notifService.NotificationService
	winners             WinnerRecorder
	now                 func() time.Time
}

func NewLeaderboardService(repo leaderboardRepo.LeaderboardRepository, userRepo userRepo.UserRepository, notificationService notifService.NotificationService, winners WinnerRecorder, now func() time.Time) LeaderboardService {
	if now == nil {
		now = time.Now
	}
	return &leaderboardService{
		repo:                repo,
		userRepo:            userRepo,
		notificationService: notificationService,
		winners:             winners,
		now:                 now,
	}
}

func (s *leaderboardService) CurrentMonth() string {
	return period.MonthYear(s.now())
}

// AwardPoints credits (or with a negative amount, debits) a member and
// promotes them when a new level threshold is crossed.
func (s *leaderboardService) AwardPoints(ctx context.Context, input leaderboardDto.AwardInput) (*leaderboardDto.AwardResult, error) {
	result, err := s.ApplyPoints(ctx, input)
	if err != nil {
		return nil, err
	}
	s.Announce(ctx, result)
	return result, nil
}

// ApplyPoints moves the member's balances and level without notifying
// anyone. It joins a transaction already carried by ctx, so callers can
// commit the points together with their own state change and call Announce
// once it is durable.
func (s *leaderboardService) ApplyPoints(ctx context.Context, input leaderboardDto.AwardInput) (*leaderboardDto.AwardResult, error) {
	if input.Points == 0 {
		return nil, fmt.Errorf("%w: points must not be zero", apperror.ErrInvalidInput)
	}

	now := s.now()
	entry := &entity.PointLog{
		UserID:      input.UserID,
		Source:      input.Source,
		ReferenceID: input.ReferenceID,
		Points:      input.Points,
		Reason:      input.Reason,
		MonthYear:   period.MonthYear(now),
		CreatedAt:   now,
	}

	out, err := s.repo.AwardPoints(ctx, entry, LevelFor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	user := out.User

	return &leaderboardDto.AwardResult{
		UserID:        user.ID,
		Source:        input.Source,
		Points:        entry.Points,
		CurrentPoints: user.CurrentPoints,
		TotalPoints:   user.TotalPoints,
		Level:         user.Level,
		PreviousLevel: out.PreviousLevel,
		LeveledUp:     levelRank(user.Level) > levelRank(out.PreviousLevel),
	}, nil
}

// Announce records metrics for a committed award and sends the level-up
// notification when one is due.
func (s *leaderboardService) Announce(ctx context.Context, result *leaderboardDto.AwardResult) {
	if result == nil {
		return
	}

	metrics.RecordPointsAwarded(result.Source, result.Points)
	if result.LeveledUp {
		s.sendLevelUpNotification(ctx, result.UserID, result.PreviousLevel, result.Level, result.TotalPoints)
	}

	log.Info().
		Str("user_id", result.UserID.String()).
		Str("source", result.Source).
		Int("points", result.Points).
		Int("total_points", result.TotalPoints).
		Msg("points awarded")
}

func levelRank(level string) int {
	switch level {
	case LevelLegend:
		return 3
	case LevelAmbassador:
		return 2
	case LevelLocalFriend:
		return 1
	default:
		return 0
	}
}

func (s *leaderboardService) sendLevelUpNotification(ctx context.Context, userID uuid.UUID, previousLevel, newLevel string, total int) {
	if s.notificationService == nil {
		return
	}
	s.notificationService.Notify(ctx, userID, entity.NotificationAchievement,
		"Nuovo livello raggiunto!",
		fmt.Sprintf("🎉 Complimenti! Sei passato da %s a %s con %d punti!", previousLevel, newLevel, total),
	)
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, limit int) (*leaderboardDto.LeaderboardResponse, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	monthYear := s.CurrentMonth()
	rows, err := s.repo.MonthlyRanking(ctx, monthYear, 0)
	if err != nil {
		return nil, err
	}

	top := rows
	if len(top) > limit {
		top = top[:limit]
	}

	entries, err := s.buildEntries(ctx, top)
	if err != nil {
		return nil, err
	}

	return &leaderboardDto.LeaderboardResponse{
		Leaderboard:       entries,
		TotalParticipants: len(rows),
		MonthYear:         monthYear,
	}, nil
}

func (s *leaderboardService) buildEntries(ctx context.Context, rows []leaderboardRepo.RankingRow) ([]leaderboardDto.LeaderboardEntry, error) {
	entries := make([]leaderboardDto.LeaderboardEntry, 0, len(rows))
	if len(rows) == 0 {
		return entries, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	userMap := make(map[uuid.UUID]entity.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	for i, row := range rows {
		u := userMap[row.UserID]
		entries = append(entries, leaderboardDto.LeaderboardEntry{
			Position:  i + 1,
			UserID:    row.UserID,
			Username:  u.Username,
			Name:      u.Name,
			AvatarURL: u.AvatarURL,
			Country:   u.Country,
			Points:    row.Score,
			Level:     LevelFor(u.TotalPoints),
		})
	}
	return entries, nil
}

// GetUserPosition returns the 1-based monthly position, or 0 when the
// member has not scored this month.
func (s *leaderboardService) GetUserPosition(ctx context.Context, userID uuid.UUID) (int, error) {
	rows, err := s.repo.MonthlyRanking(ctx, s.CurrentMonth(), 0)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if row.UserID == userID {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (s *leaderboardService) GetHistory(ctx context.Context, monthYear string) (*leaderboardDto.LeaderboardResponse, error) {
	if _, err := period.ParseMonthYear(monthYear, nil); err != nil {
		return nil, apperror.BadRequest("Invalid month_year, expected YYYY-MM")
	}

	snapshot, err := s.repo.GetSnapshot(ctx, monthYear)
	if err != nil {
		return nil, err
	}

	entries := make([]leaderboardDto.LeaderboardEntry, 0, len(snapshot))
	for _, row := range snapshot {
		entries = append(entries, leaderboardDto.LeaderboardEntry{
			Position:  row.Position,
			UserID:    row.UserID,
			Username:  row.User.Username,
			Name:      row.User.Name,
			AvatarURL: row.User.AvatarURL,
			Country:   row.User.Country,
			Points:    row.Points,
			Level:     LevelFor(row.User.TotalPoints),
		})
	}

	return &leaderboardDto.LeaderboardResponse{
		Leaderboard:       entries,
		TotalParticipants: len(entries),
		MonthYear:         monthYear,
	}, nil
}

// CloseMonth freezes the standings of a past month, hands out the prizes
// and opens the current month in a single transaction, so a failed close
// can be retried. Closing the same month twice is a no-op.
func (s *leaderboardService) CloseMonth(ctx context.Context, monthYear string) (*leaderboardDto.CloseMonthResult, error) {
	if _, err := period.ParseMonthYear(monthYear, nil); err != nil {
		return nil, apperror.BadRequest("Invalid month_year, expected YYYY-MM")
	}
	currentMonth := s.CurrentMonth()
	if monthYear >= currentMonth {
		return nil, apperror.BadRequest("Only past months can be closed")
	}

	result := &leaderboardDto.CloseMonthResult{MonthYear: monthYear, Winners: []uuid.UUID{}}
	var reset int64

	err := s.repo.Transaction(ctx, func(ctx context.Context) error {
		exists, err := s.repo.SnapshotExists(ctx, monthYear)
		if err != nil {
			return err
		}
		if exists {
			result.Skipped = true
			return nil
		}

		rows, err := s.repo.MonthlyRanking(ctx, monthYear, 0)
		if err != nil {
			return err
		}

		snapshot := make([]entity.LeaderboardSnapshot, 0, len(rows))
		for i, row := range rows {
			snapshot = append(snapshot, entity.LeaderboardSnapshot{
				MonthYear: monthYear,
				Position:  i + 1,
				UserID:    row.UserID,
				Points:    row.Score,
			})
		}
		if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
			return err
		}
		result.Participants = len(rows)

		for i := 0; i < len(rows) && i < PrizeWinners; i++ {
			result.Winners = append(result.Winners, rows[i].UserID)
		}

		if s.winners != nil && len(result.Winners) > 0 {
			if err := s.winners.AssignWinners(ctx, monthYear, result.Winners); err != nil {
				return err
			}
		}

		reset, err = s.repo.ResetMonthlyPoints(ctx, currentMonth)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result.Skipped {
		return result, nil
	}

	if s.notificationService != nil {
		for i, winnerID := range result.Winners {
			s.notificationService.Notify(ctx, winnerID, entity.NotificationAchievement,
				"Hai vinto un premio!",
				fmt.Sprintf("🏆 Sei arrivato %d° nella classifica di %s. Ti contatteremo per il tuo premio!", i+1, monthYear),
			)
		}
	}

	log.Info().
		Str("month_year", monthYear).
		Int("participants", result.Participants).
		Int64("members_reset", reset).
		Msg("leaderboard month closed")

	return result, nil
}

func (s *leaderboardService) MonthlyPoints(ctx context.Context) (int64, error) {
	return s.repo.SumPoints(ctx, s.CurrentMonth())
}
