package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	actionDto "desideri.com/pugliaclub/internal/modules/action/dto"
	actionRepo "desideri.com/pugliaclub/internal/modules/action/repository"
	leaderboardDto "desideri.com/pugliaclub/internal/modules/leaderboard/dto"
	leaderboardService "desideri.com/pugliaclub/internal/modules/leaderboard/service"
	notifService "desideri.com/pugliaclub/internal/modules/notification/service"
	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/metrics"
	"desideri.com/pugliaclub/pkg/period"
	"desideri.com/pugliaclub/pkg/ratelimit"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	rateLimitAction = "action_submit"
	historyLimit    = 50
	metricsKind     = "action"
)

type ActionService interface {
	ListTypes(ctx context.Context) ([]entity.ActionType, error)
	Submit(ctx context.Context, userID uuid.UUID, req actionDto.SubmitActionRequest) (*actionDto.SubmitActionResponse, error)
	History(ctx context.Context, userID uuid.UUID) ([]entity.UserAction, error)
	ListPending(ctx context.Context) ([]actionDto.PendingActionResponse, error)
	Verify(ctx context.Context, actionID uuid.UUID, status string) (*actionDto.VerifyResponse, error)
	CountPending(ctx context.Context) (int64, error)
	CountApproved(ctx context.Context, userID uuid.UUID) (int64, error)
	CountPendingForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type actionService struct {
	repo                actionRepo.ActionRepository
	leaderboardService  leaderboardService.LeaderboardService
	notificationService notifService.NotificationService
	redisClient         *redis.Client
	cooldown            time.Duration
	policy              *bluemonday.Policy
	now                 func() time.Time
}

func NewActionService(repo actionRepo.ActionRepository, leaderboardService leaderboardService.LeaderboardService, notificationService notifService.NotificationService, redisClient *redis.Client, cooldown time.Duration, now func() time.Time) ActionService {
	if now == nil {
		now = time.Now
	}
	return &actionService{
		repo:                repo,
		leaderboardService:  leaderboardService,
		notificationService: notificationService,
		redisClient:         redisClient,
		cooldown:            cooldown,
		policy:              bluemonday.StrictPolicy(),
		now:                 now,
	}
}

func (s *actionService) ListTypes(ctx context.Context) ([]entity.ActionType, error) {
	return s.repo.ListTypes(ctx, true)
}

func (s *actionService) Submit(ctx context.Context, userID uuid.UUID, req actionDto.SubmitActionRequest) (*actionDto.SubmitActionResponse, error) {
	actionType, err := s.repo.FindType(ctx, req.ActionTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Action type not found")
		}
		return nil, err
	}
	if !actionType.IsActive {
		return nil, apperror.NotFound("Action type not found")
	}

	allowed, err := ratelimit.CheckAndSet(ctx, s.redisClient, userID, rateLimitAction, s.cooldown)
	if err != nil {
		log.Warn().Err(err).Msg("rate limit check failed, allowing request")
		allowed = true
	}
	if !allowed {
		return nil, apperror.New(http.StatusTooManyRequests, "Please wait a few seconds before submitting again", apperror.ErrRateLimitExceeded)
	}

	submitted := false
	defer func() {
		if !submitted {
			_ = ratelimit.Clear(context.Background(), s.redisClient, userID, rateLimitAction)
		}
	}()

	now := s.now()
	if err := s.checkLimits(ctx, userID, actionType, now); err != nil {
		return nil, err
	}

	action := &entity.UserAction{
		UserID:             userID,
		ActionTypeID:       actionType.ID,
		ActionName:         actionType.Name,
		PointsEarned:       actionType.Points,
		Description:        strings.TrimSpace(s.policy.Sanitize(req.Description)),
		SubmissionURL:      strings.TrimSpace(req.SubmissionURL),
		VerificationStatus: entity.StatusPending,
		MonthYear:          period.MonthYear(now),
		CreatedAt:          now,
	}
	if err := s.repo.Create(ctx, action); err != nil {
		return nil, err
	}
	submitted = true

	metrics.RecordSubmission(metricsKind, entity.StatusPending)
	log.Info().
		Str("user_id", userID.String()).
		Str("action_type", actionType.ID).
		Str("action_id", action.ID.String()).
		Msg("action submitted")

	return &actionDto.SubmitActionResponse{
		Message:            "Action submitted successfully. Waiting for admin verification.",
		ActionID:           action.ID,
		VerificationStatus: entity.StatusPending,
		PointsPending:      actionType.Points,
	}, nil
}

func (s *actionService) checkLimits(ctx context.Context, userID uuid.UUID, actionType *entity.ActionType, now time.Time) error {
	windows := []struct {
		max     int
		since   time.Time
		message string
	}{
		{actionType.MaxPerDay, period.StartOfDay(now), "Daily limit reached for this action"},
		{actionType.MaxPerWeek, period.StartOfWeek(now), "Weekly limit reached for this action"},
		{actionType.MaxPerMonth, period.StartOfMonth(now), "Monthly limit reached for this action"},
	}

	for _, w := range windows {
		if w.max <= 0 {
			continue
		}
		count, err := s.repo.CountSince(ctx, userID, actionType.ID, w.since)
		if err != nil {
			return err
		}
		if count >= int64(w.max) {
			return apperror.BadRequest(w.message)
		}
	}
	return nil
}

func (s *actionService) History(ctx context.Context, userID uuid.UUID) ([]entity.UserAction, error) {
	return s.repo.ListByUser(ctx, userID, historyLimit)
}

func (s *actionService) ListPending(ctx context.Context) ([]actionDto.PendingActionResponse, error) {
	actions, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]actionDto.PendingActionResponse, 0, len(actions))
	for _, a := range actions {
		res = append(res, actionDto.PendingActionResponse{
			ID:                 a.ID,
			UserID:             a.UserID,
			UserName:           a.User.Name,
			Username:           a.User.Username,
			ActionTypeID:       a.ActionTypeID,
			ActionName:         a.ActionName,
			PointsEarned:       a.PointsEarned,
			Description:        a.Description,
			SubmissionURL:      a.SubmissionURL,
			VerificationStatus: a.VerificationStatus,
			CreatedAt:          a.CreatedAt,
		})
	}
	return res, nil
}

func (s *actionService) Verify(ctx context.Context, actionID uuid.UUID, status string) (*actionDto.VerifyResponse, error) {
	if status != entity.StatusApproved && status != entity.StatusRejected {
		return nil, apperror.BadRequest("Status must be approved or rejected")
	}

	action, err := s.repo.FindByID(ctx, actionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Action not found")
		}
		return nil, err
	}
	if action.VerificationStatus != entity.StatusPending {
		return nil, apperror.BadRequest("Action already verified")
	}

	points := action.PointsEarned
	if status == entity.StatusRejected {
		points = 0
	}

	var award *leaderboardDto.AwardResult
	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		updated, err := s.repo.UpdateVerification(ctx, action.ID, status, points, s.now())
		if err != nil {
			return err
		}
		if !updated {
			return apperror.BadRequest("Action already verified")
		}
		if status != entity.StatusApproved || points <= 0 {
			return nil
		}
		award, err = s.leaderboardService.ApplyPoints(ctx, leaderboardDto.AwardInput{
			UserID:      action.UserID,
			Points:      points,
			Source:      entity.PointSourceAction,
			ReferenceID: action.ID.String(),
			Reason:      action.ActionName,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSubmission(metricsKind, status)
	s.leaderboardService.Announce(ctx, award)

	if status == entity.StatusApproved {
		s.notify(ctx, action.UserID, entity.NotificationSuccess,
			"Azione approvata!",
			fmt.Sprintf("La tua azione \"%s\" è stata approvata. Hai guadagnato %d punti!", action.ActionName, points))
	} else {
		s.notify(ctx, action.UserID, entity.NotificationWarning,
			"Azione non approvata",
			fmt.Sprintf("La tua azione \"%s\" non è stata approvata.", action.ActionName))
	}

	log.Info().
		Str("action_id", action.ID.String()).
		Str("status", status).
		Msg("action verified")

	return &actionDto.VerifyResponse{
		Message: fmt.Sprintf("Action %s successfully", status),
		Status:  status,
	}, nil
}

func (s *actionService) notify(ctx context.Context, userID uuid.UUID, kind, title, message string) {
	if s.notificationService == nil {
		return
	}
	s.notificationService.Notify(ctx, userID, kind, title, message)
}

func (s *actionService) CountPending(ctx context.Context) (int64, error) {
	return s.repo.CountByStatus(ctx, entity.StatusPending)
}

func (s *actionService) CountApproved(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountByUserAndStatus(ctx, userID, entity.StatusApproved)
}

func (s *actionService) CountPendingForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountByUserAndStatus(ctx, userID, entity.StatusPending)
}
