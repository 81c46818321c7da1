package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"desideri.com/pugliaclub/internal/entity"
	leaderboardDto "desideri.com/pugliaclub/internal/modules/leaderboard/dto"
	leaderboardService "desideri.com/pugliaclub/internal/modules/leaderboard/service"
	missionDto "desideri.com/pugliaclub/internal/modules/mission/dto"
	missionRepo "desideri.com/pugliaclub/internal/modules/mission/repository"
	notifService "desideri.com/pugliaclub/internal/modules/notification/service"
	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/media"
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
	rateLimitMission = "mission_submit"
	photoFolder      = "missions"
	metricsKind      = "mission"
)

type MissionService interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]missionDto.MissionResponse, error)
	Complete(ctx context.Context, userID, missionID uuid.UUID) (*missionDto.CompleteMissionResponse, error)
	Submit(ctx context.Context, userID, missionID uuid.UUID, req missionDto.SubmitMissionRequest) (*missionDto.SubmitMissionResponse, error)

	ListAll(ctx context.Context) ([]entity.Mission, error)
	Create(ctx context.Context, req missionDto.CreateMissionRequest) (*missionDto.CreateMissionResponse, error)
	Update(ctx context.Context, missionID uuid.UUID, req missionDto.UpdateMissionRequest) error
	Delete(ctx context.Context, missionID uuid.UUID) error
	Statistics(ctx context.Context) (*missionDto.StatisticsResponse, error)
	ListPendingSubmissions(ctx context.Context) ([]missionDto.PendingSubmissionResponse, error)
	VerifySubmission(ctx context.Context, submissionID uuid.UUID, status string) (*missionDto.VerifyResponse, error)

	CountPending(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountCompleted(ctx context.Context, userID uuid.UUID) (int64, error)
	CountPendingForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type missionService struct {
	repo                missionRepo.MissionRepository
	leaderboardService  leaderboardService.LeaderboardService
	notificationService notifService.NotificationService
	publisher           media.Publisher
	redisClient         *redis.Client
	cooldown            time.Duration
	policy              *bluemonday.Policy
	now                 func() time.Time
}

func NewMissionService(repo missionRepo.MissionRepository, leaderboardService leaderboardService.LeaderboardService, notificationService notifService.NotificationService, publisher media.Publisher, redisClient *redis.Client, cooldown time.Duration, now func() time.Time) MissionService {
	if now == nil {
		now = time.Now
	}
	if publisher == nil {
		publisher = media.NewPublisher(nil)
	}
	return &missionService{
		repo:                repo,
		leaderboardService:  leaderboardService,
		notificationService: notificationService,
		publisher:           publisher,
		redisClient:         redisClient,
		cooldown:            cooldown,
		policy:              bluemonday.StrictPolicy(),
		now:                 now,
	}
}

func (s *missionService) findActive(ctx context.Context, missionID uuid.UUID) (*entity.Mission, error) {
	mission, err := s.repo.FindByID(ctx, missionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Mission not found")
		}
		return nil, err
	}
	if !mission.IsActive {
		return nil, apperror.NotFound("Mission not found")
	}
	return mission, nil
}

func (s *missionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]missionDto.MissionResponse, error) {
	missions, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	res := make([]missionDto.MissionResponse, 0, len(missions))
	for i := range missions {
		m := &missions[i]
		since := periodStart(m.Frequency, now)

		completed, err := s.repo.CountSubmissions(ctx, userID, m.ID, []string{entity.StatusApproved}, since)
		if err != nil {
			return nil, err
		}
		pending, err := s.repo.CountSubmissions(ctx, userID, m.ID, []string{entity.StatusPending}, since)
		if err != nil {
			return nil, err
		}

		available := true
		if err := s.checkLimits(ctx, userID, m, now); err != nil {
			if !errors.Is(err, apperror.ErrBadRequest) {
				return nil, err
			}
			available = false
		}

		res = append(res, missionDto.MissionResponse{
			Mission:         *m,
			Available:       available,
			Completed:       completed > 0,
			PendingApproval: pending > 0,
		})
	}
	return res, nil
}

// Complete records a mission that needs no proof and awards its points
// straight away.
func (s *missionService) Complete(ctx context.Context, userID, missionID uuid.UUID) (*missionDto.CompleteMissionResponse, error) {
	mission, err := s.findActive(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.NeedsSubmission() {
		return nil, apperror.BadRequest("This mission requires a submission")
	}

	now := s.now()
	if err := s.checkLimits(ctx, userID, mission, now); err != nil {
		return nil, err
	}

	submission := &entity.MissionSubmission{
		MissionID:          mission.ID,
		UserID:             userID,
		VerificationStatus: entity.StatusApproved,
		PointsEarned:       mission.Points,
		MonthYear:          period.MonthYear(now),
		CreatedAt:          now,
		VerifiedAt:         &now,
	}
	var award *leaderboardDto.AwardResult
	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateSubmission(ctx, submission); err != nil {
			return err
		}
		var err error
		award, err = s.applyAward(ctx, userID, mission, submission.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordSubmission(metricsKind, entity.StatusApproved)
	s.leaderboardService.Announce(ctx, award)

	return &missionDto.CompleteMissionResponse{
		Message:      fmt.Sprintf("Mission completed! You earned %d points", mission.Points),
		PointsEarned: mission.Points,
	}, nil
}

func (s *missionService) Submit(ctx context.Context, userID, missionID uuid.UUID, req missionDto.SubmitMissionRequest) (*missionDto.SubmitMissionResponse, error) {
	mission, err := s.findActive(ctx, missionID)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(s.policy.Sanitize(req.Description))
	link := strings.TrimSpace(req.SubmissionURL)

	if mission.RequiresDescription && description == "" {
		return nil, apperror.BadRequest("Description is required")
	}
	if mission.RequiresPhoto && req.Photo == nil {
		return nil, apperror.BadRequest("Photo is required")
	}
	if mission.RequiresLink && link == "" {
		return nil, apperror.BadRequest("Link is required")
	}
	if req.Photo != nil && !media.IsImage(req.Photo.ContentType) {
		return nil, apperror.BadRequest("File must be an image")
	}

	allowed, err := ratelimit.CheckAndSet(ctx, s.redisClient, userID, rateLimitMission, s.cooldown)
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
			_ = ratelimit.Clear(context.Background(), s.redisClient, userID, rateLimitMission)
		}
	}()

	now := s.now()
	if err := s.checkLimits(ctx, userID, mission, now); err != nil {
		return nil, err
	}

	var photoURL string
	if req.Photo != nil {
		fileName := fmt.Sprintf("%s_%s_%d", mission.ID, userID, now.Unix())
		photoURL, err = s.publisher.Publish(ctx, req.Photo.Reader, media.PhotoPreset, photoFolder, fileName)
		if err != nil {
			return nil, err
		}
	}

	status := entity.StatusApproved
	points := mission.Points
	var verifiedAt *time.Time
	if mission.RequiresApproval {
		status = entity.StatusPending
		points = 0
	} else {
		verifiedAt = &now
	}

	submission := &entity.MissionSubmission{
		MissionID:          mission.ID,
		UserID:             userID,
		Description:        description,
		PhotoURL:           photoURL,
		SubmissionURL:      link,
		VerificationStatus: status,
		PointsEarned:       points,
		MonthYear:          period.MonthYear(now),
		CreatedAt:          now,
		VerifiedAt:         verifiedAt,
	}
	var award *leaderboardDto.AwardResult
	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateSubmission(ctx, submission); err != nil {
			return err
		}
		if mission.RequiresApproval {
			return nil
		}
		var err error
		award, err = s.applyAward(ctx, userID, mission, submission.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	submitted = true
	metrics.RecordSubmission(metricsKind, status)
	s.leaderboardService.Announce(ctx, award)

	log.Info().
		Str("user_id", userID.String()).
		Str("mission_id", mission.ID.String()).
		Str("status", status).
		Msg("mission submitted")

	if !mission.RequiresApproval {
		return &missionDto.SubmitMissionResponse{
			Message:          fmt.Sprintf("Mission completed! You earned %d points", points),
			SubmissionID:     submission.ID,
			RequiresApproval: false,
			PointsEarned:     points,
		}, nil
	}

	return &missionDto.SubmitMissionResponse{
		Message:          "Mission submitted successfully. Waiting for admin approval.",
		SubmissionID:     submission.ID,
		RequiresApproval: true,
		PointsEarned:     0,
	}, nil
}

// applyAward credits the mission points inside the caller's transaction.
// Announcing the award is left to the caller once it has committed.
func (s *missionService) applyAward(ctx context.Context, userID uuid.UUID, mission *entity.Mission, submissionID uuid.UUID) (*leaderboardDto.AwardResult, error) {
	if mission.Points <= 0 {
		return nil, nil
	}
	return s.leaderboardService.ApplyPoints(ctx, leaderboardDto.AwardInput{
		UserID:      userID,
		Points:      mission.Points,
		Source:      entity.PointSourceMission,
		ReferenceID: submissionID.String(),
		Reason:      mission.Title,
	})
}

func (s *missionService) notify(ctx context.Context, userID uuid.UUID, kind, title, message string) {
	if s.notificationService == nil {
		return
	}
	s.notificationService.Notify(ctx, userID, kind, title, message)
}

func (s *missionService) CountPending(ctx context.Context) (int64, error) {
	return s.repo.CountSubmissionsByStatus(ctx, entity.StatusPending)
}

func (s *missionService) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}

func (s *missionService) CountCompleted(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUserSubmissionsByStatus(ctx, userID, entity.StatusApproved)
}

func (s *missionService) CountPendingForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUserSubmissionsByStatus(ctx, userID, entity.StatusPending)
}
