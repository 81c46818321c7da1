package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"desideri.com/pugliaclub/internal/entity"
	leaderboardDto "desideri.com/pugliaclub/internal/modules/leaderboard/dto"
	missionDto "desideri.com/pugliaclub/internal/modules/mission/dto"
	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/metrics"
	"desideri.com/pugliaclub/pkg/period"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func (s *missionService) ListAll(ctx context.Context) ([]entity.Mission, error) {
	return s.repo.ListAll(ctx)
}

func (s *missionService) Create(ctx context.Context, req missionDto.CreateMissionRequest) (*missionDto.CreateMissionResponse, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	photoSource := req.PhotoSource
	if photoSource == "" {
		photoSource = "any"
	}
	requirements := req.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	mission := &entity.Mission{
		Title:               strings.TrimSpace(req.Title),
		Description:         s.policy.Sanitize(req.Description),
		Points:              req.Points,
		Frequency:           req.Frequency,
		DailyLimit:          req.DailyLimit,
		WeeklyLimit:         req.WeeklyLimit,
		IsActive:            isActive,
		Requirements:        requirements,
		RequiresDescription: req.RequiresDescription,
		RequiresPhoto:       req.RequiresPhoto,
		PhotoSource:         photoSource,
		RequiresLink:        req.RequiresLink,
		RequiresApproval:    req.RequiresApproval,
		MonthYear:           period.MonthYear(s.now()),
	}
	if err := s.repo.Create(ctx, mission); err != nil {
		return nil, err
	}

	log.Info().Str("mission_id", mission.ID.String()).Str("title", mission.Title).Msg("mission created")

	return &missionDto.CreateMissionResponse{
		Message:   "Mission created successfully",
		MissionID: mission.ID,
	}, nil
}

func (s *missionService) Update(ctx context.Context, missionID uuid.UUID, req missionDto.UpdateMissionRequest) error {
	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		fields["description"] = s.policy.Sanitize(*req.Description)
	}
	if req.Points != nil {
		fields["points"] = *req.Points
	}
	if req.Frequency != nil {
		fields["frequency"] = *req.Frequency
	}
	if req.DailyLimit != nil {
		fields["daily_limit"] = *req.DailyLimit
	}
	if req.WeeklyLimit != nil {
		fields["weekly_limit"] = *req.WeeklyLimit
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.Requirements != nil {
		encoded, err := json.Marshal(*req.Requirements)
		if err != nil {
			return err
		}
		fields["requirements"] = string(encoded)
	}
	if req.RequiresDescription != nil {
		fields["requires_description"] = *req.RequiresDescription
	}
	if req.RequiresPhoto != nil {
		fields["requires_photo"] = *req.RequiresPhoto
	}
	if req.PhotoSource != nil {
		fields["photo_source"] = *req.PhotoSource
	}
	if req.RequiresLink != nil {
		fields["requires_link"] = *req.RequiresLink
	}
	if req.RequiresApproval != nil {
		fields["requires_approval"] = *req.RequiresApproval
	}

	if _, err := s.repo.FindByID(ctx, missionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Mission not found")
		}
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.repo.Update(ctx, missionID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Mission not found")
		}
		return err
	}
	return nil
}

func (s *missionService) Delete(ctx context.Context, missionID uuid.UUID) error {
	if err := s.repo.Delete(ctx, missionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Mission not found")
		}
		return err
	}
	log.Info().Str("mission_id", missionID.String()).Msg("mission deleted")
	return nil
}

func (s *missionService) Statistics(ctx context.Context) (*missionDto.StatisticsResponse, error) {
	missions, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	byMission := make(map[uuid.UUID]int, len(stats))
	res := &missionDto.StatisticsResponse{Missions: make([]missionDto.MissionStatistics, 0, len(missions))}

	for i, st := range stats {
		byMission[st.MissionID] = i
		res.Overview.TotalCompletions += st.Completions
		res.Overview.TotalPointsAwarded += st.PointsAwarded
		res.Overview.PendingSubmissions += st.Pending
	}

	for _, m := range missions {
		res.Overview.TotalMissions++
		if m.IsActive {
			res.Overview.ActiveMissions++
		}

		row := missionDto.MissionStatistics{
			MissionID: m.ID,
			Title:     m.Title,
			Frequency: m.Frequency,
			Points:    m.Points,
			IsActive:  m.IsActive,
		}
		if i, ok := byMission[m.ID]; ok {
			row.Completions = stats[i].Completions
			row.Pending = stats[i].Pending
			row.PointsAwarded = stats[i].PointsAwarded
		}
		res.Missions = append(res.Missions, row)
	}

	return res, nil
}

func (s *missionService) ListPendingSubmissions(ctx context.Context) ([]missionDto.PendingSubmissionResponse, error) {
	submissions, err := s.repo.ListPendingSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]missionDto.PendingSubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		res = append(res, missionDto.PendingSubmissionResponse{
			ID:                 sub.ID,
			MissionID:          sub.MissionID,
			MissionTitle:       sub.Mission.Title,
			UserID:             sub.UserID,
			UserName:           sub.User.Name,
			Username:           sub.User.Username,
			Description:        sub.Description,
			PhotoURL:           sub.PhotoURL,
			SubmissionURL:      sub.SubmissionURL,
			VerificationStatus: sub.VerificationStatus,
			PointsEarned:       sub.Mission.Points,
			CreatedAt:          sub.CreatedAt,
		})
	}
	return res, nil
}

func (s *missionService) VerifySubmission(ctx context.Context, submissionID uuid.UUID, status string) (*missionDto.VerifyResponse, error) {
	if status != entity.StatusApproved && status != entity.StatusRejected {
		return nil, apperror.BadRequest("Status must be approved or rejected")
	}

	submission, err := s.repo.FindSubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Submission not found")
		}
		return nil, err
	}
	if submission.VerificationStatus != entity.StatusPending {
		return nil, apperror.BadRequest("Submission already verified")
	}

	mission := submission.Mission
	points := 0
	if status == entity.StatusApproved {
		points = mission.Points
	}

	var award *leaderboardDto.AwardResult
	err = s.repo.Transaction(ctx, func(ctx context.Context) error {
		updated, err := s.repo.UpdateSubmissionVerification(ctx, submission.ID, status, points, s.now())
		if err != nil {
			return err
		}
		if !updated {
			return apperror.BadRequest("Submission already verified")
		}
		if status != entity.StatusApproved {
			return nil
		}
		award, err = s.applyAward(ctx, submission.UserID, &mission, submission.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordSubmission(metricsKind, status)
	s.leaderboardService.Announce(ctx, award)

	if status == entity.StatusApproved {
		s.notify(ctx, submission.UserID, entity.NotificationSuccess,
			"Missione approvata!",
			fmt.Sprintf("La tua missione \"%s\" è stata approvata. Hai guadagnato %d punti!", mission.Title, points))
	} else {
		s.notify(ctx, submission.UserID, entity.NotificationWarning,
			"Missione non approvata",
			fmt.Sprintf("La tua missione \"%s\" non è stata approvata.", mission.Title))
	}

	log.Info().
		Str("submission_id", submission.ID.String()).
		Str("status", status).
		Msg("mission submission verified")

	return &missionDto.VerifyResponse{
		Message: fmt.Sprintf("Submission %s successfully", status),
		Status:  status,
	}, nil
}
