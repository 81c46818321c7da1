package dto

import (
	"time"

	"desideri.com/pugliaclub/internal/entity"
	commonDto "desideri.com/pugliaclub/pkg/dto"
	"github.com/google/uuid"
)

// MissionResponse is a mission as seen by one member.
type MissionResponse struct {
	entity.Mission
	Available       bool `json:"available"`
	Completed       bool `json:"completed"`
	PendingApproval bool `json:"pending_approval"`
}

type CreateMissionRequest struct {
	Title               string   `json:"title" binding:"required,max=150"`
	Description         string   `json:"description"`
	Points              int      `json:"points" binding:"min=0"`
	Frequency           string   `json:"frequency" binding:"required,oneof=one-time daily weekly monthly"`
	DailyLimit          int      `json:"daily_limit" binding:"min=0"`
	WeeklyLimit         int      `json:"weekly_limit" binding:"min=0"`
	IsActive            *bool    `json:"is_active"`
	Requirements        []string `json:"requirements"`
	RequiresDescription bool     `json:"requires_description"`
	RequiresPhoto       bool     `json:"requires_photo"`
	PhotoSource         string   `json:"photo_source" binding:"omitempty,oneof=camera gallery any"`
	RequiresLink        bool     `json:"requires_link"`
	RequiresApproval    bool     `json:"requires_approval"`
}

// UpdateMissionRequest only changes the fields that are present.
type UpdateMissionRequest struct {
	Title               *string   `json:"title" binding:"omitempty,max=150"`
	Description         *string   `json:"description"`
	Points              *int      `json:"points" binding:"omitempty,min=0"`
	Frequency           *string   `json:"frequency" binding:"omitempty,oneof=one-time daily weekly monthly"`
	DailyLimit          *int      `json:"daily_limit" binding:"omitempty,min=0"`
	WeeklyLimit         *int      `json:"weekly_limit" binding:"omitempty,min=0"`
	IsActive            *bool     `json:"is_active"`
	Requirements        *[]string `json:"requirements"`
	RequiresDescription *bool     `json:"requires_description"`
	RequiresPhoto       *bool     `json:"requires_photo"`
	PhotoSource         *string   `json:"photo_source" binding:"omitempty,oneof=camera gallery any"`
	RequiresLink        *bool     `json:"requires_link"`
	RequiresApproval    *bool     `json:"requires_approval"`
}

type SubmitMissionRequest struct {
	Description   string
	SubmissionURL string
	Photo         *commonDto.UploadFile
}

type CompleteMissionResponse struct {
	Message      string `json:"message"`
	PointsEarned int    `json:"points_earned"`
}

type SubmitMissionResponse struct {
	Message          string    `json:"message"`
	SubmissionID     uuid.UUID `json:"submission_id"`
	RequiresApproval bool      `json:"requires_approval"`
	PointsEarned     int       `json:"points_earned"`
}

type CreateMissionResponse struct {
	Message   string    `json:"message"`
	MissionID uuid.UUID `json:"mission_id"`
}

type StatisticsOverview struct {
	TotalMissions      int64 `json:"total_missions"`
	ActiveMissions     int64 `json:"active_missions"`
	TotalCompletions   int64 `json:"total_completions"`
	TotalPointsAwarded int64 `json:"total_points_awarded"`
	PendingSubmissions int64 `json:"pending_submissions"`
}

type MissionStatistics struct {
	MissionID     uuid.UUID `json:"mission_id"`
	Title         string    `json:"title"`
	Frequency     string    `json:"frequency"`
	Points        int       `json:"points"`
	IsActive      bool      `json:"is_active"`
	Completions   int64     `json:"completions"`
	Pending       int64     `json:"pending"`
	PointsAwarded int64     `json:"points_awarded"`
}

type StatisticsResponse struct {
	Overview StatisticsOverview  `json:"overview"`
	Missions []MissionStatistics `json:"missions"`
}

type PendingSubmissionResponse struct {
	ID                 uuid.UUID `json:"id"`
	MissionID          uuid.UUID `json:"mission_id"`
	MissionTitle       string    `json:"mission_title"`
	UserID             uuid.UUID `json:"user_id"`
	UserName           string    `json:"user_name"`
	Username           string    `json:"username"`
	Description        string    `json:"description"`
	PhotoURL           string    `json:"photo_url"`
	SubmissionURL      string    `json:"submission_url"`
	VerificationStatus string    `json:"verification_status"`
	PointsEarned       int       `json:"points_earned"`
	CreatedAt          time.Time `json:"created_at"`
}

type VerifyResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
