package dto

import (
	"time"

	"desideri.com/pugliaclub/internal/entity"
	commonDto "desideri.com/pugliaclub/pkg/dto"
	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Country  *string `json:"country" binding:"omitempty,max=80"`
}

type UpdateLanguageInput struct {
	Language string `json:"language"`
}

type ProfileStats struct {
	ActionsApproved    int64 `json:"actions_approved"`
	MissionsCompleted  int64 `json:"missions_completed"`
	PendingSubmissions int64 `json:"pending_submissions"`
}

type ProfileResponse struct {
	ID              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	Username        string                `json:"username"`
	Email           string                `json:"email"`
	Country         string                `json:"country"`
	AvatarURL       *string               `json:"avatar_url"`
	CurrentPoints   int                   `json:"current_points"`
	TotalPoints     int                   `json:"total_points"`
	Level           string                `json:"level"`
	Badges          []string              `json:"badges"`
	IsAdmin         bool                  `json:"is_admin"`
	Language        string                `json:"language"`
	ClubCardCode    *string               `json:"club_card_code"`
	JoinDate        time.Time             `json:"join_date"`
	LevelStatus     commonDto.LevelStatus `json:"level_status"`
	MonthlyPosition int                   `json:"monthly_position"`
	Stats           ProfileStats          `json:"stats"`
}

func NewProfileResponse(u *entity.User) *ProfileResponse {
	badges := u.Badges
	if badges == nil {
		badges = []string{}
	}
	return &ProfileResponse{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		Email:         u.Email,
		Country:       u.Country,
		AvatarURL:     u.AvatarURL,
		CurrentPoints: u.CurrentPoints,
		TotalPoints:   u.TotalPoints,
		Level:         u.Level,
		Badges:        badges,
		IsAdmin:       u.IsAdmin,
		Language:      u.Language,
		ClubCardCode:  u.ClubCardCode,
		JoinDate:      u.CreatedAt,
	}
}

type LanguageResponse struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}
