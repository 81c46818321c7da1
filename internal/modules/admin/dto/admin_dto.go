package dto

import (
	"time"

	"desideri.com/pugliaclub/internal/entity"
	"github.com/google/uuid"
)

type AdminUserResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Country       string    `json:"country"`
	CurrentPoints int       `json:"current_points"`
	TotalPoints   int       `json:"total_points"`
	Level         string    `json:"level"`
	IsAdmin       bool      `json:"is_admin"`
	ClubCardCode  *string   `json:"club_card_code"`
	JoinDate      time.Time `json:"join_date"`
}

func NewAdminUserResponse(u *entity.User) AdminUserResponse {
	return AdminUserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Username:      u.Username,
		Country:       u.Country,
		CurrentPoints: u.CurrentPoints,
		TotalPoints:   u.TotalPoints,
		Level:         u.Level,
		IsAdmin:       u.IsAdmin,
		ClubCardCode:  u.ClubCardCode,
		JoinDate:      u.CreatedAt,
	}
}

type AdjustPointsRequest struct {
	Points int    `json:"points" binding:"required"`
	Reason string `json:"reason" binding:"max=255"`
}

type AdjustPointsResponse struct {
	Message       string `json:"message"`
	CurrentPoints int    `json:"current_points"`
	TotalPoints   int    `json:"total_points"`
	Level         string `json:"level"`
}

type DashboardResponse struct {
	TotalUsers      int64  `json:"total_users"`
	PendingActions  int64  `json:"pending_actions"`
	PendingMissions int64  `json:"pending_missions"`
	ActiveMissions  int64  `json:"active_missions"`
	PointsThisMonth int64  `json:"points_this_month"`
	MonthYear       string `json:"month_year"`
}
