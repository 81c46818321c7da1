package dto

import (
	"time"

	"desideri.com/pugliaclub/internal/entity"
	"github.com/google/uuid"
)

type CardResponse struct {
	UserID        uuid.UUID `json:"user_id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	ClubCardCode  string    `json:"club_card_code"`
	ClubCardQRURL string    `json:"club_card_qr_url"`
	JoinDate      time.Time `json:"join_date"`
	Level         string    `json:"level"`
	TotalPoints   int       `json:"total_points"`
}

// CardCheckResponse is what a partner sees after scanning a card.
type CardCheckResponse struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	Level        string `json:"level"`
	TotalPoints  int    `json:"total_points"`
	ClubCardCode string `json:"club_card_code"`
	ClubMember   bool   `json:"club_member"`
}

type PublicUserInfo struct {
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Level        string    `json:"level"`
	ClubCardCode string    `json:"club_card_code"`
	JoinDate     time.Time `json:"join_date"`
	AvatarURL    *string   `json:"avatar_url"`
	Country      string    `json:"country"`
}

type PublicStats struct {
	TotalPoints        int    `json:"total_points"`
	CurrentPoints      int    `json:"current_points"`
	CurrentRank        int    `json:"current_rank"`
	MissionCompletions int64  `json:"mission_completions"`
	MonthYear          string `json:"month_year"`
}

type PublicStatus struct {
	Level     string  `json:"level"`
	NextLevel string  `json:"next_level"`
	Progress  float64 `json:"progress"`
}

type PublicProfileResponse struct {
	UserInfo    PublicUserInfo `json:"user_info"`
	Stats       PublicStats    `json:"stats"`
	Status      PublicStatus   `json:"status"`
	Prizes      []entity.Prize `json:"prizes"`
	ClubMember  bool           `json:"club_member"`
	LastUpdated time.Time      `json:"last_updated"`
}
