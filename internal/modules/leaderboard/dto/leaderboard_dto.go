package dto

import "github.com/google/uuid"

// LeaderboardEntry is one row of the monthly ranking (1-based position).
type LeaderboardEntry struct {
	Position  int       `json:"position"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
	Country   string    `json:"country"`
	Points    int       `json:"points"`
	Level     string    `json:"level"`
}

type LeaderboardResponse struct {
	Leaderboard       []LeaderboardEntry `json:"leaderboard"`
	TotalParticipants int                `json:"total_participants"`
	MonthYear         string             `json:"month_year"`
}

type AwardInput struct {
	UserID      uuid.UUID
	Points      int
	Source      string
	ReferenceID string
	Reason      string
}

type AwardResult struct {
	UserID        uuid.UUID `json:"user_id"`
	Source        string    `json:"source"`
	Points        int       `json:"points"`
	CurrentPoints int       `json:"current_points"`
	TotalPoints   int       `json:"total_points"`
	Level         string    `json:"level"`
	PreviousLevel string    `json:"previous_level"`
	LeveledUp     bool      `json:"leveled_up"`
}

type CloseMonthResult struct {
	MonthYear    string      `json:"month_year"`
	Participants int         `json:"participants"`
	Winners      []uuid.UUID `json:"winners"`
	Skipped      bool        `json:"skipped"`
}
