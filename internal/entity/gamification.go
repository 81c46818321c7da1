package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	PointSourceAction  = "action"
	PointSourceMission = "mission"
	PointSourceAdmin   = "admin"
	PointSourceBonus   = "bonus"
)

// PointLog is the ledger of every point movement. The monthly leaderboard
// is computed from it.
type PointLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index:idx_point_user_month,priority:1;not null" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Source      string    `gorm:"size:20;not null" json:"source"`
	ReferenceID string    `gorm:"size:36" json:"reference_id"`
	Points      int       `gorm:"not null" json:"points"`
	Reason      string    `gorm:"size:255" json:"reason"`
	MonthYear   string    `gorm:"size:7;index:idx_point_user_month,priority:2;index;not null" json:"month_year"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// LeaderboardSnapshot freezes the final standings of a closed month.
type LeaderboardSnapshot struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	MonthYear string    `gorm:"size:7;uniqueIndex:idx_snapshot_month_position,priority:1;not null" json:"month_year"`
	Position  int       `gorm:"uniqueIndex:idx_snapshot_month_position,priority:2;not null" json:"position"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Points    int       `gorm:"not null" json:"points"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
