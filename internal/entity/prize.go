package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prize is a stored prize row for a month. A month without a row for a
// position falls back to the built-in default.
type Prize struct {
	ID          uint       `gorm:"primaryKey" json:"-"`
	Position    int        `gorm:"uniqueIndex:idx_prize_month_position,priority:2;not null" json:"position"`
	MonthYear   string     `gorm:"size:7;uniqueIndex:idx_prize_month_position,priority:1;not null" json:"month_year"`
	Title       string     `gorm:"size:150;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	ImageURL    string     `gorm:"type:text" json:"image_url"`
	IsCustom    bool       `gorm:"not null" json:"is_custom"`
	WinnerID    *uuid.UUID `gorm:"type:uuid" json:"winner_id"`
	Claimed     bool       `gorm:"not null" json:"claimed"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
