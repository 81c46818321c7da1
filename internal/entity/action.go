package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ActionType is a social media action a member can claim points for. The ID
// is a stable slug such as "share_story".
type ActionType struct {
	ID          string `gorm:"size:50;primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Points      int    `gorm:"not null" json:"points"`
	MaxPerDay   int    `gorm:"not null;default:0" json:"max_per_day"`
	MaxPerWeek  int    `gorm:"not null;default:0" json:"max_per_week"`
	MaxPerMonth int    `gorm:"not null;default:0" json:"max_per_month"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}

type UserAction struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;index:idx_user_action_lookup,priority:1;not null" json:"user_id"`
	User               User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ActionTypeID       string     `gorm:"size:50;index:idx_user_action_lookup,priority:2;not null" json:"action_type_id"`
	ActionName         string     `gorm:"size:100" json:"action_name"`
	PointsEarned       int        `gorm:"not null" json:"points_earned"`
	Description        string     `gorm:"type:text" json:"description"`
	SubmissionURL      string     `gorm:"type:text" json:"submission_url"`
	VerificationStatus string     `gorm:"size:20;index;not null" json:"verification_status"`
	MonthYear          string     `gorm:"size:7;not null" json:"month_year"`
	CreatedAt          time.Time  `gorm:"index:idx_user_action_lookup,priority:3" json:"created_at"`
	VerifiedAt         *time.Time `json:"verified_at"`
}

func (a *UserAction) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
