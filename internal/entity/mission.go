package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FrequencyOneTime = "one-time"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

type Mission struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title               string         `gorm:"size:150;not null" json:"title"`
	Description         string         `gorm:"type:text" json:"description"`
	Points              int            `gorm:"not null" json:"points"`
	Frequency           string         `gorm:"size:20;not null" json:"frequency"`
	DailyLimit          int            `gorm:"not null;default:0" json:"daily_limit"`
	WeeklyLimit         int            `gorm:"not null;default:0" json:"weekly_limit"`
	IsActive            bool           `gorm:"not null" json:"is_active"`
	Requirements        []string       `gorm:"type:text;serializer:json" json:"requirements"`
	RequiresDescription bool           `gorm:"not null" json:"requires_description"`
	RequiresPhoto       bool           `gorm:"not null" json:"requires_photo"`
	PhotoSource         string         `gorm:"size:20" json:"photo_source"`
	RequiresLink        bool           `gorm:"not null" json:"requires_link"`
	RequiresApproval    bool           `gorm:"not null" json:"requires_approval"`
	MonthYear           string         `gorm:"size:7" json:"month_year"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (m *Mission) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// NeedsSubmission reports whether the mission can only be completed through
// a submission carrying proof.
func (m *Mission) NeedsSubmission() bool {
	return m.RequiresApproval || m.RequiresDescription || m.RequiresPhoto || m.RequiresLink
}

// MissionSubmission records one attempt at a mission. A direct completion is
// stored as an already approved submission.
type MissionSubmission struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MissionID          uuid.UUID  `gorm:"type:uuid;index:idx_submission_lookup,priority:2;not null" json:"mission_id"`
	Mission            Mission    `gorm:"foreignKey:MissionID" json:"-"`
	UserID             uuid.UUID  `gorm:"type:uuid;index:idx_submission_lookup,priority:1;not null" json:"user_id"`
	User               User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Description        string     `gorm:"type:text" json:"description"`
	PhotoURL           string     `gorm:"type:text" json:"photo_url"`
	SubmissionURL      string     `gorm:"type:text" json:"submission_url"`
	VerificationStatus string     `gorm:"size:20;index;not null" json:"verification_status"`
	PointsEarned       int        `gorm:"not null" json:"points_earned"`
	MonthYear          string     `gorm:"size:7;not null" json:"month_year"`
	CreatedAt          time.Time  `gorm:"index:idx_submission_lookup,priority:3" json:"created_at"`
	VerifiedAt         *time.Time `json:"verified_at"`
}

func (s *MissionSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
