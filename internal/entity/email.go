package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EmailStatusSent    = "sent"
	EmailStatusPartial = "partial"
	EmailStatusFailed  = "failed"
)

type EmailLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Subject        string    `gorm:"size:255;not null" json:"subject"`
	Body           string    `gorm:"type:text" json:"-"`
	RecipientCount int       `gorm:"not null" json:"recipient_count"`
	SentCount      int       `gorm:"not null" json:"sent_count"`
	FailedCount    int       `gorm:"not null" json:"failed_count"`
	Status         string    `gorm:"size:20;not null" json:"status"`
	SentBy         uuid.UUID `gorm:"type:uuid" json:"sent_by"`
	SentAt         time.Time `gorm:"index" json:"sent_at"`
}

func (e *EmailLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
