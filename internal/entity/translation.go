package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Translation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Italian   string    `gorm:"type:text;not null" json:"italian"`
	English   string    `gorm:"type:text;not null" json:"english"`
	Category  string    `gorm:"size:50;index" json:"category"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Translation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Text returns the value for lang, falling back to Italian.
func (t *Translation) Text(lang string) string {
	if lang == LanguageEnglish && t.English != "" {
		return t.English
	}
	return t.Italian
}
