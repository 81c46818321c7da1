package entity

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LanguageItalian = "it"
	LanguageEnglish = "en"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	Country        string    `gorm:"size:80" json:"country"`
	AvatarURL      *string   `gorm:"type:text" json:"avatar_url"`
	GoogleID       *string   `gorm:"size:100;uniqueIndex" json:"-"`
	CurrentPoints  int       `gorm:"not null;default:0" json:"current_points"`
	TotalPoints    int       `gorm:"not null;default:0" json:"total_points"`
	Level          string    `gorm:"size:30;not null" json:"level"`
	Badges         []string  `gorm:"type:text;serializer:json" json:"badges"`
	IsAdmin        bool      `gorm:"not null" json:"is_admin"`
	Language       string    `gorm:"size:2;not null" json:"language"`
	ClubCardCode   *string   `gorm:"size:7;uniqueIndex" json:"club_card_code"`
	LastResetMonth string    `gorm:"size:7" json:"last_reset_month"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"join_date"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Language == "" {
		u.Language = LanguageItalian
	}
	return nil
}

// CardCode returns the club card code or "" when none was assigned yet.
func (u *User) CardCode() string {
	if u.ClubCardCode == nil {
		return ""
	}
	return *u.ClubCardCode
}

func (u *User) Avatar() string {
	if u.AvatarURL == nil {
		return ""
	}
	return *u.AvatarURL
}

// Letters and digits that cannot be confused on a printed card.
const cardAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewClubCardCode returns a random DP-XXXX code. Uniqueness is enforced by
// the database index; callers retry on collision.
func NewClubCardCode() string {
	buf := make([]byte, 4)
	max := big.NewInt(int64(len(cardAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			n = big.NewInt(time.Now().UnixNano() % int64(len(cardAlphabet)))
		}
		buf[i] = cardAlphabet[n.Int64()]
	}
	return "DP-" + string(buf)
}
