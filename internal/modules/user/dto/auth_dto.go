package dto

import (
	"desideri.com/pugliaclub/internal/entity"
	"github.com/google/uuid"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Country  string `json:"country" binding:"max=80"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthUser is the member summary returned alongside a token.
type AuthUser struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Country       string    `json:"country"`
	CurrentPoints int       `json:"current_points"`
	TotalPoints   int       `json:"total_points"`
	Level         string    `json:"level"`
	AvatarURL     *string   `json:"avatar_url"`
	IsAdmin       bool      `json:"is_admin"`
	Language      string    `json:"language"`
}

func NewAuthUser(u *entity.User) AuthUser {
	return AuthUser{
		ID:            u.ID,
		Name:          u.Name,
		Username:      u.Username,
		Email:         u.Email,
		Country:       u.Country,
		CurrentPoints: u.CurrentPoints,
		TotalPoints:   u.TotalPoints,
		Level:         u.Level,
		AvatarURL:     u.AvatarURL,
		IsAdmin:       u.IsAdmin,
		Language:      u.Language,
	}
}

type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int64    `json:"expires_in"`
	User        AuthUser `json:"user"`
	SearchToken string   `json:"search_token,omitempty"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
