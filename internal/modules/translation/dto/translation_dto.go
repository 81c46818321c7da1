package dto

import "desideri.com/pugliaclub/internal/entity"

type UpsertTranslationRequest struct {
	Key      string `json:"key" binding:"required,max=100"`
	Italian  string `json:"italian" binding:"required"`
	English  string `json:"english" binding:"required"`
	Category string `json:"category" binding:"max=50"`
}

type TranslationMessageResponse struct {
	Message     string             `json:"message"`
	Translation entity.Translation `json:"translation"`
}
