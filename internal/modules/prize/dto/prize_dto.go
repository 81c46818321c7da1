package dto

import "desideri.com/pugliaclub/internal/entity"

type UpdatePrizeRequest struct {
	Title       string `json:"title" binding:"required,max=150"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type PrizeMessageResponse struct {
	Message string       `json:"message"`
	Prize   entity.Prize `json:"prize"`
}

type UploadImageResponse struct {
	ImageURL string `json:"image_url"`
	Message  string `json:"message"`
}
