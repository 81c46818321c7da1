package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitActionRequest struct {
	ActionTypeID  string `json:"action_type_id" form:"action_type_id" binding:"required"`
	Description   string `json:"description" form:"description" binding:"max=2000"`
	SubmissionURL string `json:"submission_url" form:"submission_url" binding:"omitempty,url"`
}

type SubmitActionResponse struct {
	Message            string    `json:"message"`
	ActionID           uuid.UUID `json:"action_id"`
	VerificationStatus string    `json:"verification_status"`
	PointsPending      int       `json:"points_pending"`
}

type PendingActionResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	UserName           string    `json:"user_name"`
	Username           string    `json:"username"`
	ActionTypeID       string    `json:"action_type_id"`
	ActionName         string    `json:"action_name"`
	PointsEarned       int       `json:"points_earned"`
	Description        string    `json:"description"`
	SubmissionURL      string    `json:"submission_url"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
}

type VerifyResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
