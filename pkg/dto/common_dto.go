package dto

import "io"

// UploadFile is an image received from a multipart form.
type UploadFile struct {
	Reader      io.Reader
	FileName    string
	ContentType string
}

// LevelStatus describes a member's lifetime level and the progress toward
// the next one.
type LevelStatus struct {
	Level        string  `json:"level"`
	NextLevel    string  `json:"next_level"`
	TotalPoints  int     `json:"total_points"`
	TargetPoints int     `json:"target_points"`
	Progress     float64 `json:"progress"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
