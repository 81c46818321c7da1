package dto

type TestEmailRequest struct {
	TestEmail string `json:"test_email" binding:"required,email"`
}

type SendEmailRequest struct {
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject" binding:"required,max=255"`
	Body       string   `json:"body" binding:"required"`
	SendToAll  bool     `json:"send_to_all"`
}

type SendEmailResponse struct {
	Message     string `json:"message"`
	SentCount   int    `json:"sent_count"`
	FailedCount int    `json:"failed_count"`
	Status      string `json:"status"`
}
