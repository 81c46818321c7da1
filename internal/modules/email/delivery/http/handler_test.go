package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"desideri.com/pugliaclub/internal/entity"
	emailDto "desideri.com/pugliaclub/internal/modules/email/dto"
	"desideri.com/pugliaclub/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockEmailService struct {
	SendTestFunc func(ctx context.Context, to string) error
	SendFunc     func(ctx context.Context, adminID uuid.UUID, req emailDto.SendEmailRequest) (*emailDto.SendEmailResponse, error)
	LogsFunc     func(ctx context.Context) ([]entity.EmailLog, error)
}

func (m *mockEmailService) SendTest(ctx context.Context, to string) error {
	return m.SendTestFunc(ctx, to)
}

func (m *mockEmailService) Send(ctx context.Context, adminID uuid.UUID, req emailDto.SendEmailRequest) (*emailDto.SendEmailResponse, error) {
	return m.SendFunc(ctx, adminID, req)
}

func (m *mockEmailService) Logs(ctx context.Context) ([]entity.EmailLog, error) {
	return m.LogsFunc(ctx)
}

func setupRouter(h *EmailHandler, adminID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", adminID.String())
		c.Next()
	})
	r.POST("/admin/email/test", h.SendTest)
	r.POST("/admin/email/send", h.Send)
	r.GET("/admin/email/logs", h.Logs)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSendTestEmail(t *testing.T) {
	svc := &mockEmailService{
		SendTestFunc: func(ctx context.Context, to string) error {
			assert.Equal(t, "ops@example.com", to)
			return nil
		},
	}
	r := setupRouter(NewEmailHandler(svc), uuid.New())

	w := post(r, "/admin/email/test", `{"test_email":"ops@example.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Test email sent to ops@example.com"}`, w.Body.String())

	w = post(r, "/admin/email/test", `{"test_email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendTestEmailFailure(t *testing.T) {
	svc := &mockEmailService{
		SendTestFunc: func(ctx context.Context, to string) error {
			return apperror.New(http.StatusInternalServerError, "Failed to send test email", errors.New("dial tcp 10.0.0.5:587: connection refused"))
		},
	}
	r := setupRouter(NewEmailHandler(svc), uuid.New())

	w := post(r, "/admin/email/test", `{"test_email":"ops@example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Failed to send test email"}`, w.Body.String())
}

func TestSendEmail(t *testing.T) {
	adminID := uuid.New()
	svc := &mockEmailService{
		SendFunc: func(ctx context.Context, id uuid.UUID, req emailDto.SendEmailRequest) (*emailDto.SendEmailResponse, error) {
			assert.Equal(t, adminID, id)
			assert.True(t, req.SendToAll)
			return &emailDto.SendEmailResponse{Message: "Email sent", SentCount: 3, Status: "sent"}, nil
		},
	}
	r := setupRouter(NewEmailHandler(svc), adminID)

	w := post(r, "/admin/email/send", `{"subject":"Novità","body":"<p>Ciao</p>","send_to_all":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sent_count":3`)

	w = post(r, "/admin/email/send", `{"body":"senza oggetto"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmailLogs(t *testing.T) {
	svc := &mockEmailService{
		LogsFunc: func(ctx context.Context) ([]entity.EmailLog, error) {
			return []entity.EmailLog{{Subject: "Novità di aprile"}}, nil
		},
	}
	r := setupRouter(NewEmailHandler(svc), uuid.New())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/email/logs", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Novità di aprile")
}
