package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	profileDto "desideri.com/pugliaclub/internal/modules/profile/dto"
	"desideri.com/pugliaclub/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockProfileService struct {
	UpdateLanguageFunc func(ctx context.Context, userID uuid.UUID, language string) (*profileDto.LanguageResponse, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileResponse, error) {
	return &profileDto.ProfileResponse{ID: userID, Username: "maria", MonthlyPosition: 2}, nil
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input profileDto.UpdateProfileInput) (*profileDto.ProfileResponse, error) {
	if input.Username != nil && *input.Username == "taken" {
		return nil, apperror.BadRequest("Username already taken")
	}
	return &profileDto.ProfileResponse{ID: userID, Username: *input.Username}, nil
}

func (m *mockProfileService) UpdateLanguage(ctx context.Context, userID uuid.UUID, language string) (*profileDto.LanguageResponse, error) {
	return m.UpdateLanguageFunc(ctx, userID, language)
}

func setupRouter(h *ProfileHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	})
	r.GET("/user/profile", h.GetProfile)
	r.PUT("/user/profile", h.UpdateProfile)
	r.PUT("/user/language", h.UpdateLanguage)
	return r
}

func TestGetProfile(t *testing.T) {
	r := setupRouter(NewProfileHandler(&mockProfileService{}), uuid.New())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/user/profile", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"monthly_position":2`)
}

func TestUpdateProfileConflict(t *testing.T) {
	r := setupRouter(NewProfileHandler(&mockProfileService{}), uuid.New())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/user/profile", strings.NewReader(`{"username":"taken"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Username already taken"}`, w.Body.String())
}

func TestUpdateLanguageSources(t *testing.T) {
	var got []string
	svc := &mockProfileService{
		UpdateLanguageFunc: func(ctx context.Context, userID uuid.UUID, language string) (*profileDto.LanguageResponse, error) {
			got = append(got, language)
			return &profileDto.LanguageResponse{Message: "ok", Language: language}, nil
		},
	}
	r := setupRouter(NewProfileHandler(svc), uuid.New())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/user/language?language=en", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPut, "/user/language", strings.NewReader(`{"language":"it"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"en", "it"}, got)
}
