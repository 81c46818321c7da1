package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	cardDto "desideri.com/pugliaclub/internal/modules/clubcard/dto"
	"desideri.com/pugliaclub/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type mockClubCardService struct{}

func (m *mockClubCardService) GetCard(ctx context.Context, userID uuid.UUID) (*cardDto.CardResponse, error) {
	return &cardDto.CardResponse{UserID: userID, ClubCardCode: "DP-AB12"}, nil
}

func (m *mockClubCardService) QRCode(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	return []byte("\x89PNG"), nil
}

func (m *mockClubCardService) CheckCard(ctx context.Context, rawUserID string) (*cardDto.CardCheckResponse, error) {
	if rawUserID == "missing" {
		return nil, apperror.NotFound("User not found")
	}
	return &cardDto.CardCheckResponse{Username: "maria", ClubMember: true}, nil
}

func (m *mockClubCardService) PublicProfile(ctx context.Context, rawUserID string) (*cardDto.PublicProfileResponse, error) {
	return nil, apperror.NotFound("User not found")
}

func setupRouter(userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewClubCardHandler(&mockClubCardService{})
	r := gin.New()
	auth := func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	}
	r.GET("/club-card", auth, h.GetCard)
	r.GET("/club-card/qr.png", auth, h.QRCode)
	r.GET("/club-card/qr/:user_id", h.CheckCard)
	r.GET("/club/profile/:user_id", h.PublicProfile)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetCard(t *testing.T) {
	w := get(setupRouter(uuid.New()), "/club-card")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "DP-AB12")
}

func TestQRCode(t *testing.T) {
	w := get(setupRouter(uuid.New()), "/club-card/qr.png")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestCheckCard(t *testing.T) {
	r := setupRouter(uuid.New())

	w := get(r, "/club-card/qr/"+uuid.NewString())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"club_member":true`)

	w = get(r, "/club-card/qr/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicProfileNotFound(t *testing.T) {
	w := get(setupRouter(uuid.New()), "/club/profile/someone@example.com")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"User not found"}`, w.Body.String())
}
