package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"desideri.com/pugliaclub/internal/modules/user/dto"
	"desideri.com/pugliaclub/pkg/apperror"
	commonDto "desideri.com/pugliaclub/pkg/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	RegisterFunc       func(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error)
	LoginFunc          func(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	GoogleCallbackFunc func(ctx context.Context, code string) (*dto.AuthResponse, error)
	UploadAvatarFunc   func(ctx context.Context, userID uuid.UUID, file commonDto.UploadFile) (*dto.AvatarResponse, error)
}

func (m *mockAuthService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *mockAuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	return m.LoginFunc(ctx, input)
}

func (m *mockAuthService) GoogleLogin() (string, string) {
	return "https://accounts.google.com/o/oauth2/auth?state=abc123", "abc123"
}

func (m *mockAuthService) GoogleCallback(ctx context.Context, code string) (*dto.AuthResponse, error) {
	return m.GoogleCallbackFunc(ctx, code)
}

func (m *mockAuthService) UploadAvatar(ctx context.Context, userID uuid.UUID, file commonDto.UploadFile) (*dto.AvatarResponse, error) {
	return m.UploadAvatarFunc(ctx, userID, file)
}

func setupRouter(h *AuthHandler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/google/login", h.GoogleLogin)
	r.GET("/auth/google/callback", h.GoogleCallback)
	r.POST("/auth/upload-avatar", func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	}, h.UploadAvatar)
	return r
}

func TestRegister(t *testing.T) {
	svc := &mockAuthService{
		RegisterFunc: func(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
			assert.Equal(t, "maria", input.Username)
			return &dto.AuthResponse{AccessToken: "tok", TokenType: "bearer", ExpiresIn: 86400}, nil
		},
	}
	r := setupRouter(NewAuthHandler(svc), uuid.New())

	body := `{"name":"Maria","username":"maria","email":"maria@example.com","password":"segreto1","country":"Italia"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var res dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "tok", res.AccessToken)
	assert.Equal(t, "bearer", res.TokenType)
}

func TestRegisterValidation(t *testing.T) {
	r := setupRouter(NewAuthHandler(&mockAuthService{}), uuid.New())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestLoginUnauthorized(t *testing.T) {
	svc := &mockAuthService{
		LoginFunc: func(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
			return nil, apperror.New(http.StatusUnauthorized, "Invalid email or password", apperror.ErrUnauthorized)
		},
	}
	r := setupRouter(NewAuthHandler(svc), uuid.New())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.it","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid email or password"}`, w.Body.String())
}

func TestGoogleLoginRedirects(t *testing.T) {
	r := setupRouter(NewAuthHandler(&mockAuthService{}), uuid.New())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/auth/google/login", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "accounts.google.com")

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, "oauth_state=abc123")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "SameSite=Lax")
}

func googleCallback(r *gin.Engine, query, stateCookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/auth/google/callback"+query, nil)
	if stateCookie != "" {
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: stateCookie})
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGoogleCallbackRequiresCode(t *testing.T) {
	r := setupRouter(NewAuthHandler(&mockAuthService{}), uuid.New())

	w := googleCallback(r, "", "abc123")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Code not found"}`, w.Body.String())
}

func TestGoogleCallbackRejectsBadState(t *testing.T) {
	svc := &mockAuthService{
		GoogleCallbackFunc: func(ctx context.Context, code string) (*dto.AuthResponse, error) {
			t.Fatal("callback must not reach the service")
			return nil, nil
		},
	}
	r := setupRouter(NewAuthHandler(svc), uuid.New())

	tests := []struct {
		name   string
		query  string
		cookie string
	}{
		{"mismatch", "?code=c&state=forged", "abc123"},
		{"missing cookie", "?code=c&state=abc123", ""},
		{"missing state", "?code=c", "abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := googleCallback(r, tt.query, tt.cookie)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"detail":"Invalid OAuth state"}`, w.Body.String())
		})
	}
}

func TestGoogleCallbackMatchingState(t *testing.T) {
	svc := &mockAuthService{
		GoogleCallbackFunc: func(ctx context.Context, code string) (*dto.AuthResponse, error) {
			assert.Equal(t, "c0de", code)
			return &dto.AuthResponse{AccessToken: "tok", TokenType: "bearer"}, nil
		},
	}
	r := setupRouter(NewAuthHandler(svc), uuid.New())

	w := googleCallback(r, "?code=c0de&state=abc123", "abc123")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"tok"`)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "oauth_state=;")
}

func TestGoogleCallbackUnverifiedEmail(t *testing.T) {
	svc := &mockAuthService{
		GoogleCallbackFunc: func(ctx context.Context, code string) (*dto.AuthResponse, error) {
			return nil, apperror.BadRequest("Google email is not verified")
		},
	}
	r := setupRouter(NewAuthHandler(svc), uuid.New())

	w := googleCallback(r, "?code=c0de&state=abc123", "abc123")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Google email is not verified"}`, w.Body.String())
}

func TestUploadAvatar(t *testing.T) {
	userID := uuid.New()
	svc := &mockAuthService{
		UploadAvatarFunc: func(ctx context.Context, id uuid.UUID, file commonDto.UploadFile) (*dto.AvatarResponse, error) {
			assert.Equal(t, userID, id)
			assert.Equal(t, "image/png", file.ContentType)
			assert.Equal(t, "me.png", file.FileName)
			return &dto.AvatarResponse{AvatarURL: "https://cdn/avatar.jpg"}, nil
		},
	}
	r := setupRouter(NewAuthHandler(svc), userID)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="me.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	part.Write([]byte("png-bytes"))
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/upload-avatar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"avatar_url":"https://cdn/avatar.jpg"}`, w.Body.String())
}

func TestUploadAvatarMissingFile(t *testing.T) {
	r := setupRouter(NewAuthHandler(&mockAuthService{}), uuid.New())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/auth/upload-avatar", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
