package http

import (
	"crypto/subtle"
	"net/http"

	"desideri.com/pugliaclub/internal/modules/user/dto"
	userService "desideri.com/pugliaclub/internal/modules/user/service"
	"desideri.com/pugliaclub/pkg/apperror"
	commonDto "desideri.com/pugliaclub/pkg/dto"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	maxAvatarSize    = 5 << 20
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600
)

type AuthHandler struct {
	authService userService.AuthService
}

func NewAuthHandler(authService userService.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	authURL, state := h.authService.GoogleLogin()
	setStateCookie(c, state, oauthStateMaxAge)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.Detail(c, http.StatusBadRequest, "Code not found")
		return
	}

	expected, err := c.Cookie(oauthStateCookie)
	setStateCookie(c, "", -1)
	state := c.Query("state")
	if err != nil || expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		response.Detail(c, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	res, err := h.authService.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// setStateCookie stores the OAuth state for the callback; maxAge < 0
// clears it. Lax keeps it on the top-level redirect back from Google.
func setStateCookie(c *gin.Context, state string, maxAge int) {
	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, maxAge, "/", "", secure, true)
}

func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("File is required"))
		return
	}
	if fileHeader.Size > maxAvatarSize {
		response.ResponseError(c, apperror.BadRequest("File is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("Invalid file"))
		return
	}
	defer file.Close()

	res, err := h.authService.UploadAvatar(c.Request.Context(), userID, commonDto.UploadFile{
		Reader:      file,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
