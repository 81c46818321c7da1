package http

import (
	"net/http"

	profileDto "desideri.com/pugliaclub/internal/modules/profile/dto"
	profileService "desideri.com/pugliaclub/internal/modules/profile/service"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService profileService.ProfileService
}

func NewProfileHandler(profileService profileService.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input profileDto.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateLanguage accepts the language as ?language= or a JSON body.
func (h *ProfileHandler) UpdateLanguage(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	language := c.Query("language")
	if language == "" {
		var input profileDto.UpdateLanguageInput
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				response.BindError(c, err)
				return
			}
		}
		language = input.Language
	}

	res, err := h.profileService.UpdateLanguage(c.Request.Context(), userID, language)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
