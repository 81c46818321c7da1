package http

import (
	"net/http"

	translationDto "desideri.com/pugliaclub/internal/modules/translation/dto"
	translationService "desideri.com/pugliaclub/internal/modules/translation/service"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
)

type TranslationHandler struct {
	service translationService.TranslationService
}

func NewTranslationHandler(service translationService.TranslationService) *TranslationHandler {
	return &TranslationHandler{service: service}
}

func (h *TranslationHandler) GetTranslations(c *gin.Context) {
	translations, err := h.service.GetMap(c.Request.Context(), c.DefaultQuery("language", "it"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, translations)
}

func (h *TranslationHandler) List(c *gin.Context) {
	translations, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, translations)
}

func (h *TranslationHandler) Upsert(c *gin.Context) {
	var req translationDto.UpsertTranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	translation, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, translationDto.TranslationMessageResponse{
		Message:     "Translation saved successfully",
		Translation: *translation,
	})
}

func (h *TranslationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("key")); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, "Translation deleted successfully")
}
