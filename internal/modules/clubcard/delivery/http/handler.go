package http

import (
	"net/http"

	cardService "desideri.com/pugliaclub/internal/modules/clubcard/service"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
)

type ClubCardHandler struct {
	service cardService.ClubCardService
}

func NewClubCardHandler(service cardService.ClubCardService) *ClubCardHandler {
	return &ClubCardHandler{service: service}
}

func (h *ClubCardHandler) GetCard(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	card, err := h.service.GetCard(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *ClubCardHandler) QRCode(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	png, err := h.service.QRCode(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *ClubCardHandler) CheckCard(c *gin.Context) {
	res, err := h.service.CheckCard(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ClubCardHandler) PublicProfile(c *gin.Context) {
	res, err := h.service.PublicProfile(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
