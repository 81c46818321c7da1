package http

import (
	"net/http"

	statService "desideri.com/pugliaclub/internal/modules/stat/service"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{
		statService: statService,
	}
}

func (h *StatHandler) GetTotalMembers(c *gin.Context) {
	count, err := h.statService.GetTotalMembers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_members": count,
	})
}
