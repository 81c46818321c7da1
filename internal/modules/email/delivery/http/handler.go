package http

import (
	"net/http"

	emailDto "desideri.com/pugliaclub/internal/modules/email/dto"
	emailService "desideri.com/pugliaclub/internal/modules/email/service"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	service emailService.EmailService
}

func NewEmailHandler(service emailService.EmailService) *EmailHandler {
	return &EmailHandler{service: service}
}

func (h *EmailHandler) SendTest(c *gin.Context) {
	var req emailDto.TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.SendTest(c.Request.Context(), req.TestEmail); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, "Test email sent to "+req.TestEmail)
}

func (h *EmailHandler) Send(c *gin.Context) {
	adminID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req emailDto.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Send(c.Request.Context(), adminID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *EmailHandler) Logs(c *gin.Context) {
	logs, err := h.service.Logs(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
