package http

import (
	"net/http"

	actionDto "desideri.com/pugliaclub/internal/modules/action/dto"
	actionService "desideri.com/pugliaclub/internal/modules/action/service"
	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActionHandler struct {
	service actionService.ActionService
}

func NewActionHandler(service actionService.ActionService) *ActionHandler {
	return &ActionHandler{service: service}
}

func (h *ActionHandler) ListTypes(c *gin.Context) {
	types, err := h.service.ListTypes(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, types)
}

// Submit accepts the claim as JSON or as a form.
func (h *ActionHandler) Submit(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req actionDto.SubmitActionRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ActionHandler) History(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	actions, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, actions)
}

func (h *ActionHandler) ListPending(c *gin.Context) {
	actions, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, actions)
}

func (h *ActionHandler) Verify(c *gin.Context) {
	actionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.NotFound("Action not found"))
		return
	}

	res, err := h.service.Verify(c.Request.Context(), actionID, c.Query("status"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
