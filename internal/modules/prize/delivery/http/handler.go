package http

import (
	"net/http"
	"strconv"

	prizeDto "desideri.com/pugliaclub/internal/modules/prize/dto"
	prizeService "desideri.com/pugliaclub/internal/modules/prize/service"
	"desideri.com/pugliaclub/pkg/apperror"
	commonDto "desideri.com/pugliaclub/pkg/dto"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20

type PrizeHandler struct {
	service prizeService.PrizeService
}

func NewPrizeHandler(service prizeService.PrizeService) *PrizeHandler {
	return &PrizeHandler{service: service}
}

func positionParam(c *gin.Context) (int, bool) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("Invalid position"))
		return 0, false
	}
	return position, true
}

func (h *PrizeHandler) List(c *gin.Context) {
	prizes, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, prizes)
}

func (h *PrizeHandler) Update(c *gin.Context) {
	position, ok := positionParam(c)
	if !ok {
		return
	}

	var req prizeDto.UpdatePrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Update(c.Request.Context(), position, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PrizeHandler) Restore(c *gin.Context) {
	position, ok := positionParam(c)
	if !ok {
		return
	}

	res, err := h.service.Restore(c.Request.Context(), position)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PrizeHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("Photo is required"))
		return
	}
	if fileHeader.Size > maxImageSize {
		response.ResponseError(c, apperror.BadRequest("Image is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, apperror.BadRequest("Invalid image"))
		return
	}
	defer file.Close()

	res, err := h.service.UploadImage(c.Request.Context(), commonDto.UploadFile{
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

func (h *PrizeHandler) Claim(c *gin.Context) {
	position, ok := positionParam(c)
	if !ok {
		return
	}

	prize, err := h.service.Claim(c.Request.Context(), position, c.Query("month_year"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prize marked as claimed", "prize": prize})
}
