package http

import (
	"errors"
	"net/http"

	missionDto "desideri.com/pugliaclub/internal/modules/mission/dto"
	missionService "desideri.com/pugliaclub/internal/modules/mission/service"
	"desideri.com/pugliaclub/pkg/apperror"
	commonDto "desideri.com/pugliaclub/pkg/dto"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxPhotoSize = 10 << 20

type MissionHandler struct {
	service missionService.MissionService
}

func NewMissionHandler(service missionService.MissionService) *MissionHandler {
	return &MissionHandler{service: service}
}

func missionIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.NotFound("Mission not found"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *MissionHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	missions, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, missions)
}

func (h *MissionHandler) Complete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	res, err := h.service.Complete(c.Request.Context(), userID, missionID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Submit takes a multipart form with description, submission_url and an
// optional photo.
func (h *MissionHandler) Submit(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	req := missionDto.SubmitMissionRequest{
		Description:   c.PostForm("description"),
		SubmissionURL: c.PostForm("submission_url"),
	}

	fileHeader, err := c.FormFile("photo")
	switch {
	case err == nil:
		if fileHeader.Size > maxPhotoSize {
			response.ResponseError(c, apperror.BadRequest("Photo is too large"))
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			response.ResponseError(c, apperror.BadRequest("Invalid photo"))
			return
		}
		defer file.Close()

		req.Photo = &commonDto.UploadFile{
			Reader:      file,
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		response.ResponseError(c, apperror.BadRequest("Invalid form data"))
		return
	}

	res, err := h.service.Submit(c.Request.Context(), userID, missionID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *MissionHandler) ListAll(c *gin.Context) {
	missions, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, missions)
}

func (h *MissionHandler) Create(c *gin.Context) {
	var req missionDto.CreateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *MissionHandler) Update(c *gin.Context) {
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	var req missionDto.UpdateMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), missionID, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, "Mission updated successfully")
}

func (h *MissionHandler) Delete(c *gin.Context) {
	missionID, ok := missionIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), missionID); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, "Mission deleted successfully")
}

func (h *MissionHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *MissionHandler) PendingSubmissions(c *gin.Context) {
	submissions, err := h.service.ListPendingSubmissions(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

func (h *MissionHandler) VerifySubmission(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ResponseError(c, apperror.NotFound("Submission not found"))
		return
	}

	res, err := h.service.VerifySubmission(c.Request.Context(), submissionID, c.Query("status"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
