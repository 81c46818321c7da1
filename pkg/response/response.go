package response

import (
	"errors"
	"net/http"

	"desideri.com/pugliaclub/pkg/apperror"
	"desideri.com/pugliaclub/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	str, ok := userIDStr.(string)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

const internalErrorDetail = "Internal server error"

// ResponseError writes {"detail": message} with the status mapped from err.
// Server errors only expose a message set explicitly on an AppError; the
// cause stays in the log.
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code < http.StatusInternalServerError {
		c.JSON(code, gin.H{"detail": err.Error()})
		return
	}

	log.Error().Err(err).
		Str("path", c.FullPath()).
		Str("request_id", c.GetString("request_id")).
		Msg("internal error")

	detail := internalErrorDetail
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		detail = appErr.Message
	}
	c.JSON(code, gin.H{"detail": detail})
}

// Detail writes a plain message with the given status.
func Detail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"detail": message})
}

// Message writes {"message": message} with 200.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// BindError writes a 400 describing a request binding failure.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": validator.FormatValidationError(err)})
}
