package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sufrah/backend/internal/types"
)

// statusFor maps service error kinds to HTTP status codes. Business-rule
// rejections are 422 so clients can tell them apart from malformed input.
func statusFor(err *types.AppError) int {
	switch err.Kind {
	case types.ErrorKindValidation:
		return http.StatusBadRequest
	case types.ErrorKindNotFound:
		return http.StatusNotFound
	case types.ErrorKindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err *types.AppError) {
	c.JSON(statusFor(err), types.Fail(err))
}

func respondBadRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, types.Fail(types.NewValidationError(
		"invalid request body",
		"نص الطلب غير صالح",
	)))
}

// currentUserID reads the authenticated user ID placed in the context by
// the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a :param path segment as a UUID.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.Fail(types.NewValidationError(
			"invalid id",
			"معرف غير صالح",
		)))
		return uuid.Nil, false
	}
	return id, true
}
