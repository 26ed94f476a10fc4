// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/trueworldtech/storefront-api/internal/apperrors"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
		Data:    data,
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "Invalid request"
	}
	ErrorResponse(c, http.StatusBadRequest, message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "No token, not authorized"
	}
	ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Admin access only"
	}
	ErrorResponse(c, http.StatusForbidden, message, nil)
}

func NotFoundResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message, nil)
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, message, nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, message, nil)
}

// AppErrorResponse maps a service error onto the envelope. Untyped errors
// become a 500 without leaking internals.
func AppErrorResponse(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		ErrorResponse(c, appErr.StatusCode, appErr.Message, nil)
		return
	}
	logrus.WithError(err).Error("Unhandled service error")
	InternalErrorResponse(c, "")
}

func PaginatedResponse(c *gin.Context, message string, result PaginationResult) {
	SetPaginationHeaders(c, result)
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    result.Data,
		Meta: gin.H{
			"pagination": gin.H{
				"page":        result.Page,
				"limit":       result.Limit,
				"total":       result.Total,
				"total_pages": result.TotalPages,
			},
		},
	})
}
