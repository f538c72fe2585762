package handlers

import (
	"net/http"

	"travelnest/internal/domain"
	"travelnest/internal/http/middleware"
	"travelnest/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Internal causes are
// logged, never echoed to the client.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsAlreadyExists(err):
		respondError(c, http.StatusConflict, "already_exists", err.Error(), nil)
	case domain.IsInvalidState(err):
		respondError(c, http.StatusConflict, "invalid_state", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	default:
		_ = c.Error(err)
		utils.Logger().Error("request failed",
			utils.String("request_id", middleware.GetRequestID(c)),
			utils.String("path", c.Request.URL.Path),
			utils.Error(err))
		msg := "internal error"
		if domain.IsInternal(err) {
			msg = err.Error()
		}
		respondError(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
