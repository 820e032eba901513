package handlers

import (
	"net/http"

	"busreserve/internal/domain"
	"busreserve/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain error kinds to HTTP responses.
// Conflicts are 409 because they are timing races, not static
// properties of the seat.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "invalid_booking", err.Error(), nil)
	case domain.IsInvalidStation(err):
		respondError(c, http.StatusBadRequest, "invalid_station", err.Error(), nil)
	case domain.IsSeatNotFound(err):
		respondError(c, http.StatusBadRequest, "seat_not_found", err.Error(), nil)
	case domain.IsSeatUnavailable(err):
		respondError(c, http.StatusBadRequest, "seat_unavailable", err.Error(), nil)
	case domain.IsCancellationNotAllowed(err):
		respondError(c, http.StatusBadRequest, "cancellation_not_allowed", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
