package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var maxSeatsPerBooking = 5

// SetMaxSeatsPerBooking wires the config knob into the booking handler.
func SetMaxSeatsPerBooking(n int) {
	if n > 0 {
		maxSeatsPerBooking = n
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "request payload is not valid", err.Error())
		return false
	}
	return true
}
