package handlers

import (
	"net/http"

	"busreserve/internal/services"

	"github.com/gin-gonic/gin"
)

// PredictBookingConfirmation returns a heuristic confirmation score for
// a prospective booking.
func PredictBookingConfirmation(c *gin.Context) {
	var req services.PredictionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	c.JSON(http.StatusOK, services.PredictionService{}.Predict(req))
}
