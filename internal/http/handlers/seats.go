package handlers

import (
	"net/http"
	"strings"

	"busreserve/internal/services"

	"github.com/gin-gonic/gin"
)

func seatService() services.SeatService {
	return services.SeatService{}
}

// GetSeats lists free seats for ?from=&to=&date= with per-seat pricing.
func GetSeats(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	date := strings.TrimSpace(c.Query("date"))
	if from == "" || to == "" || date == "" {
		respondError(c, http.StatusBadRequest, "missing_query", "from, to and date query parameters are required", nil)
		return
	}

	offers, err := seatService().AvailableSeats(from, to, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seats": offers})
}

// GetSeatByNumber returns seat details, optionally with an availability
// check when from/to/date are all present.
func GetSeatByNumber(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	status, err := seatService().Status(
		number,
		strings.TrimSpace(c.Query("from")),
		strings.TrimSpace(c.Query("to")),
		strings.TrimSpace(c.Query("date")),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
