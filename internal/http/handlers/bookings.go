package handlers

import (
	"net/http"
	"strings"

	"busreserve/internal/http/middleware"
	"busreserve/internal/services"
	"busreserve/internal/validations"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		MaxSeats:  maxSeatsPerBooking,
		RequestID: middleware.GetRequestID(c),
	}
}

// CreateBooking validates availability, calculates price, and persists
// the reservation with its seat holds in one transaction.
func CreateBooking(c *gin.Context) {
	var req validations.CreateBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	detail, err := bookingService(c).CreateBooking(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// GetBooking fetches a booking by its reference
// (e.g. BUS-AHM-MUM-20260123-XYZW).
func GetBooking(c *gin.Context) {
	detail, err := bookingService(c).GetByReference(c.Param("reference"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetBookingHistory lists all bookings for an email address.
func GetBookingHistory(c *gin.Context) {
	bookings, err := bookingService(c).HistoryByEmail(c.Param("email"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out := make([]gin.H, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, gin.H{
			"booking_reference":        b.Reference,
			"pnr":                      b.PNR,
			"status":                   b.Status,
			"travel_date":              b.TravelDate,
			"total_amount":             b.TotalAmount,
			"refund_amount":            b.RefundAmount,
			"confirmation_probability": b.ConfirmationProbability,
			"created_at":               b.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// CancelBooking applies the refund policy and releases the seat holds.
func CancelBooking(c *gin.Context) {
	result, err := bookingService(c).CancelBooking(c.Param("reference"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateBookingMeals replaces the booking's meal selection.
func UpdateBookingMeals(c *gin.Context) {
	var mealIDs []int64
	if !BindJSONOrError(c, &mealIDs) {
		return
	}
	detail, err := bookingService(c).UpdateMeals(c.Param("reference"), mealIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GetBookingETicket streams the e-ticket PDF.
func GetBookingETicket(c *gin.Context) {
	docs := services.DocsService{
		Bookings:  bookingService(c),
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := docs.GenerateETicket(c.Param("reference"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(filename, `"`, "")+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
