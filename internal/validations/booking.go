package validations

import (
	"fmt"
	"regexp"
	"time"

	"busreserve/internal/domain"
	"busreserve/internal/domain/models"
	"busreserve/internal/utils"

	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	phoneRe  = regexp.MustCompile(`^\d{10}$`)
)

func init() {
	// A contact number is exactly ten digits, no separators.
	_ = validate.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
}

// PassengerDetails is the contact block on a booking request.
type PassengerDetails struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Contact string `json:"contact" validate:"required,phone10"`
}

// CreateBookingRequest is the booking payload as received on the wire.
type CreateBookingRequest struct {
	FromStation string            `json:"from_station" validate:"required"`
	ToStation   string            `json:"to_station" validate:"required"`
	TravelDate  string            `json:"travel_date" validate:"required"`
	Seats       []string          `json:"seats" validate:"required,min=1"`
	Meals       []models.MealLine `json:"meals"`
	Passenger   PassengerDetails  `json:"passenger_details"`
}

// ValidateCreateBooking checks passenger fields, the seat list bounds,
// and that the travel date is a well-formed future date. Everything it
// rejects surfaces as a ValidationError.
func ValidateCreateBooking(req CreateBookingRequest, maxSeats int, now time.Time) (time.Time, error) {
	if err := validate.Struct(req); err != nil {
		return time.Time{}, domain.ValidationError{Msg: firstViolation(err), Err: err}
	}
	if len(req.Seats) > maxSeats {
		return time.Time{}, domain.ValidationError{
			Field: "seats",
			Msg:   fmt.Sprintf("at most %d seats per booking", maxSeats),
		}
	}

	travelDate, err := utils.ParseDate(req.TravelDate)
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: "travel_date", Msg: "must be YYYY-MM-DD", Err: err}
	}
	y, m, d := now.In(time.Local).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	if !travelDate.After(today) {
		return time.Time{}, domain.ValidationError{Field: "travel_date", Msg: "must be in the future"}
	}
	return travelDate, nil
}

func firstViolation(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "email":
			return "email format is invalid"
		case "phone10":
			return "contact must be 10 digits"
		case "min":
			return fmt.Sprintf("%s must not be empty", fe.Field())
		}
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
	return "invalid booking payload"
}
