package validations

import (
	"testing"
	"time"

	"busreserve/internal/domain"
)

var testNow = time.Date(2026, 1, 20, 10, 0, 0, 0, time.Local)

func validBooking() CreateBookingRequest {
	return CreateBookingRequest{
		FromStation: "Ahmedabad",
		ToStation:   "Mumbai",
		TravelDate:  "2026-01-23",
		Seats:       []string{"S01"},
		Passenger: PassengerDetails{
			Name:    "Asha Patel",
			Email:   "asha@example.com",
			Contact: "9876543210",
		},
	}
}

func TestValidateCreateBookingAccepts(t *testing.T) {
	travelDate, err := ValidateCreateBooking(validBooking(), 5, testNow)
	if err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if travelDate.Format("2006-01-02") != "2026-01-23" {
		t.Fatalf("parsed travel date = %v", travelDate)
	}
}

func TestValidateCreateBookingContactDigits(t *testing.T) {
	req := validBooking()
	req.Passenger.Contact = "98765-4321"
	if _, err := ValidateCreateBooking(req, 5, testNow); !domain.IsValidation(err) {
		t.Fatalf("contact with separators must fail, got %v", err)
	}

	req.Passenger.Contact = "987654321" // nine digits
	if _, err := ValidateCreateBooking(req, 5, testNow); !domain.IsValidation(err) {
		t.Fatalf("nine-digit contact must fail, got %v", err)
	}
}

func TestValidateCreateBookingEmail(t *testing.T) {
	req := validBooking()
	req.Passenger.Email = "not-an-email"
	if _, err := ValidateCreateBooking(req, 5, testNow); !domain.IsValidation(err) {
		t.Fatalf("malformed email must fail, got %v", err)
	}
}

func TestValidateCreateBookingSeatBounds(t *testing.T) {
	req := validBooking()
	req.Seats = nil
	if _, err := ValidateCreateBooking(req, 5, testNow); !domain.IsValidation(err) {
		t.Fatalf("empty seat list must fail, got %v", err)
	}

	req.Seats = []string{"S01", "S02", "S03"}
	if _, err := ValidateCreateBooking(req, 2, testNow); !domain.IsValidation(err) {
		t.Fatalf("seat list over the cap must fail, got %v", err)
	}
}

func TestValidateCreateBookingDate(t *testing.T) {
	req := validBooking()
	req.TravelDate = "23-01-2026"
	if _, err := ValidateCreateBooking(req, 5, testNow); !domain.IsValidation(err) {
		t.Fatalf("wrong date layout must fail, got %v", err)
	}

	req.TravelDate = "2026-01-20" // same day is not strictly future
	if _, err := ValidateCreateBooking(req, 5, testNow); !domain.IsValidation(err) {
		t.Fatalf("same-day travel date must fail, got %v", err)
	}

	req.TravelDate = "2026-01-19"
	if _, err := ValidateCreateBooking(req, 5, testNow); !domain.IsValidation(err) {
		t.Fatalf("past travel date must fail, got %v", err)
	}
}
