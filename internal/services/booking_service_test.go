package services

import (
	"database/sql"
	"testing"
	"time"

	"busreserve/internal/domain"
	"busreserve/internal/repositories"
	"busreserve/internal/utils"
	"busreserve/internal/validations"

	"github.com/DATA-DOG/go-sqlmock"
)

type fixedScorer struct{ p float64 }

func (f fixedScorer) Score(daysBeforeJourney, partySize int) float64 { return f.p }

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		DB:       db,
		Routes:   RouteService{Stations: repositories.StationRepo{DB: db}},
		Ledger:   LedgerService{Seats: repositories.SeatRepo{DB: db}, Holds: repositories.HoldRepo{DB: db}},
		Scorer:   fixedScorer{p: 85},
		Bookings: repositories.BookingRepo{DB: db},
		Seats:    repositories.SeatRepo{DB: db},
		Holds:    repositories.HoldRepo{DB: db},
		Meals:    repositories.MealRepo{DB: db},
		NowFunc:  func() time.Time { return time.Date(2026, 1, 20, 10, 0, 0, 0, time.Local) },
	}
	return svc, mock, func() { db.Close() }
}

func validRequest() validations.CreateBookingRequest {
	return validations.CreateBookingRequest{
		FromStation: "Ahmedabad",
		ToStation:   "Vadodara",
		TravelDate:  "2026-01-23",
		Seats:       []string{"S01"},
		Passenger: validations.PassengerDetails{
			Name:    "Asha Patel",
			Email:   "asha@example.com",
			Contact: "9876543210",
		},
	}
}

func stationRow(id int64, name, arrival, departure string, km, seq int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "arrival_time", "departure_time", "distance_km", "sequence"}).
		AddRow(id, name, arrival, departure, km, seq)
}

func bookingRow(id int64, reference, travelDate, status string, total, refund int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_reference", "pnr", "passenger_name", "email", "phone",
		"from_station_id", "to_station_id", "travel_date",
		"status", "total_amount", "refund_amount", "confirmation_probability",
		"created_at", "cancelled_at",
	}).AddRow(
		id, reference, "ABC123XYZ", "Asha Patel", "asha@example.com", "9876543210",
		1, 2, travelDate,
		status, total, refund, 85.0,
		time.Date(2026, 1, 20, 10, 0, 0, 0, time.Local), nil,
	)
}

func TestCreateBookingRejectsBadContact(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	req := validRequest()
	req.Passenger.Contact = "12345"

	_, err := svc.CreateBooking(req)
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error for short contact, got %v", err)
	}
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	req := validRequest()
	req.TravelDate = "2026-01-20" // today, not strictly future

	_, err := svc.CreateBooking(req)
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error for non-future date, got %v", err)
	}
}

func TestCreateBookingRejectsTooManySeats(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	req := validRequest()
	req.Seats = []string{"S01", "S02", "S03", "S04", "S05", "S06"}

	_, err := svc.CreateBooking(req)
	if !domain.IsValidation(err) {
		t.Fatalf("want validation error for six seats, got %v", err)
	}
}

func TestCreateBookingRejectsReversedDirection(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	req := validRequest()
	req.FromStation = "Mumbai"
	req.ToStation = "Ahmedabad"

	mock.ExpectQuery(`SELECT .+ FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Mumbai").
		WillReturnRows(stationRow(5, "Mumbai", "06:00", "", 500, 5))
	mock.ExpectQuery(`SELECT .+ FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Ahmedabad").
		WillReturnRows(stationRow(1, "Ahmedabad", "", "18:00", 0, 1))

	_, err := svc.CreateBooking(req)
	if !domain.IsInvalidStation(err) {
		t.Fatalf("want invalid station error for reversed pair, got %v", err)
	}
}

func TestCreateBookingUnknownStation(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	req := validRequest()
	req.FromStation = "Atlantis"

	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Atlantis").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "arrival_time", "departure_time", "distance_km", "sequence"}))

	_, err := svc.CreateBooking(req)
	if !domain.IsInvalidStation(err) {
		t.Fatalf("want invalid station error for unknown name, got %v", err)
	}
}

func TestCreateBookingCommitsBookingAndHolds(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	req := validRequest()
	req.Seats = []string{"S01", "S21"}

	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Ahmedabad").
		WillReturnRows(stationRow(1, "Ahmedabad", "", "18:00", 0, 1))
	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Vadodara").
		WillReturnRows(stationRow(2, "Vadodara", "20:00", "20:10", 100, 2))

	// Pre-flight for S01: availability check, then price lookup.
	mock.ExpectQuery(`FROM seats WHERE seat_number=\?`).
		WithArgs("S01").
		WillReturnRows(seatRows(1, "S01", "lower", 800, true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seat_holds`).
		WithArgs(int64(1), "2026-01-23", 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery(`FROM seats WHERE seat_number=\?`).
		WithArgs("S01").
		WillReturnRows(seatRows(1, "S01", "lower", 800, true))

	// Pre-flight for S21.
	mock.ExpectQuery(`FROM seats WHERE seat_number=\?`).
		WithArgs("S21").
		WillReturnRows(seatRows(21, "S21", "upper", 700, true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seat_holds`).
		WithArgs(int64(21), "2026-01-23", 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectQuery(`FROM seats WHERE seat_number=\?`).
		WithArgs("S21").
		WillReturnRows(seatRows(21, "S21", "upper", 700, true))

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(42, 1))
	// Hold S01 under lock.
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("S01").
		WillReturnRows(seatRows(1, "S01", "lower", 800, true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seat_holds`).
		WithArgs(int64(1), "2026-01-23", 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO seat_holds`).
		WithArgs(int64(1), 1, 2, "2026-01-23", int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// Hold S21 under lock.
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("S21").
		WillReturnRows(seatRows(21, "S21", "upper", 700, true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seat_holds`).
		WithArgs(int64(21), "2026-01-23", 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO seat_holds`).
		WithArgs(int64(21), 1, 2, "2026-01-23", int64(42)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	detail, err := svc.CreateBooking(req)
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}
	// 100km segment: S01 lower 800*1.0*1.3=1040, S21 upper 700*1.0*1.0=700.
	if detail.TotalAmount != 1740 {
		t.Fatalf("total = %d, want 1740", detail.TotalAmount)
	}
	if detail.Status != "CONFIRMED" {
		t.Fatalf("status = %s, want CONFIRMED", detail.Status)
	}
	if detail.ConfirmationProbability != 85 {
		t.Fatalf("probability = %v, want the injected 85", detail.ConfirmationProbability)
	}
	if len(detail.Seats) != 2 {
		t.Fatalf("seats = %v, want two", detail.Seats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRollsBackWhenSecondSeatRaces(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	req := validRequest()
	req.Seats = []string{"S01", "S02"}

	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Ahmedabad").
		WillReturnRows(stationRow(1, "Ahmedabad", "", "18:00", 0, 1))
	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Vadodara").
		WillReturnRows(stationRow(2, "Vadodara", "20:00", "20:10", 100, 2))

	for _, seat := range []struct {
		id     int64
		number string
	}{{1, "S01"}, {2, "S02"}} {
		mock.ExpectQuery(`FROM seats WHERE seat_number=\?`).
			WithArgs(seat.number).
			WillReturnRows(seatRows(seat.id, seat.number, "lower", 800, true))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seat_holds`).
			WithArgs(seat.id, "2026-01-23", 2, 1).
			WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
		mock.ExpectQuery(`FROM seats WHERE seat_number=\?`).
			WithArgs(seat.number).
			WillReturnRows(seatRows(seat.id, seat.number, "lower", 800, true))
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("S01").
		WillReturnRows(seatRows(1, "S01", "lower", 800, true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seat_holds`).
		WithArgs(int64(1), "2026-01-23", 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO seat_holds`).
		WithArgs(int64(1), 1, 2, "2026-01-23", int64(42)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	// S02 was taken between pre-flight and lock; the whole booking,
	// including the S01 hold, must roll back.
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs("S02").
		WillReturnRows(seatRows(2, "S02", "lower", 800, true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seat_holds`).
		WithArgs(int64(2), "2026-01-23", 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.CreateBooking(req)
	if !domain.IsConflict(err) {
		t.Fatalf("want conflict when the second seat races, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingFullRefund(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	// Journey on the 23rd, cancelled on the 20th: more than 24 hours out.
	mock.ExpectQuery(`FROM bookings WHERE booking_reference=\?`).
		WithArgs("BUS-AHM-VAD-20260120-AB12").
		WillReturnRows(bookingRow(42, "BUS-AHM-VAD-20260120-AB12", "2026-01-23", "CONFIRMED", 1740, 0))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE bookings SET status=\?, refund_amount=\?, cancelled_at=\?`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM seat_holds WHERE booking_id=\?`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	result, err := svc.CancelBooking("BUS-AHM-VAD-20260120-AB12")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if result.RefundStatus != utils.RefundFull {
		t.Fatalf("refund status = %s, want %s", result.RefundStatus, utils.RefundFull)
	}
	if result.RefundAmount != 1740 || result.RefundPercentage != 100 {
		t.Fatalf("refund = %d (%d%%), want 1740 (100%%)", result.RefundAmount, result.RefundPercentage)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelBookingPartialRefund(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	// Journey at midnight on the 21st, cancelled 10:00 on the 20th: 14h.
	mock.ExpectQuery(`FROM bookings WHERE booking_reference=\?`).
		WithArgs("REF").
		WillReturnRows(bookingRow(42, "REF", "2026-01-21", "CONFIRMED", 1000, 0))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE bookings SET status=\?`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM seat_holds`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.CancelBooking("REF")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if result.RefundStatus != utils.RefundPartial || result.RefundAmount != 500 {
		t.Fatalf("refund = %s %d, want %s 500", result.RefundStatus, result.RefundAmount, utils.RefundPartial)
	}
}

func TestCancelBookingAlreadyCancelled(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectQuery(`FROM bookings WHERE booking_reference=\?`).
		WithArgs("REF").
		WillReturnRows(bookingRow(42, "REF", "2026-01-23", "CANCELLED", 1740, 1740))

	_, err := svc.CancelBooking("REF")
	if !domain.IsValidation(err) {
		t.Fatalf("second cancellation must be rejected, got %v", err)
	}
}

func TestCancelBookingAfterJourneyStarted(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectQuery(`FROM bookings WHERE booking_reference=\?`).
		WithArgs("REF").
		WillReturnRows(bookingRow(42, "REF", "2026-01-19", "CONFIRMED", 1740, 0))

	_, err := svc.CancelBooking("REF")
	if !domain.IsCancellationNotAllowed(err) {
		t.Fatalf("cancelling after departure must fail, got %v", err)
	}
}

func TestCancelBookingNotFound(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectQuery(`FROM bookings WHERE booking_reference=\?`).
		WithArgs("NOPE").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.CancelBooking("NOPE")
	if !domain.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestUpdateMealsRecomputesTotal(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mealRows := func(id int64, name string, price int64) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "description", "price", "category", "is_available"}).
			AddRow(id, name, "", price, "VEG", 1)
	}

	mock.ExpectQuery(`FROM bookings WHERE booking_reference=\?`).
		WithArgs("REF").
		WillReturnRows(bookingRow(42, "REF", "2026-01-23", "CONFIRMED", 1140, 0))
	// Existing selection: meal 1 at 100.
	mock.ExpectQuery(`SELECT meal_id, quantity FROM booking_meals`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"meal_id", "quantity"}).AddRow(1, 1))
	mock.ExpectQuery(`FROM meals WHERE id=\?`).
		WithArgs(int64(1)).
		WillReturnRows(mealRows(1, "Veg Thali", 100))
	// New selection: meal 2 at 250.
	mock.ExpectQuery(`FROM meals WHERE id=\?`).
		WithArgs(int64(2)).
		WillReturnRows(mealRows(2, "Paneer Wrap", 250))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM booking_meals WHERE booking_id=\?`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO booking_meals`).
		WithArgs(int64(42), int64(2), 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE bookings SET total_amount=\?`).
		WithArgs(int64(1290), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// buildDetail reads after commit.
	mock.ExpectQuery(`FROM stations WHERE id=\?`).
		WithArgs(int64(1)).
		WillReturnRows(stationRow(1, "Ahmedabad", "", "18:00", 0, 1))
	mock.ExpectQuery(`FROM stations WHERE id=\?`).
		WithArgs(int64(2)).
		WillReturnRows(stationRow(2, "Vadodara", "20:00", "20:10", 100, 2))
	mock.ExpectQuery(`SELECT s\.seat_number FROM seat_holds`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("S01"))
	mock.ExpectQuery(`SELECT meal_id, quantity FROM booking_meals`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"meal_id", "quantity"}).AddRow(2, 1))

	detail, err := svc.UpdateMeals("REF", []int64{2})
	if err != nil {
		t.Fatalf("update meals failed: %v", err)
	}
	// 1140 - 100 (old meal) + 250 (new meal) = 1290.
	if detail.TotalAmount != 1290 {
		t.Fatalf("total = %d, want 1290", detail.TotalAmount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateMealsRejectedOnCancelledBooking(t *testing.T) {
	svc, mock, done := newBookingService(t)
	defer done()

	mock.ExpectQuery(`FROM bookings WHERE booking_reference=\?`).
		WithArgs("REF").
		WillReturnRows(bookingRow(42, "REF", "2026-01-23", "CANCELLED", 1740, 1740))

	_, err := svc.UpdateMeals("REF", []int64{1})
	if !domain.IsValidation(err) {
		t.Fatalf("meal update on a cancelled booking must fail, got %v", err)
	}
}

func TestHistoryRequiresEmail(t *testing.T) {
	svc, _, done := newBookingService(t)
	defer done()

	_, err := svc.HistoryByEmail("  ")
	if !domain.IsValidation(err) {
		t.Fatalf("blank email must be rejected, got %v", err)
	}
}
