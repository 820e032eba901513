package services

import (
	"testing"

	"busreserve/internal/domain"
	"busreserve/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newSeatService(t *testing.T) (SeatService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := SeatService{
		Routes: RouteService{Stations: repositories.StationRepo{DB: db}},
		Ledger: LedgerService{Seats: repositories.SeatRepo{DB: db}, Holds: repositories.HoldRepo{DB: db}},
		Seats:  repositories.SeatRepo{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestAvailableSeatsPricesPerSegment(t *testing.T) {
	svc, mock, done := newSeatService(t)
	defer done()

	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Vadodara").
		WillReturnRows(stationRow(2, "Vadodara", "20:00", "20:10", 100, 2))
	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Vapi").
		WillReturnRows(stationRow(4, "Vapi", "01:00", "01:10", 350, 4))
	mock.ExpectQuery(`FROM seats WHERE is_operational=1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number", "seat_type", "base_price", "is_operational"}).
			AddRow(1, "S01", "lower", 800, 1).
			AddRow(21, "S21", "upper", 700, 1))
	mock.ExpectQuery(`SELECT DISTINCT seat_id FROM seat_holds`).
		WithArgs("2026-01-23", 4, 2).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))

	offers, err := svc.AvailableSeats("Vadodara", "Vapi", "2026-01-23")
	if err != nil {
		t.Fatalf("available seats: %v", err)
	}
	if len(offers) != 2 {
		t.Fatalf("offers = %d, want 2", len(offers))
	}
	// 250km segment (100 to 350): lower 800*1.2*1.3=1248, upper 700*1.2=840.
	if offers[0].Price != 1248 {
		t.Fatalf("S01 price = %d, want 1248", offers[0].Price)
	}
	if offers[1].Price != 840 {
		t.Fatalf("S21 price = %d, want 840", offers[1].Price)
	}
}

func TestAvailableSeatsRejectsBadDate(t *testing.T) {
	svc, mock, done := newSeatService(t)
	defer done()

	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Vadodara").
		WillReturnRows(stationRow(2, "Vadodara", "20:00", "20:10", 100, 2))
	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Vapi").
		WillReturnRows(stationRow(4, "Vapi", "01:00", "01:10", 350, 4))

	_, err := svc.AvailableSeats("Vadodara", "Vapi", "23/01/2026")
	if !domain.IsValidation(err) {
		t.Fatalf("malformed date must fail, got %v", err)
	}
}

func TestSeatStatusWithoutJourney(t *testing.T) {
	svc, mock, done := newSeatService(t)
	defer done()

	mock.ExpectQuery(`FROM seats WHERE seat_number=\?`).
		WithArgs("S01").
		WillReturnRows(seatRows(1, "S01", "lower", 800, true))

	status, err := svc.Status("S01", "", "", "")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Available != nil || status.Journey != nil || status.Price != nil {
		t.Fatalf("journey fields must be absent without a segment query")
	}
	if status.BasePrice != 800 || !status.Operational {
		t.Fatalf("unexpected seat detail: %+v", status)
	}
}

func TestSeatStatusWithJourneyCheck(t *testing.T) {
	svc, mock, done := newSeatService(t)
	defer done()

	mock.ExpectQuery(`FROM seats WHERE seat_number=\?`).
		WithArgs("S01").
		WillReturnRows(seatRows(1, "S01", "lower", 800, true))
	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Ahmedabad").
		WillReturnRows(stationRow(1, "Ahmedabad", "", "18:00", 0, 1))
	mock.ExpectQuery(`FROM stations WHERE LOWER\(name\)=LOWER\(\?\)`).
		WithArgs("Surat").
		WillReturnRows(stationRow(3, "Surat", "22:30", "22:40", 250, 3))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seat_holds`).
		WithArgs(int64(1), "2026-01-23", 3, 1).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	status, err := svc.Status("S01", "Ahmedabad", "Surat", "2026-01-23")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Available == nil || *status.Available {
		t.Fatalf("seat with an overlapping hold must not be available")
	}
	if status.Price != nil {
		t.Fatalf("price must be omitted for an unavailable seat")
	}
	if status.Journey == nil || status.Journey.ToStation != "Surat" {
		t.Fatalf("journey echo missing: %+v", status.Journey)
	}
}

func TestSeatStatusUnknownSeat(t *testing.T) {
	svc, mock, done := newSeatService(t)
	defer done()

	mock.ExpectQuery(`FROM seats WHERE seat_number=\?`).
		WithArgs("S99").
		WillReturnRows(sqlmock.NewRows([]string{"id", "seat_number", "seat_type", "base_price", "is_operational"}))

	_, err := svc.Status("S99", "", "", "")
	if !domain.IsSeatNotFound(err) {
		t.Fatalf("want SeatNotFound, got %v", err)
	}
}
