package services

import (
	"database/sql"
	"errors"

	intdb "busreserve/internal/db"
	"busreserve/internal/domain"
	"busreserve/internal/domain/models"
	"busreserve/internal/repositories"
)

// LedgerService is the single source of truth for "is seat S free on
// segment [a,b) on date D". Availability reads may run outside a
// transaction, but Hold always re-checks on the caller's transaction
// after locking the seat row, so a check that passed cannot be
// invalidated between check and insert.
type LedgerService struct {
	Seats repositories.SeatRepo
	Holds repositories.HoldRepo
}

// IsFree reports whether no existing hold for (seat, date) overlaps
// [fromSeq, toSeq).
func (s LedgerService) IsFree(q intdb.Queryer, seatID int64, fromSeq, toSeq int, travelDate string) (bool, error) {
	n, err := s.Holds.CountOverlapping(q, seatID, fromSeq, toSeq, travelDate)
	if err != nil {
		return false, domain.InternalError{Err: err}
	}
	return n == 0, nil
}

// CheckSeat verifies a seat can be booked for the segment/date. This is
// the pre-flight read; Hold repeats it under lock before inserting.
func (s LedgerService) CheckSeat(q intdb.Queryer, seatNumber string, fromSeq, toSeq int, travelDate string) error {
	seat, err := s.Seats.GetByNumber(q, seatNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SeatNotFoundError{SeatNumber: seatNumber}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !seat.Operational {
		return domain.SeatUnavailableError{SeatNumber: seatNumber}
	}

	free, err := s.IsFree(q, seat.ID, fromSeq, toSeq, travelDate)
	if err != nil {
		return err
	}
	if !free {
		return domain.ConflictError{Resource: "seat", Msg: "seat " + seatNumber + " is already booked for an overlapping segment"}
	}
	return nil
}

// ListFreeSeats returns every operational seat with no overlapping hold
// for the segment/date. Linear in seats x holds-for-date, fine for one
// 40-seat bus.
func (s LedgerService) ListFreeSeats(fromSeq, toSeq int, travelDate string) ([]models.Seat, error) {
	seats, err := s.Seats.ListOperational(nil)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	blocked, err := s.Holds.BlockedSeatIDs(nil, fromSeq, toSeq, travelDate)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	out := []models.Seat{}
	for _, seat := range seats {
		if !blocked[seat.ID] {
			out = append(out, seat)
		}
	}
	return out, nil
}

// Hold claims the segment for a booking. It must run on the same
// transaction that will commit the booking: the seat row is locked
// FOR UPDATE, the overlap check repeats under that lock, and only then
// is the hold inserted. A conflict here means another booking won the
// race; the caller rolls the whole transaction back.
func (s LedgerService) Hold(tx *sql.Tx, seatNumber string, fromSeq, toSeq int, travelDate string, bookingID int64) (models.Seat, error) {
	seat, err := s.Seats.GetByNumberForUpdate(tx, seatNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Seat{}, domain.SeatNotFoundError{SeatNumber: seatNumber}
	}
	if err != nil {
		return models.Seat{}, domain.InternalError{Err: err}
	}
	if !seat.Operational {
		return models.Seat{}, domain.SeatUnavailableError{SeatNumber: seatNumber}
	}

	n, err := s.Holds.CountOverlapping(tx, seat.ID, fromSeq, toSeq, travelDate)
	if err != nil {
		return models.Seat{}, domain.InternalError{Err: err}
	}
	if n > 0 {
		return models.Seat{}, domain.ConflictError{Resource: "seat", Msg: "seat " + seatNumber + " is already booked for an overlapping segment"}
	}

	if _, err := s.Holds.Insert(tx, models.SegmentHold{
		SeatID:     seat.ID,
		FromSeq:    fromSeq,
		ToSeq:      toSeq,
		TravelDate: travelDate,
		BookingID:  bookingID,
	}); err != nil {
		return models.Seat{}, domain.InternalError{Err: err}
	}
	return seat, nil
}

// Release deletes every hold the booking owns. Idempotent: releasing a
// booking with no holds is a no-op.
func (s LedgerService) Release(ex intdb.Execer, bookingID int64) error {
	if err := s.Holds.DeleteByBooking(ex, bookingID); err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}
