package repositories

import (
	"database/sql"

	intconfig "busreserve/internal/config"
	intdb "busreserve/internal/db"
	"busreserve/internal/domain/models"
)

// HoldRepo persists seat segment holds. A row claims one seat for the
// half-open segment [from_seq, to_seq) on one travel date; the overlap
// predicate is existing.from < new.to AND existing.to > new.from, so
// touching endpoints never collide.
type HoldRepo struct {
	DB *sql.DB
}

func (r HoldRepo) db() intdb.Execer {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// CountOverlapping returns how many existing holds for (seat, date)
// intersect [fromSeq, toSeq). Callers that are about to insert must run
// this on a transaction that already locked the seat row.
func (r HoldRepo) CountOverlapping(q intdb.Queryer, seatID int64, fromSeq, toSeq int, travelDate string) (int, error) {
	if q == nil {
		q = r.db()
	}
	var n int
	err := q.QueryRow(
		`SELECT COUNT(*) FROM seat_holds WHERE seat_id=? AND travel_date=? AND from_seq < ? AND to_seq > ?`,
		seatID, travelDate, toSeq, fromSeq,
	).Scan(&n)
	return n, err
}

// BlockedSeatIDs lists seats that have any hold overlapping the segment
// on the given date.
func (r HoldRepo) BlockedSeatIDs(q intdb.Queryer, fromSeq, toSeq int, travelDate string) (map[int64]bool, error) {
	if q == nil {
		q = r.db()
	}
	rows, err := q.Query(
		`SELECT DISTINCT seat_id FROM seat_holds WHERE travel_date=? AND from_seq < ? AND to_seq > ?`,
		travelDate, toSeq, fromSeq,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocked := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return blocked, err
		}
		blocked[id] = true
	}
	return blocked, rows.Err()
}

func (r HoldRepo) Insert(ex intdb.Execer, h models.SegmentHold) (int64, error) {
	if ex == nil {
		ex = r.db()
	}
	res, err := ex.Exec(
		`INSERT INTO seat_holds (seat_id, from_seq, to_seq, travel_date, booking_id) VALUES (?,?,?,?,?)`,
		h.SeatID, h.FromSeq, h.ToSeq, h.TravelDate, h.BookingID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteByBooking removes every hold the booking owns. Deleting zero
// rows is fine; release is idempotent.
func (r HoldRepo) DeleteByBooking(ex intdb.Execer, bookingID int64) error {
	if ex == nil {
		ex = r.db()
	}
	_, err := ex.Exec(`DELETE FROM seat_holds WHERE booking_id=?`, bookingID)
	return err
}

// SeatNumbersByBooking returns the sorted user-facing seat numbers the
// booking currently holds.
func (r HoldRepo) SeatNumbersByBooking(q intdb.Queryer, bookingID int64) ([]string, error) {
	if q == nil {
		q = r.db()
	}
	rows, err := q.Query(
		`SELECT s.seat_number FROM seat_holds h JOIN seats s ON s.id=h.seat_id WHERE h.booking_id=? ORDER BY s.seat_number ASC`,
		bookingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
