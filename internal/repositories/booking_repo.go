package repositories

import (
	"database/sql"
	"strings"
	"time"

	intconfig "busreserve/internal/config"
	intdb "busreserve/internal/db"
	"busreserve/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() intdb.Execer {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, booking_reference, pnr, passenger_name, email, phone,
	from_station_id, to_station_id, DATE_FORMAT(travel_date, '%Y-%m-%d'),
	status, total_amount, refund_amount, confirmation_probability, created_at, cancelled_at`

func scanBooking(scan func(dest ...any) error) (models.Booking, error) {
	var b models.Booking
	var cancelledAt sql.NullTime
	err := scan(
		&b.ID, &b.Reference, &b.PNR, &b.PassengerName, &b.Email, &b.Phone,
		&b.FromStationID, &b.ToStationID, &b.TravelDate,
		&b.Status, &b.TotalAmount, &b.RefundAmount, &b.ConfirmationProbability,
		&b.CreatedAt, &cancelledAt,
	)
	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	return b, err
}

func (r BookingRepo) Insert(ex intdb.Execer, b models.Booking) (int64, error) {
	if ex == nil {
		ex = r.db()
	}
	res, err := ex.Exec(
		`INSERT INTO bookings
			(booking_reference, pnr, passenger_name, email, phone,
			 from_station_id, to_station_id, travel_date, status,
			 total_amount, refund_amount, confirmation_probability)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.Reference, b.PNR, b.PassengerName, b.Email, b.Phone,
		b.FromStationID, b.ToStationID, b.TravelDate, b.Status,
		b.TotalAmount, b.RefundAmount, b.ConfirmationProbability,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepo) GetByReference(q intdb.Queryer, reference string) (models.Booking, error) {
	if q == nil {
		q = r.db()
	}
	row := q.QueryRow(
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_reference=? LIMIT 1`,
		strings.TrimSpace(reference),
	)
	return scanBooking(row.Scan)
}

// ListByEmail returns a passenger's bookings, newest first.
func (r BookingRepo) ListByEmail(q intdb.Queryer, email string) ([]models.Booking, error) {
	if q == nil {
		q = r.db()
	}
	rows, err := q.Query(
		`SELECT `+bookingColumns+` FROM bookings WHERE email=? ORDER BY created_at DESC`,
		strings.TrimSpace(email),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MarkCancelled flips the booking to CANCELLED and records the refund.
func (r BookingRepo) MarkCancelled(ex intdb.Execer, id int64, refundAmount int64, cancelledAt time.Time) error {
	if ex == nil {
		ex = r.db()
	}
	_, err := ex.Exec(
		`UPDATE bookings SET status=?, refund_amount=?, cancelled_at=? WHERE id=?`,
		models.BookingCancelled, refundAmount, cancelledAt, id,
	)
	return err
}

func (r BookingRepo) UpdateTotal(ex intdb.Execer, id int64, total int64) error {
	if ex == nil {
		ex = r.db()
	}
	_, err := ex.Exec(`UPDATE bookings SET total_amount=? WHERE id=?`, total, id)
	return err
}

func (r BookingRepo) InsertMealLines(ex intdb.Execer, bookingID int64, lines []models.MealLine) error {
	if ex == nil {
		ex = r.db()
	}
	for _, line := range lines {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		if _, err := ex.Exec(
			`INSERT INTO booking_meals (booking_id, meal_id, quantity) VALUES (?,?,?)`,
			bookingID, line.MealID, qty,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r BookingRepo) DeleteMealLines(ex intdb.Execer, bookingID int64) error {
	if ex == nil {
		ex = r.db()
	}
	_, err := ex.Exec(`DELETE FROM booking_meals WHERE booking_id=?`, bookingID)
	return err
}

func (r BookingRepo) ListMealLines(q intdb.Queryer, bookingID int64) ([]models.MealLine, error) {
	if q == nil {
		q = r.db()
	}
	rows, err := q.Query(
		`SELECT meal_id, quantity FROM booking_meals WHERE booking_id=? ORDER BY id ASC`,
		bookingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.MealLine{}
	for rows.Next() {
		var line models.MealLine
		if err := rows.Scan(&line.MealID, &line.Quantity); err != nil {
			return out, err
		}
		out = append(out, line)
	}
	return out, rows.Err()
}
