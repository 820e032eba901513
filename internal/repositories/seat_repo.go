package repositories

import (
	"database/sql"
	"strings"

	intconfig "busreserve/internal/config"
	intdb "busreserve/internal/db"
	"busreserve/internal/domain/models"
)

type SeatRepo struct {
	DB *sql.DB
}

func (r SeatRepo) db() intdb.Execer {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const seatColumns = `id, seat_number, seat_type, base_price, is_operational`

func scanSeat(row *sql.Row) (models.Seat, error) {
	var s models.Seat
	err := row.Scan(&s.ID, &s.SeatNumber, &s.SeatType, &s.BasePrice, &s.Operational)
	return s, err
}

// GetByNumber looks a seat up by its user-facing number (e.g. "S01")
// using the given queryer, so it works both directly and inside a
// transaction.
func (r SeatRepo) GetByNumber(q intdb.Queryer, number string) (models.Seat, error) {
	if q == nil {
		q = r.db()
	}
	row := q.QueryRow(
		`SELECT `+seatColumns+` FROM seats WHERE seat_number=? LIMIT 1`,
		strings.ToUpper(strings.TrimSpace(number)),
	)
	return scanSeat(row)
}

// GetByNumberForUpdate locks the seat row for the rest of the
// transaction. Hold creation runs its overlap re-check under this lock,
// which serializes concurrent bookings of the same seat.
func (r SeatRepo) GetByNumberForUpdate(tx *sql.Tx, number string) (models.Seat, error) {
	row := tx.QueryRow(
		`SELECT `+seatColumns+` FROM seats WHERE seat_number=? LIMIT 1 FOR UPDATE`,
		strings.ToUpper(strings.TrimSpace(number)),
	)
	return scanSeat(row)
}

// ListOperational returns every in-service seat ordered by number.
func (r SeatRepo) ListOperational(q intdb.Queryer) ([]models.Seat, error) {
	if q == nil {
		q = r.db()
	}
	rows, err := q.Query(`SELECT ` + seatColumns + ` FROM seats WHERE is_operational=1 ORDER BY seat_number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Seat{}
	for rows.Next() {
		var s models.Seat
		if err := rows.Scan(&s.ID, &s.SeatNumber, &s.SeatType, &s.BasePrice, &s.Operational); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
