package repositories

import (
	"database/sql"
	"strings"

	intconfig "busreserve/internal/config"
	intdb "busreserve/internal/db"
	"busreserve/internal/domain/models"
)

type StationRepo struct {
	DB *sql.DB
}

func (r StationRepo) db() intdb.Execer {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const stationColumns = `id, name, COALESCE(arrival_time,''), COALESCE(departure_time,''), distance_km, sequence`

func scanStation(row *sql.Row) (models.Station, error) {
	var st models.Station
	err := row.Scan(&st.ID, &st.Name, &st.ArrivalTime, &st.DepartureTime, &st.DistanceKm, &st.Sequence)
	return st, err
}

// GetByName matches case-insensitively; station names are unique.
func (r StationRepo) GetByName(name string) (models.Station, error) {
	row := r.db().QueryRow(
		`SELECT `+stationColumns+` FROM stations WHERE LOWER(name)=LOWER(?) LIMIT 1`,
		strings.TrimSpace(name),
	)
	return scanStation(row)
}

func (r StationRepo) GetByID(id int64) (models.Station, error) {
	row := r.db().QueryRow(`SELECT `+stationColumns+` FROM stations WHERE id=? LIMIT 1`, id)
	return scanStation(row)
}

// ListOrdered returns the whole route in sequence order.
func (r StationRepo) ListOrdered() ([]models.Station, error) {
	rows, err := r.db().Query(`SELECT ` + stationColumns + ` FROM stations ORDER BY sequence ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Station{}
	for rows.Next() {
		var st models.Station
		if err := rows.Scan(&st.ID, &st.Name, &st.ArrivalTime, &st.DepartureTime, &st.DistanceKm, &st.Sequence); err != nil {
			return out, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r StationRepo) Insert(st models.Station) (int64, error) {
	res, err := r.db().Exec(
		`INSERT INTO stations (name, sequence, arrival_time, departure_time, distance_km) VALUES (?,?,?,?,?)`,
		strings.TrimSpace(st.Name), st.Sequence,
		intdb.NullIfEmpty(st.ArrivalTime), intdb.NullIfEmpty(st.DepartureTime),
		st.DistanceKm,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
