package repositories

import (
	"database/sql"
	"strings"

	intconfig "busreserve/internal/config"
	intdb "busreserve/internal/db"
	"busreserve/internal/domain/models"
)

type MealRepo struct {
	DB *sql.DB
}

func (r MealRepo) db() intdb.Execer {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const mealColumns = `id, name, COALESCE(description,''), price, category, is_available`

func (r MealRepo) GetByID(q intdb.Queryer, id int64) (models.Meal, error) {
	if q == nil {
		q = r.db()
	}
	var m models.Meal
	err := q.QueryRow(`SELECT `+mealColumns+` FROM meals WHERE id=? LIMIT 1`, id).
		Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.Available)
	return m, err
}

func (r MealRepo) listWhere(where string, args ...any) ([]models.Meal, error) {
	rows, err := r.db().Query(`SELECT `+mealColumns+` FROM meals `+where+` ORDER BY id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Meal{}
	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.Available); err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r MealRepo) ListAvailable() ([]models.Meal, error) {
	return r.listWhere(`WHERE is_available=1`)
}

func (r MealRepo) ListByCategory(category string) ([]models.Meal, error) {
	return r.listWhere(`WHERE is_available=1 AND category=?`, strings.ToUpper(strings.TrimSpace(category)))
}

func (r MealRepo) Insert(m models.Meal) (int64, error) {
	res, err := r.db().Exec(
		`INSERT INTO meals (name, description, price, category, is_available) VALUES (?,?,?,?,1)`,
		strings.TrimSpace(m.Name), m.Description, m.Price, strings.ToUpper(strings.TrimSpace(m.Category)),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r MealRepo) SetAvailability(id int64, available bool) error {
	_, err := r.db().Exec(`UPDATE meals SET is_available=? WHERE id=?`, available, id)
	return err
}
