package services

import (
	"database/sql"
	"errors"

	"busreserve/internal/domain"
	"busreserve/internal/domain/models"
	"busreserve/internal/repositories"
)

// MealService manages the meal catalog. Independent lifecycle from
// bookings; bookings only reference meals by id.
type MealService struct {
	Meals repositories.MealRepo
}

func (s MealService) ListAvailable() ([]models.Meal, error) {
	meals, err := s.Meals.ListAvailable()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return meals, nil
}

func (s MealService) ListByCategory(category string) ([]models.Meal, error) {
	meals, err := s.Meals.ListByCategory(category)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return meals, nil
}

func (s MealService) Create(m models.Meal) (models.Meal, error) {
	if m.Name == "" {
		return models.Meal{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	if m.Price < 0 {
		return models.Meal{}, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	id, err := s.Meals.Insert(m)
	if err != nil {
		return models.Meal{}, domain.InternalError{Err: err}
	}
	m.ID = id
	m.Available = true
	return m, nil
}

func (s MealService) SetAvailability(id int64, available bool) (models.Meal, error) {
	if _, err := s.Meals.GetByID(nil, id); errors.Is(err, sql.ErrNoRows) {
		return models.Meal{}, domain.NotFoundError{Resource: "meal"}
	} else if err != nil {
		return models.Meal{}, domain.InternalError{Err: err}
	}
	if err := s.Meals.SetAvailability(id, available); err != nil {
		return models.Meal{}, domain.InternalError{Err: err}
	}
	meal, err := s.Meals.GetByID(nil, id)
	if err != nil {
		return models.Meal{}, domain.InternalError{Err: err}
	}
	return meal, nil
}
