package services

import (
	"database/sql"
	"errors"

	"busreserve/internal/domain"
	"busreserve/internal/domain/models"
	"busreserve/internal/repositories"
)

// RouteService answers questions about the fixed station order: name
// lookup and translating a station pair into a segment range.
type RouteService struct {
	Stations repositories.StationRepo
}

// Resolve finds a station by name.
func (s RouteService) Resolve(name string) (models.Station, error) {
	st, err := s.Stations.GetByName(name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Station{}, domain.InvalidStationError{Msg: "station " + name + " not found"}
	}
	if err != nil {
		return models.Station{}, domain.InternalError{Err: err}
	}
	return st, nil
}

// ToSegment converts a station pair into a half-open sequence range.
// The route is unidirectional: origin must come strictly before the
// destination, so same-station and reversed pairs are rejected.
func (s RouteService) ToSegment(from, to models.Station) (fromSeq, toSeq int, err error) {
	if from.Sequence >= to.Sequence {
		return 0, 0, domain.InvalidStationError{
			Msg: "from station must come before to station in the route",
		}
	}
	return from.Sequence, to.Sequence, nil
}

// List returns the whole route in order.
func (s RouteService) List() ([]models.Station, error) {
	stations, err := s.Stations.ListOrdered()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return stations, nil
}

// GetByID returns one station.
func (s RouteService) GetByID(id int64) (models.Station, error) {
	st, err := s.Stations.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Station{}, domain.NotFoundError{Resource: "station"}
	}
	if err != nil {
		return models.Station{}, domain.InternalError{Err: err}
	}
	return st, nil
}

// Create adds a station at setup time. The route is a fixed total
// order, so both the name and the sequence slot must be unused.
func (s RouteService) Create(st models.Station) (models.Station, error) {
	if st.Name == "" {
		return models.Station{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	if st.Sequence <= 0 {
		return models.Station{}, domain.ValidationError{Field: "sequence", Msg: "must be positive"}
	}
	if _, err := s.Stations.GetByName(st.Name); err == nil {
		return models.Station{}, domain.ConflictError{Resource: "station", Msg: "name already exists"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.Station{}, domain.InternalError{Err: err}
	}

	id, err := s.Stations.Insert(st)
	if err != nil {
		return models.Station{}, domain.InternalError{Err: err}
	}
	st.ID = id
	return st, nil
}
