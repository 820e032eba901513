package services

import (
	"database/sql"
	"errors"

	"busreserve/internal/domain"
	"busreserve/internal/repositories"
	"busreserve/internal/utils"
)

// SeatService shapes seat availability and pricing for the query
// endpoints; the ledger stays the authority on what is free.
type SeatService struct {
	Routes RouteService
	Ledger LedgerService
	Seats  repositories.SeatRepo
}

// SeatOffer is one bookable seat with its computed segment price.
type SeatOffer struct {
	SeatNumber string `json:"seat_number"`
	SeatType   string `json:"seat_type"`
	Status     string `json:"status"`
	Price      int64  `json:"price"`
}

// AvailableSeats lists free operational seats for a route segment and
// date, each priced for that segment.
func (s SeatService) AvailableSeats(fromName, toName, travelDate string) ([]SeatOffer, error) {
	from, err := s.Routes.Resolve(fromName)
	if err != nil {
		return nil, err
	}
	to, err := s.Routes.Resolve(toName)
	if err != nil {
		return nil, err
	}
	fromSeq, toSeq, err := s.Routes.ToSegment(from, to)
	if err != nil {
		return nil, err
	}
	if _, err := utils.ParseDate(travelDate); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}

	seats, err := s.Ledger.ListFreeSeats(fromSeq, toSeq, travelDate)
	if err != nil {
		return nil, err
	}

	distance := utils.DistanceBetween(from.DistanceKm, to.DistanceKm)
	offers := make([]SeatOffer, 0, len(seats))
	for _, seat := range seats {
		offers = append(offers, SeatOffer{
			SeatNumber: seat.SeatNumber,
			SeatType:   seat.SeatType,
			Status:     "available",
			Price:      utils.SeatPrice(seat.BasePrice, seat.SeatType, distance),
		})
	}
	return offers, nil
}

// SeatStatus is the seat detail view, with an optional availability and
// price check when a segment and date are supplied.
type SeatStatus struct {
	SeatNumber  string          `json:"seat_number"`
	SeatType    string          `json:"seat_type"`
	BasePrice   int64           `json:"base_price"`
	Operational bool            `json:"seat_operational"`
	Journey     *JourneyDetails `json:"journey_details,omitempty"`
	Available   *bool           `json:"available_for_journey,omitempty"`
	Price       *int64          `json:"price,omitempty"`
}

// Status returns seat details; fromName/toName/travelDate are optional
// and, when all present, add an availability check for that journey.
func (s SeatService) Status(seatNumber, fromName, toName, travelDate string) (SeatStatus, error) {
	seat, err := s.Seats.GetByNumber(nil, seatNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return SeatStatus{}, domain.SeatNotFoundError{SeatNumber: seatNumber}
	}
	if err != nil {
		return SeatStatus{}, domain.InternalError{Err: err}
	}

	out := SeatStatus{
		SeatNumber:  seat.SeatNumber,
		SeatType:    seat.SeatType,
		BasePrice:   seat.BasePrice,
		Operational: seat.Operational,
	}

	if fromName == "" || toName == "" || travelDate == "" {
		return out, nil
	}

	from, err := s.Routes.Resolve(fromName)
	if err != nil {
		return SeatStatus{}, err
	}
	to, err := s.Routes.Resolve(toName)
	if err != nil {
		return SeatStatus{}, err
	}
	fromSeq, toSeq, err := s.Routes.ToSegment(from, to)
	if err != nil {
		return SeatStatus{}, err
	}
	if _, err := utils.ParseDate(travelDate); err != nil {
		return SeatStatus{}, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD", Err: err}
	}

	free, err := s.Ledger.IsFree(nil, seat.ID, fromSeq, toSeq, travelDate)
	if err != nil {
		return SeatStatus{}, err
	}

	available := seat.Operational && free
	out.Available = &available
	out.Journey = &JourneyDetails{
		FromStation:   from.Name,
		ToStation:     to.Name,
		Date:          travelDate,
		DepartureTime: from.DepartureTime,
		ArrivalTime:   to.ArrivalTime,
	}
	if available {
		price := utils.SeatPrice(seat.BasePrice, seat.SeatType, utils.DistanceBetween(from.DistanceKm, to.DistanceKm))
		out.Price = &price
	}
	return out, nil
}
