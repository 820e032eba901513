package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "busreserve/internal/config"
	intdb "busreserve/internal/db"
	"busreserve/internal/domain"
	"busreserve/internal/domain/models"
	"busreserve/internal/repositories"
	"busreserve/internal/utils"
	"busreserve/internal/validations"
)

// BookingService is the transactional use-case layer: it turns a
// booking request into a persisted reservation or a fully-rolled-back
// failure, and a cancellation into a refund plus ledger release.
type BookingService struct {
	DB        *sql.DB
	Routes    RouteService
	Ledger    LedgerService
	Scorer    ConfirmationScorer
	Bookings  repositories.BookingRepo
	Seats     repositories.SeatRepo
	Holds     repositories.HoldRepo
	Meals     repositories.MealRepo
	MaxSeats  int
	NowFunc   func() time.Time
	RequestID string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}
	return time.Now()
}

func (s BookingService) maxSeats() int {
	if s.MaxSeats > 0 {
		return s.MaxSeats
	}
	return 5
}

func (s BookingService) scorer() ConfirmationScorer {
	if s.Scorer != nil {
		return s.Scorer
	}
	return PredictionService{}
}

// JourneyDetails echoes the resolved route back to the caller.
type JourneyDetails struct {
	FromStation   string `json:"from_station"`
	ToStation     string `json:"to_station"`
	Date          string `json:"date"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
}

// PassengerInfo echoes the passenger contact block.
type PassengerInfo struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

// BookingDetail is the enriched booking view returned by create, get,
// and meal updates.
type BookingDetail struct {
	BookingID               string            `json:"booking_id"`
	PNR                     string            `json:"pnr"`
	Status                  string            `json:"status"`
	TotalAmount             int64             `json:"total_amount"`
	RefundAmount            int64             `json:"refund_amount,omitempty"`
	ConfirmationProbability float64           `json:"confirmation_probability"`
	Seats                   []string          `json:"seats"`
	Meals                   []models.MealLine `json:"meals"`
	Journey                 JourneyDetails    `json:"journey_details"`
	Passenger               PassengerInfo     `json:"passenger_details"`
	CreatedAt               time.Time         `json:"created_at"`
}

// CancellationResult reports the refund applied on cancellation.
type CancellationResult struct {
	BookingReference string `json:"booking_reference"`
	RefundAmount     int64  `json:"refund_amount"`
	RefundPercentage int    `json:"refund_percentage"`
	RefundStatus     string `json:"refund_status"`
}

// CreateBooking validates, prices, scores, and persists a booking. The
// booking row and every seat hold commit in one transaction; a hold
// conflict discovered at commit time (a race with a concurrent booking)
// rolls the whole request back.
func (s BookingService) CreateBooking(req validations.CreateBookingRequest) (BookingDetail, error) {
	now := s.now()

	travelDate, err := validations.ValidateCreateBooking(req, s.maxSeats(), now)
	if err != nil {
		return BookingDetail{}, err
	}

	from, err := s.Routes.Resolve(req.FromStation)
	if err != nil {
		return BookingDetail{}, err
	}
	to, err := s.Routes.Resolve(req.ToStation)
	if err != nil {
		return BookingDetail{}, err
	}
	fromSeq, toSeq, err := s.Routes.ToSegment(from, to)
	if err != nil {
		return BookingDetail{}, err
	}

	dateStr := utils.FormatDate(travelDate)
	seatNumbers := utils.NormalizeSeatNumbers(req.Seats)

	// Pre-flight: all seats of a multi-seat booking must be free at
	// once; the first failure aborts the whole request. The same check
	// repeats under lock inside the transaction below.
	distance := utils.DistanceBetween(from.DistanceKm, to.DistanceKm)
	var seatTotal int64
	for _, number := range seatNumbers {
		if err := s.Ledger.CheckSeat(nil, number, fromSeq, toSeq, dateStr); err != nil {
			return BookingDetail{}, err
		}
		seat, err := s.Seats.GetByNumber(nil, number)
		if err != nil {
			return BookingDetail{}, domain.InternalError{Err: err}
		}
		seatTotal += utils.SeatPrice(seat.BasePrice, seat.SeatType, distance)
	}

	mealLines, mealTotal, err := s.resolveMealLines(req.Meals)
	if err != nil {
		return BookingDetail{}, err
	}

	probability := s.scorer().Score(utils.DaysUntil(travelDate, now), len(seatNumbers))

	booking := models.Booking{
		Reference:               utils.NewBookingReference(from.Name, to.Name, now),
		PNR:                     utils.NewPNR(),
		PassengerName:           req.Passenger.Name,
		Email:                   req.Passenger.Email,
		Phone:                   req.Passenger.Contact,
		FromStationID:           from.ID,
		ToStationID:             to.ID,
		TravelDate:              dateStr,
		Status:                  models.BookingConfirmed,
		TotalAmount:             seatTotal + mealTotal,
		ConfirmationProbability: probability,
		CreatedAt:               now,
	}

	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		id, err := s.Bookings.Insert(tx, booking)
		if err != nil {
			return domain.InternalError{Err: err}
		}
		booking.ID = id

		for _, number := range seatNumbers {
			if _, err := s.Ledger.Hold(tx, number, fromSeq, toSeq, dateStr, id); err != nil {
				return err
			}
		}
		if err := s.Bookings.InsertMealLines(tx, id, mealLines); err != nil {
			return domain.InternalError{Err: err}
		}
		return nil
	})
	if err != nil {
		return BookingDetail{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("reference=%s seats=%d total=%d", booking.Reference, len(seatNumbers), booking.TotalAmount))

	return BookingDetail{
		BookingID:               booking.Reference,
		PNR:                     booking.PNR,
		Status:                  booking.Status,
		TotalAmount:             booking.TotalAmount,
		ConfirmationProbability: booking.ConfirmationProbability,
		Seats:                   seatNumbers,
		Meals:                   mealLines,
		Journey: JourneyDetails{
			FromStation:   from.Name,
			ToStation:     to.Name,
			Date:          dateStr,
			DepartureTime: from.DepartureTime,
			ArrivalTime:   to.ArrivalTime,
		},
		Passenger: PassengerInfo{
			Name:    req.Passenger.Name,
			Contact: req.Passenger.Contact,
			Email:   req.Passenger.Email,
		},
		CreatedAt: booking.CreatedAt,
	}, nil
}

// resolveMealLines prices the meal selections. Unknown meal ids are
// skipped silently rather than failing the booking.
func (s BookingService) resolveMealLines(selections []models.MealLine) ([]models.MealLine, int64, error) {
	lines := []models.MealLine{}
	var total int64
	for _, sel := range selections {
		meal, err := s.Meals.GetByID(nil, sel.MealID)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		qty := sel.Quantity
		if qty <= 0 {
			qty = 1
		}
		lines = append(lines, models.MealLine{MealID: meal.ID, Quantity: qty})
		total += meal.Price * int64(qty)
	}
	return lines, total, nil
}

// GetByReference returns the enriched booking view.
func (s BookingService) GetByReference(reference string) (BookingDetail, error) {
	booking, err := s.Bookings.GetByReference(nil, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return BookingDetail{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return BookingDetail{}, domain.InternalError{Err: err}
	}
	return s.buildDetail(booking)
}

func (s BookingService) buildDetail(booking models.Booking) (BookingDetail, error) {
	from, err := s.Routes.GetByID(booking.FromStationID)
	if err != nil {
		return BookingDetail{}, err
	}
	to, err := s.Routes.GetByID(booking.ToStationID)
	if err != nil {
		return BookingDetail{}, err
	}
	seats, err := s.Holds.SeatNumbersByBooking(nil, booking.ID)
	if err != nil {
		return BookingDetail{}, domain.InternalError{Err: err}
	}
	meals, err := s.Bookings.ListMealLines(nil, booking.ID)
	if err != nil {
		return BookingDetail{}, domain.InternalError{Err: err}
	}

	return BookingDetail{
		BookingID:               booking.Reference,
		PNR:                     booking.PNR,
		Status:                  booking.Status,
		TotalAmount:             booking.TotalAmount,
		RefundAmount:            booking.RefundAmount,
		ConfirmationProbability: booking.ConfirmationProbability,
		Seats:                   seats,
		Meals:                   meals,
		Journey: JourneyDetails{
			FromStation:   from.Name,
			ToStation:     to.Name,
			Date:          booking.TravelDate,
			DepartureTime: from.DepartureTime,
			ArrivalTime:   to.ArrivalTime,
		},
		Passenger: PassengerInfo{
			Name:    booking.PassengerName,
			Contact: booking.Phone,
			Email:   booking.Email,
		},
		CreatedAt: booking.CreatedAt,
	}, nil
}

// HistoryByEmail lists a passenger's bookings, newest first.
func (s BookingService) HistoryByEmail(email string) ([]models.Booking, error) {
	if utils.TrimOrEmpty(email) == "" {
		return nil, domain.ValidationError{Field: "email", Msg: "required"}
	}
	bookings, err := s.Bookings.ListByEmail(nil, email)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return bookings, nil
}

// CancelBooking applies the refund policy and releases every hold the
// booking owns, atomically. Cancelling after the journey started is
// rejected without mutation; cancelling twice is rejected on the second
// call, so a refund can never be issued twice.
func (s BookingService) CancelBooking(reference string) (CancellationResult, error) {
	booking, err := s.Bookings.GetByReference(nil, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return CancellationResult{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return CancellationResult{}, domain.InternalError{Err: err}
	}

	if booking.Status == models.BookingCancelled {
		return CancellationResult{}, domain.ValidationError{Msg: "booking is already cancelled"}
	}

	journey, err := utils.ParseDate(booking.TravelDate)
	if err != nil {
		return CancellationResult{}, domain.InternalError{Err: err}
	}

	now := s.now()
	hoursBefore := journey.Sub(now).Hours()
	if hoursBefore < 0 {
		return CancellationResult{}, domain.CancellationNotAllowedError{Msg: "journey has already started"}
	}

	refund := utils.ComputeRefund(booking.TotalAmount, hoursBefore)

	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		if err := s.Bookings.MarkCancelled(tx, booking.ID, refund.Amount, now); err != nil {
			return domain.InternalError{Err: err}
		}
		return s.Ledger.Release(tx, booking.ID)
	})
	if err != nil {
		return CancellationResult{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "cancel",
		fmt.Sprintf("reference=%s refund=%d status=%s", booking.Reference, refund.Amount, refund.Status))

	return CancellationResult{
		BookingReference: booking.Reference,
		RefundAmount:     refund.Amount,
		RefundPercentage: refund.Percentage,
		RefundStatus:     refund.Status,
	}, nil
}

// UpdateMeals replaces the booking's full meal line set and adjusts the
// total by the subtotal difference. Each new selection has quantity 1.
func (s BookingService) UpdateMeals(reference string, mealIDs []int64) (BookingDetail, error) {
	booking, err := s.Bookings.GetByReference(nil, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return BookingDetail{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return BookingDetail{}, domain.InternalError{Err: err}
	}
	if booking.Status == models.BookingCancelled {
		return BookingDetail{}, domain.ValidationError{Msg: "cannot update a cancelled booking"}
	}

	oldLines, err := s.Bookings.ListMealLines(nil, booking.ID)
	if err != nil {
		return BookingDetail{}, domain.InternalError{Err: err}
	}
	_, oldSubtotal, err := s.resolveMealLines(oldLines)
	if err != nil {
		return BookingDetail{}, err
	}

	selections := make([]models.MealLine, 0, len(mealIDs))
	for _, id := range mealIDs {
		selections = append(selections, models.MealLine{MealID: id, Quantity: 1})
	}
	newLines, newSubtotal, err := s.resolveMealLines(selections)
	if err != nil {
		return BookingDetail{}, err
	}

	newTotal := booking.TotalAmount - oldSubtotal + newSubtotal

	err = intdb.WithTx(s.db(), func(tx *sql.Tx) error {
		if err := s.Bookings.DeleteMealLines(tx, booking.ID); err != nil {
			return domain.InternalError{Err: err}
		}
		if err := s.Bookings.InsertMealLines(tx, booking.ID, newLines); err != nil {
			return domain.InternalError{Err: err}
		}
		if err := s.Bookings.UpdateTotal(tx, booking.ID, newTotal); err != nil {
			return domain.InternalError{Err: err}
		}
		return nil
	})
	if err != nil {
		return BookingDetail{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "update_meals",
		fmt.Sprintf("reference=%s meals=%d total=%d", booking.Reference, len(newLines), newTotal))

	booking.TotalAmount = newTotal
	return s.buildDetail(booking)
}
