package services

import "time"

// ConfirmationScorer is what the booking service depends on: a bounded
// probability for a booking given lead time and party size.
type ConfirmationScorer interface {
	Score(daysBeforeJourney, partySize int) float64
}

// PredictionRequest carries the full feature set for the prediction
// endpoint. Bookings only populate lead time and party size.
type PredictionRequest struct {
	DaysBeforeJourney int    `json:"days_before_journey"`
	SeatsRequested    int    `json:"seats_requested"`
	OccupancyPercent  int    `json:"current_occupancy_percent"`
	SeatType          string `json:"seat_type"`
	RouteType         string `json:"route_type"`
	BookingHour       int    `json:"booking_hour"`
	IsHolidaySeason   bool   `json:"is_holiday_season"`
}

// PredictionResult is the scored outcome with per-factor adjustments.
type PredictionResult struct {
	ConfirmationProbability float64           `json:"confirmation_probability"`
	CancellationRisk        float64           `json:"cancellation_risk"`
	Recommendation          string            `json:"recommendation"`
	Factors                 map[string]string `json:"factors"`
}

// PredictionService is a deterministic rule-table scorer. It is built
// once at startup and injected wherever a probability is needed; there
// is no lazily-loaded shared state.
type PredictionService struct{}

const (
	baseProbability = 80.0
	minProbability  = 50.0
	maxProbability  = 95.0
)

// Predict applies the rule table and clamps the result to
// [minProbability, maxProbability].
func (PredictionService) Predict(req PredictionRequest) PredictionResult {
	probability := baseProbability
	factors := map[string]string{
		"lead_time":       "0%",
		"occupancy":       "0%",
		"seat_preference": "0%",
		"holiday_season":  "0%",
		"route_profile":   "0%",
		"booking_time":    "0%",
		"party_size":      "0%",
	}

	adjust := func(key string, delta float64, label string) {
		probability += delta
		factors[key] = label
	}

	switch {
	case req.DaysBeforeJourney <= 0:
		adjust("lead_time", -10, "-10%")
	case req.DaysBeforeJourney >= 14:
		adjust("lead_time", 8, "+8%")
	case req.DaysBeforeJourney >= 7:
		adjust("lead_time", 6, "+6%")
	case req.DaysBeforeJourney >= 3:
		adjust("lead_time", 5, "+5%")
	case req.DaysBeforeJourney == 1:
		adjust("lead_time", -5, "-5%")
	}

	switch {
	case req.OccupancyPercent >= 80:
		adjust("occupancy", -15, "-15%")
	case req.OccupancyPercent >= 60:
		adjust("occupancy", -5, "-5%")
	case req.OccupancyPercent < 40:
		adjust("occupancy", 5, "+5%")
	}

	switch req.SeatType {
	case "lower":
		adjust("seat_preference", 5, "+5%")
	case "upper":
		adjust("seat_preference", 3, "+3%")
	}

	if req.IsHolidaySeason {
		adjust("holiday_season", -10, "-10%")
	}

	if req.RouteType == "full" {
		adjust("route_profile", 2, "+2%")
	}

	if req.BookingHour >= 21 || req.BookingHour <= 5 {
		adjust("booking_time", 2, "+2%")
	}

	if req.SeatsRequested > 2 {
		adjust("party_size", -5, "-5%")
	} else {
		adjust("party_size", 1, "+1%")
	}

	if probability < minProbability {
		probability = minProbability
	}
	if probability > maxProbability {
		probability = maxProbability
	}

	// Cancellation risk shadows the probability within an 8-25% band.
	risk := (100 - probability) * 0.85
	if risk < 8 {
		risk = 8
	}
	if risk > 25 {
		risk = 25
	}

	var recommendation string
	switch {
	case probability >= 85:
		recommendation = "HIGH_CHANCE"
	case probability >= 70:
		recommendation = "GOOD_CHANCE"
	case probability >= 60:
		recommendation = "REVIEW_SUGGESTED"
	default:
		recommendation = "MONITOR_CLOSELY"
	}

	return PredictionResult{
		ConfirmationProbability: probability,
		CancellationRisk:        risk,
		Recommendation:          recommendation,
		Factors:                 factors,
	}
}

// Score is the narrow contract bookings use: lead time and party size
// with neutral defaults for everything else.
func (s PredictionService) Score(daysBeforeJourney, partySize int) float64 {
	return s.Predict(PredictionRequest{
		DaysBeforeJourney: daysBeforeJourney,
		SeatsRequested:    partySize,
		OccupancyPercent:  50,
		SeatType:          "lower",
		RouteType:         "full",
		BookingHour:       time.Now().Hour(),
	}).ConfirmationProbability
}
