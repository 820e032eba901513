package models

// Seat is one physical berth on the bus. Operational is a maintenance
// toggle, not a booking status; per-date booking state lives in
// SegmentHold rows.
type Seat struct {
	ID          int64  `json:"id"`
	SeatNumber  string `json:"seat_number"`
	SeatType    string `json:"seat_type"` // lower / upper
	BasePrice   int64  `json:"base_price"`
	Operational bool   `json:"operational"`
}

// SegmentHold is an exclusive claim on one seat for the half-open
// route segment [FromSeq, ToSeq) on one travel date, owned by the
// booking that created it. For a fixed (seat, date) no two holds may
// overlap; touching endpoints do not overlap, so back-to-back legs can
// share a seat.
type SegmentHold struct {
	ID         int64
	SeatID     int64
	FromSeq    int
	ToSeq      int
	TravelDate string // YYYY-MM-DD
	BookingID  int64
}

// Overlaps reports whether the hold intersects [fromSeq, toSeq) under
// half-open semantics.
func (h SegmentHold) Overlaps(fromSeq, toSeq int) bool {
	return h.FromSeq < toSeq && h.ToSeq > fromSeq
}
