package utils

// Refund status values returned to the caller on cancellation.
const (
	RefundFull    = "FULL_REFUND"
	RefundPartial = "PARTIAL_REFUND"
	RefundNone    = "NO_REFUND"
)

// Refund carries the outcome of the cancellation policy.
type Refund struct {
	Amount     int64  `json:"refund_amount"`
	Percentage int    `json:"refund_percentage"`
	Status     string `json:"refund_status"`
}

// ComputeRefund applies the time-based cancellation policy:
// 100% at 24h or more before the journey, 50% between 12h and 24h,
// nothing under 12h. Negative hours (journey already started) still
// compute to NO_REFUND; rejecting such cancellations outright is the
// booking service's call, not this function's.
func ComputeRefund(totalAmount int64, hoursBeforeJourney float64) Refund {
	switch {
	case hoursBeforeJourney >= 24:
		return Refund{Amount: totalAmount, Percentage: 100, Status: RefundFull}
	case hoursBeforeJourney >= 12:
		return Refund{Amount: totalAmount / 2, Percentage: 50, Status: RefundPartial}
	default:
		return Refund{Amount: 0, Percentage: 0, Status: RefundNone}
	}
}
