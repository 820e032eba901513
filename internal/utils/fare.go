package utils

import "strings"

// Seat classes on the sleeper bus.
const (
	SeatTypeLower = "lower"
	SeatTypeUpper = "upper"
)

// DistanceMultiplier scales fares by journey length:
// 0-100km 1.0x, 101-300km 1.2x, above 300km 1.5x.
func DistanceMultiplier(distanceKm int) float64 {
	switch {
	case distanceKm <= 100:
		return 1.0
	case distanceKm <= 300:
		return 1.2
	default:
		return 1.5
	}
}

// SeatTypeMultiplier prices lower berths at a premium (1.3x), upper at 1.0x.
func SeatTypeMultiplier(seatType string) float64 {
	if strings.EqualFold(strings.TrimSpace(seatType), SeatTypeLower) {
		return 1.3
	}
	return 1.0
}

// DistanceBetween returns the absolute km distance between two route points.
func DistanceBetween(fromKm, toKm int) int {
	d := toKm - fromKm
	if d < 0 {
		d = -d
	}
	return d
}

// SeatPrice computes the fare for one seat over one segment:
// floor(base_price * distance multiplier * seat type multiplier).
func SeatPrice(basePrice int64, seatType string, distanceKm int) int64 {
	return int64(float64(basePrice) * DistanceMultiplier(distanceKm) * SeatTypeMultiplier(seatType))
}
