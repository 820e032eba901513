package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = referenceAlphabet[rand.Intn(len(referenceAlphabet))]
	}
	return string(b)
}

// NewBookingReference builds a human-readable reference like
// BUS-AHM-MUM-20260123-X7Y9: service tag, 3-letter origin and destination
// codes, creation date, and a random 4-char suffix for uniqueness.
func NewBookingReference(fromStation, toStation string, now time.Time) string {
	return fmt.Sprintf("BUS-%s-%s-%s-%s",
		StationCode(fromStation),
		StationCode(toStation),
		FormatDateCompact(now),
		randomCode(4),
	)
}

// NewPNR returns a 9-character alphanumeric passenger name record,
// a short secondary code that is easier to share verbally than the
// full booking reference.
func NewPNR() string {
	return randomCode(9)
}
