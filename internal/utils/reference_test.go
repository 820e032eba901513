package utils

import (
	"regexp"
	"testing"
	"time"
)

func TestNewBookingReferenceFormat(t *testing.T) {
	now := time.Date(2026, 1, 23, 15, 4, 5, 0, time.Local)
	ref := NewBookingReference("Ahmedabad", "Mumbai", now)

	pattern := regexp.MustCompile(`^BUS-AHM-MUM-20260123-[A-Z0-9]{4}$`)
	if !pattern.MatchString(ref) {
		t.Fatalf("reference %q does not match expected format", ref)
	}
}

func TestNewPNRLengthAndAlphabet(t *testing.T) {
	pnr := NewPNR()
	if len(pnr) != 9 {
		t.Fatalf("PNR length = %d, want 9", len(pnr))
	}
	if !regexp.MustCompile(`^[A-Z0-9]{9}$`).MatchString(pnr) {
		t.Fatalf("PNR %q contains characters outside the uppercase alphanumeric set", pnr)
	}
}

func TestNormalizeSeatNumbersDedupes(t *testing.T) {
	got := NormalizeSeatNumbers([]string{" s01 ", "S01", "s21", ""})
	if len(got) != 2 || got[0] != "S01" || got[1] != "S21" {
		t.Fatalf("NormalizeSeatNumbers = %v, want [S01 S21]", got)
	}
}

func TestDaysUntilTruncatesToMidnight(t *testing.T) {
	now := time.Date(2026, 1, 22, 23, 30, 0, 0, time.Local)
	travel := time.Date(2026, 1, 23, 0, 0, 0, 0, time.Local)
	if got := DaysUntil(travel, now); got != 1 {
		t.Fatalf("booking late tonight for tomorrow should count 1 day, got %d", got)
	}
}
