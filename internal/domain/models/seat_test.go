package models

import "testing"

func TestSegmentHoldOverlaps(t *testing.T) {
	held := SegmentHold{FromSeq: 1, ToSeq: 4}

	cases := []struct {
		from, to int
		want     bool
	}{
		{2, 5, true},  // partial overlap
		{1, 4, true},  // identical
		{2, 3, true},  // contained
		{4, 5, false}, // touches the end, half-open
		{0, 1, false}, // touches the start
		{5, 6, false}, // disjoint
	}
	for _, tc := range cases {
		if got := held.Overlaps(tc.from, tc.to); got != tc.want {
			t.Fatalf("[1,4) overlaps [%d,%d) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
