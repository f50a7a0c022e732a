package flatten

import (
	"testing"
	"time"
)

func TestAge(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		dob  *time.Time
		want *int
	}{
		{"nil date of birth", nil, nil},
		{"zero date of birth", &time.Time{}, nil},
		{"birthday already passed", datePtr(2020, 3, 1), intPtr(6)},
		{"birthday today", datePtr(2020, 6, 15), intPtr(6)},
		{"birthday not yet reached", datePtr(2020, 9, 1), intPtr(5)},
		{"born this year", datePtr(2026, 1, 10), intPtr(0)},
	}
	for _, tc := range cases {
		got := Age(tc.dob, now)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("%s: got %d, want nil", tc.name, *got)
		case tc.want != nil && got == nil:
			t.Errorf("%s: got nil, want %d", tc.name, *tc.want)
		case tc.want != nil && got != nil && *got != *tc.want:
			t.Errorf("%s: got %d, want %d", tc.name, *got, *tc.want)
		}
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func intPtr(i int) *int { return &i }
