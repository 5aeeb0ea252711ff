package guest

import (
	"testing"
	"time"
)

func TestAgeWholeYears(t *testing.T) {
	today := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	cases := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday today", time.Date(2008, 9, 1, 0, 0, 0, 0, time.UTC), 18},
		{"birthday tomorrow", time.Date(2008, 9, 2, 0, 0, 0, 0, time.UTC), 17},
		{"birthday yesterday", time.Date(2008, 8, 31, 0, 0, 0, 0, time.UTC), 18},
		{"earlier month", time.Date(1990, 2, 10, 0, 0, 0, 0, time.UTC), 36},
		{"later month", time.Date(1990, 11, 10, 0, 0, 0, 0, time.UTC), 35},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := &Guest{ID: "g1", BirthDate: tc.birth}
			if got := g.Age(today); got != tc.want {
				t.Fatalf("Age = %d, want %d", got, tc.want)
			}
		})
	}
}
