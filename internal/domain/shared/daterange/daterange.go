package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: egress must be after ingress")
)

// DateRange is an inclusive range of calendar dates [Ingress, Egress].
// Conflict detection between two ranges uses strict comparison, so a range
// ending on the day another begins does not overlap it.
type DateRange struct {
	Ingress time.Time
	Egress  time.Time
}

func New(ingress, egress time.Time) (DateRange, error) {
	dr := DateRange{Ingress: Day(ingress), Egress: Day(egress)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.Ingress.IsZero() || dr.Egress.IsZero() {
		return ErrInvalidRange
	}
	if !dr.Egress.After(dr.Ingress) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps reports whether two ranges conflict. Touching endpoints
// (dr.Egress == other.Ingress) are not a conflict.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.Ingress.Before(other.Egress) && dr.Egress.After(other.Ingress)
}

// CoversDay reports whether calendar date d falls inside the range,
// endpoints included. This is the per-day occupancy test, distinct from
// the strict Overlaps predicate used for conflicts.
func (dr DateRange) CoversDay(d time.Time) bool {
	d = Day(d)
	return !d.Before(dr.Ingress) && !d.After(dr.Egress)
}

func (dr DateRange) Nights() int {
	return int(dr.Egress.Sub(dr.Ingress).Hours() / 24)
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
