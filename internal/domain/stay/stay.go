package stay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelpremier/internal/domain/guest"
	"hotelpremier/internal/domain/reservation"
	"hotelpremier/internal/domain/room"
	"hotelpremier/internal/domain/shared/daterange"
	"hotelpremier/internal/domain/shared/events"
)

var (
	ErrNotFound            = errors.New("stay: not found")
	ErrResponsibleRequired = errors.New("stay: responsible guest required")
	ErrResponsibleUnderage = errors.New("stay: responsible must be of legal age")
	ErrAlreadyCheckedOut   = errors.New("stay: already checked out")
)

// CapacityError rejects a check-in whose occupant count exceeds the room
// category's maximum.
type CapacityError struct {
	Max int
}

func (e CapacityError) Error() string {
	return fmt.Sprintf("stay: capacity exceeded, maximum is %d", e.Max)
}

const legalAge = 18

// checkInHour is the hour of day stamped on the check-in timestamp when
// only a calendar date is supplied, matching front-desk convention.
const checkInHour = 12

type StayID string

// Stay is a concrete occupancy of one room by a responsible guest and
// optional companions, from check-in until (eventual) check-out.
type Stay struct {
	ID               StayID
	RoomID           room.RoomID
	ResponsibleID    guest.GuestID
	CompanionIDs     []guest.GuestID
	ReservationID    reservation.ReservationID
	CheckInAt        time.Time
	ActualCheckOutAt *time.Time
	ExpectedCheckOut *time.Time
	Version          int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id StayID) (*Stay, error)
	// InWindow returns stays whose occupied interval touches the datetime
	// window [from, to]: checkInAt <= to AND (no actual checkout or
	// actualCheckOutAt >= from). Open-ended stays always qualify once begun.
	InWindow(ctx context.Context, from, to time.Time) ([]*Stay, error)
	Save(ctx context.Context, stay *Stay) error
}

type CreateParams struct {
	ID               StayID
	RoomID           room.RoomID
	ResponsibleID    guest.GuestID
	CompanionIDs     []guest.GuestID
	ReservationID    reservation.ReservationID
	CheckInDate      time.Time
	ExpectedCheckOut *time.Time
	Now              time.Time
}

func New(params CreateParams) (*Stay, error) {
	if params.ResponsibleID == "" {
		return nil, ErrResponsibleRequired
	}
	day := daterange.Day(params.CheckInDate)
	s := &Stay{
		ID:            params.ID,
		RoomID:        params.RoomID,
		ResponsibleID: params.ResponsibleID,
		CompanionIDs:  append([]guest.GuestID(nil), params.CompanionIDs...),
		ReservationID: params.ReservationID,
		CheckInAt:     day.Add(checkInHour * time.Hour),
	}
	if params.ExpectedCheckOut != nil {
		expected := daterange.Day(*params.ExpectedCheckOut)
		s.ExpectedCheckOut = &expected
	}
	s.Record(CheckInCompleted{
		StayID:        s.ID,
		RoomID:        s.RoomID,
		ResponsibleID: s.ResponsibleID,
		Companions:    len(s.CompanionIDs),
		At:            params.Now.UTC(),
	})
	return s, nil
}

// EffectiveEnd returns the last occupied calendar date and whether the
// stay is bounded at all. The precedence is: actual checkout when set,
// expected checkout when set, otherwise open-ended.
func (s *Stay) EffectiveEnd() (time.Time, bool) {
	if s.ActualCheckOutAt != nil {
		return daterange.Day(*s.ActualCheckOutAt), true
	}
	if s.ExpectedCheckOut != nil {
		return daterange.Day(*s.ExpectedCheckOut), true
	}
	return time.Time{}, false
}

// CoversDay reports whether the stay occupies its room on calendar date d.
func (s *Stay) CoversDay(d time.Time) bool {
	d = daterange.Day(d)
	if d.Before(daterange.Day(s.CheckInAt)) {
		return false
	}
	end, bounded := s.EffectiveEnd()
	if !bounded {
		return true
	}
	return !d.After(end)
}

// CheckOut closes the stay. The actual checkout timestamp is set exactly
// once.
func (s *Stay) CheckOut(now time.Time) error {
	if s.ActualCheckOutAt != nil {
		return ErrAlreadyCheckedOut
	}
	at := now.UTC()
	s.ActualCheckOutAt = &at
	s.Record(CheckOutCompleted{StayID: s.ID, RoomID: s.RoomID, At: at})
	return nil
}

// ValidateCheckIn applies the check-in business rules in order, first
// failure wins: the responsible guest must be of legal age as of today,
// and 1+len(companions) must not exceed the room category's capacity.
// Pure; persisting the stay and flipping the room status is the caller's
// job.
func ValidateCheckIn(r *room.Room, responsible *guest.Guest, companions []*guest.Guest, today time.Time) error {
	if responsible == nil {
		return ErrResponsibleRequired
	}
	if responsible.Age(today) < legalAge {
		return ErrResponsibleUnderage
	}
	occupants := 1 + len(companions)
	if cap := room.MaxOccupants(r.Category); occupants > cap {
		return CapacityError{Max: cap}
	}
	return nil
}
