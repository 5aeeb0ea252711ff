package reservation

import (
	"context"
	"errors"
	"time"

	"hotelpremier/internal/domain/guest"
	"hotelpremier/internal/domain/room"
	"hotelpremier/internal/domain/shared/daterange"
	"hotelpremier/internal/domain/shared/events"
)

var (
	ErrNotFound     = errors.New("reservation: not found")
	ErrNoRooms      = errors.New("reservation: at least one room required")
	ErrNoGuest      = errors.New("reservation: guest identity required")
	ErrRoomConflict = errors.New("reservation: room already reserved for an overlapping range")
)

type ReservationID string

// Reservation commits one or more rooms to a guest for an inclusive date
// range. Guest identity comes from either a registered guest reference or
// the denormalized name fields; the reference wins when both are present.
type Reservation struct {
	ID           ReservationID
	GuestID      guest.GuestID
	GuestName    string
	GuestSurname string
	GuestPhone   string
	RoomIDs      []room.RoomID
	Range        daterange.DateRange
	CreatedAt    time.Time
	Version      int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	// InWindow returns reservations whose inclusive range touches
	// [from, to]: ingress <= to AND egress >= from.
	InWindow(ctx context.Context, from, to time.Time) ([]*Reservation, error)
	// ForRoom returns every reservation that includes the given room.
	ForRoom(ctx context.Context, id room.RoomID) ([]*Reservation, error)
	Save(ctx context.Context, reservation *Reservation) error
}

type CreateParams struct {
	ID           ReservationID
	GuestID      guest.GuestID
	GuestName    string
	GuestSurname string
	GuestPhone   string
	RoomIDs      []room.RoomID
	Range        daterange.DateRange
	Now          time.Time
}

func New(params CreateParams) (*Reservation, error) {
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if len(params.RoomIDs) == 0 {
		return nil, ErrNoRooms
	}
	if params.GuestID == "" && params.GuestName == "" && params.GuestSurname == "" {
		return nil, ErrNoGuest
	}
	r := &Reservation{
		ID:           params.ID,
		GuestID:      params.GuestID,
		GuestName:    params.GuestName,
		GuestSurname: params.GuestSurname,
		GuestPhone:   params.GuestPhone,
		RoomIDs:      append([]room.RoomID(nil), params.RoomIDs...),
		Range:        params.Range,
		CreatedAt:    params.Now.UTC(),
	}
	r.Record(Registered{
		ReservationID: r.ID,
		RoomIDs:       r.RoomIDs,
		Ingress:       r.Range.Ingress,
		Egress:        r.Range.Egress,
		At:            r.CreatedAt,
	})
	return r, nil
}

// IncludesRoom reports whether the reservation commits the given room.
func (r *Reservation) IncludesRoom(id room.RoomID) bool {
	for _, rid := range r.RoomIDs {
		if rid == id {
			return true
		}
	}
	return false
}

// HasConflict scans existing reservations for one that blocks committing
// roomID over [ingress, egress]. The caller guarantees egress > ingress.
// A false result keeps the non-overlap invariant only when the caller
// serializes this check with the subsequent insert.
func HasConflict(existing []*Reservation, roomID room.RoomID, ingress, egress time.Time) bool {
	candidate := daterange.DateRange{Ingress: daterange.Day(ingress), Egress: daterange.Day(egress)}
	for _, r := range existing {
		if !r.IncludesRoom(roomID) {
			continue
		}
		if r.Range.Overlaps(candidate) {
			return true
		}
	}
	return false
}
