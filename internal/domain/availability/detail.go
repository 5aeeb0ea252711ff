package availability

import (
	"errors"
	"time"

	"hotelpremier/internal/domain/guest"
	"hotelpremier/internal/domain/reservation"
	"hotelpremier/internal/domain/room"
)

var ErrNoActiveReservation = errors.New("availability: no active reservation for that room and date")

const (
	placeholderName  = "unknown"
	placeholderPhone = "no data"
)

// ReservationDetail is the guest identity bound to a reservation on a
// given day, for front-desk display.
type ReservationDetail struct {
	Surname string
	Name    string
	Phone   string
}

// DetailFor resolves the guest identity of the reservation covering the
// given day. covering holds the reservations already filtered to the
// room and day; when the non-overlap invariant was bypassed and several
// match, the first by stored order wins. registered is the resolved
// guest record for the winning reservation, nil when the reservation
// carries only denormalized plain-text identity; missing plain-text
// fields get placeholders rather than failing.
func DetailFor(covering []*reservation.Reservation, registered *guest.Guest) (ReservationDetail, error) {
	if len(covering) == 0 {
		return ReservationDetail{}, ErrNoActiveReservation
	}
	r := covering[0]
	if r.GuestID != "" && registered != nil {
		return ReservationDetail{
			Surname: registered.Surname,
			Name:    registered.Name,
			Phone:   registered.Phone,
		}, nil
	}
	detail := ReservationDetail{
		Surname: placeholderName,
		Name:    placeholderName,
		Phone:   placeholderPhone,
	}
	if r.GuestSurname != "" {
		detail.Surname = r.GuestSurname
	}
	if r.GuestName != "" {
		detail.Name = r.GuestName
	}
	if r.GuestPhone != "" {
		detail.Phone = r.GuestPhone
	}
	return detail, nil
}

// CoveringRoomOn filters reservations down to those that include the
// room and cover the given calendar date, preserving stored order.
func CoveringRoomOn(reservations []*reservation.Reservation, id room.RoomID, day time.Time) []*reservation.Reservation {
	var out []*reservation.Reservation
	for _, r := range reservations {
		if r.IncludesRoom(id) && r.Range.CoversDay(day) {
			out = append(out, r)
		}
	}
	return out
}
