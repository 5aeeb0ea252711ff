package availability

import (
	"errors"
	"time"

	"hotelpremier/internal/domain/reservation"
	"hotelpremier/internal/domain/room"
	"hotelpremier/internal/domain/shared/daterange"
	"hotelpremier/internal/domain/stay"
)

var (
	ErrBadWindow = errors.New("availability: both dates required and 'to' must not precede 'from'")
)

// Grid is the day-by-room availability matrix for a date window. States
// are always derived from stay and reservation intervals; the room's
// cached status field plays no part.
type Grid struct {
	RoomNames []string
	RoomIDs   map[string]room.RoomID
	Rows      []Row
}

type Row struct {
	Date   time.Time
	States map[string]room.Status
}

// ValidateWindow checks the grid preconditions. It must be called before
// any data is fetched; from == to is a valid one-day window.
func ValidateWindow(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return ErrBadWindow
	}
	if daterange.Day(to).Before(daterange.Day(from)) {
		return ErrBadWindow
	}
	return nil
}

// BuildGrid materializes one row per calendar date in [from, to] and one
// cell per room, derived by fixed precedence: an active stay marks the
// day OCCUPIED and masks any reservation; otherwise a covering
// reservation marks it RESERVED; otherwise the day is FREE.
func BuildGrid(rooms []*room.Room, reservations []*reservation.Reservation, stays []*stay.Stay, from, to time.Time) (Grid, error) {
	if err := ValidateWindow(from, to); err != nil {
		return Grid{}, err
	}
	from = daterange.Day(from)
	to = daterange.Day(to)

	sorted := SortRooms(rooms)
	names := make([]string, 0, len(sorted))
	ids := make(map[string]room.RoomID, len(sorted))
	for _, r := range sorted {
		names = append(names, r.Name)
		ids[r.Name] = r.ID
	}

	grid := Grid{RoomNames: names, RoomIDs: ids}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		states := make(map[string]room.Status, len(sorted))
		for _, r := range sorted {
			states[r.Name] = stateFor(r.ID, d, reservations, stays)
		}
		grid.Rows = append(grid.Rows, Row{Date: d, States: states})
	}
	return grid, nil
}

func stateFor(id room.RoomID, d time.Time, reservations []*reservation.Reservation, stays []*stay.Stay) room.Status {
	for _, s := range stays {
		if s.RoomID == id && s.CoversDay(d) {
			return room.StatusOccupied
		}
	}
	for _, r := range reservations {
		if r.IncludesRoom(id) && r.Range.CoversDay(d) {
			return room.StatusReserved
		}
	}
	return room.StatusFree
}
