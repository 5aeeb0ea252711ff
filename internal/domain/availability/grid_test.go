package availability

import (
	"errors"
	"testing"
	"time"

	"hotelpremier/internal/domain/guest"
	"hotelpremier/internal/domain/reservation"
	"hotelpremier/internal/domain/room"
	"hotelpremier/internal/domain/shared/daterange"
	"hotelpremier/internal/domain/stay"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func testRooms() []*room.Room {
	return []*room.Room{
		{ID: "3", Name: "IE2", Category: room.CategorySingleStandard},
		{ID: "1", Name: "DE1", Category: room.CategoryDoubleStandard},
		{ID: "2", Name: "IE1", Category: room.CategorySingleStandard},
	}
}

func TestValidateWindow(t *testing.T) {
	cases := []struct {
		name    string
		from    time.Time
		to      time.Time
		wantErr bool
	}{
		{"missing from", time.Time{}, date(2026, 8, 1), true},
		{"missing to", date(2026, 8, 1), time.Time{}, true},
		{"to before from", date(2026, 8, 2), date(2026, 8, 1), true},
		{"same day", date(2026, 8, 1), date(2026, 8, 1), false},
		{"ordered", date(2026, 8, 1), date(2026, 8, 5), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWindow(tc.from, tc.to)
			if tc.wantErr && !errors.Is(err, ErrBadWindow) {
				t.Fatalf("expected ErrBadWindow, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildGridRejectsBadWindowBeforeData(t *testing.T) {
	// nil snapshots stand in for "data was never touched": a rejected
	// window must not reach the state derivation at all.
	if _, err := BuildGrid(nil, nil, nil, date(2026, 8, 2), date(2026, 8, 1)); !errors.Is(err, ErrBadWindow) {
		t.Fatalf("expected ErrBadWindow, got %v", err)
	}
}

func TestBuildGridRoomOrdering(t *testing.T) {
	grid, err := BuildGrid(testRooms(), nil, nil, date(2026, 8, 1), date(2026, 8, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"DE1", "IE1", "IE2"}
	if len(grid.RoomNames) != len(want) {
		t.Fatalf("room names = %v, want %v", grid.RoomNames, want)
	}
	for i, name := range want {
		if grid.RoomNames[i] != name {
			t.Fatalf("room names = %v, want %v", grid.RoomNames, want)
		}
	}
	if grid.RoomIDs["DE1"] != "1" || grid.RoomIDs["IE1"] != "2" || grid.RoomIDs["IE2"] != "3" {
		t.Fatalf("room id map wrong: %v", grid.RoomIDs)
	}
}

func TestSortRoomsLexicalFallback(t *testing.T) {
	rooms := []*room.Room{
		{ID: "a", Name: "Suite"},
		{ID: "b", Name: "Anexo"},
		{ID: "c", Name: "DE2"},
		{ID: "d", Name: "DE10"},
	}
	sorted := SortRooms(rooms)
	got := []string{sorted[0].Name, sorted[1].Name, sorted[2].Name, sorted[3].Name}
	want := []string{"Anexo", "DE2", "DE10", "Suite"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted = %v, want %v", got, want)
		}
	}
}

func TestBuildGridSingleDayWindowYieldsOneRow(t *testing.T) {
	grid, err := BuildGrid(testRooms(), nil, nil, date(2026, 8, 1), date(2026, 8, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(grid.Rows))
	}
	for _, name := range grid.RoomNames {
		if grid.Rows[0].States[name] != room.StatusFree {
			t.Fatalf("expected FREE for %s, got %s", name, grid.Rows[0].States[name])
		}
	}
}

func TestBuildGridPrecedence(t *testing.T) {
	rooms := []*room.Room{{ID: "1", Name: "DE1", Category: room.CategoryDoubleStandard}}
	reservations := []*reservation.Reservation{{
		ID:      "r1",
		RoomIDs: []room.RoomID{"1"},
		Range:   daterange.DateRange{Ingress: date(2026, 8, 2), Egress: date(2026, 8, 6)},
	}}
	stays := []*stay.Stay{{
		ID:               "s1",
		RoomID:           "1",
		ResponsibleID:    "g1",
		CheckInAt:        date(2026, 8, 2).Add(12 * time.Hour),
		ExpectedCheckOut: datePtr(date(2026, 8, 4)),
	}}

	grid, err := BuildGrid(rooms, reservations, stays, date(2026, 8, 1), date(2026, 8, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []room.Status{
		room.StatusFree,     // Aug 1: nothing
		room.StatusOccupied, // Aug 2: stay masks the reservation
		room.StatusOccupied, // Aug 3
		room.StatusOccupied, // Aug 4: expected checkout day still occupied
		room.StatusReserved, // Aug 5: reservation tail
		room.StatusReserved, // Aug 6: inclusive egress
		room.StatusFree,     // Aug 7
	}
	if len(grid.Rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(grid.Rows), len(want))
	}
	for i, state := range want {
		if got := grid.Rows[i].States["DE1"]; got != state {
			t.Fatalf("day %s: state = %s, want %s", grid.Rows[i].Date.Format("2006-01-02"), got, state)
		}
	}
}

func TestBuildGridOpenEndedStay(t *testing.T) {
	rooms := []*room.Room{{ID: "1", Name: "DE1"}}
	stays := []*stay.Stay{{
		ID:            "s1",
		RoomID:        "1",
		ResponsibleID: "g1",
		CheckInAt:     date(2026, 8, 3).Add(12 * time.Hour),
	}}
	grid, err := BuildGrid(rooms, nil, stays, date(2026, 8, 1), date(2026, 8, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []room.Status{
		room.StatusFree, room.StatusFree,
		room.StatusOccupied, room.StatusOccupied, room.StatusOccupied,
	}
	for i, state := range want {
		if got := grid.Rows[i].States["DE1"]; got != state {
			t.Fatalf("day %d: state = %s, want %s", i, got, state)
		}
	}
}

func TestDetailFor(t *testing.T) {
	t.Run("no covering reservation", func(t *testing.T) {
		if _, err := DetailFor(nil, nil); !errors.Is(err, ErrNoActiveReservation) {
			t.Fatalf("expected ErrNoActiveReservation, got %v", err)
		}
	})

	t.Run("registered guest wins over denormalized fields", func(t *testing.T) {
		covering := []*reservation.Reservation{{
			ID: "r1", GuestID: "g1", GuestName: "stale", GuestSurname: "stale", GuestPhone: "000",
		}}
		registered := &guest.Guest{ID: "g1", Name: "Ana", Surname: "Pereyra", Phone: "555-0101"}
		detail, err := DetailFor(covering, registered)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.Name != "Ana" || detail.Surname != "Pereyra" || detail.Phone != "555-0101" {
			t.Fatalf("unexpected detail: %+v", detail)
		}
	})

	t.Run("denormalized fallback fills placeholders", func(t *testing.T) {
		covering := []*reservation.Reservation{{ID: "r1", GuestName: "Juan"}}
		detail, err := DetailFor(covering, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.Name != "Juan" {
			t.Fatalf("name = %q, want Juan", detail.Name)
		}
		if detail.Surname != "unknown" || detail.Phone != "no data" {
			t.Fatalf("placeholders missing: %+v", detail)
		}
	})

	t.Run("nil registered guest with guest reference falls back", func(t *testing.T) {
		// invariant bypass tolerance: a dangling guest reference must not
		// panic, it degrades to the plain-text fields.
		covering := []*reservation.Reservation{{ID: "r1", GuestID: "ghost", GuestSurname: "Lopez"}}
		detail, err := DetailFor(covering, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.Surname != "Lopez" || detail.Name != "unknown" {
			t.Fatalf("unexpected detail: %+v", detail)
		}
	})

	t.Run("first of several covering reservations wins", func(t *testing.T) {
		covering := []*reservation.Reservation{
			{ID: "r1", GuestName: "First", GuestSurname: "Winner", GuestPhone: "1"},
			{ID: "r2", GuestName: "Second", GuestSurname: "Loser", GuestPhone: "2"},
		}
		detail, err := DetailFor(covering, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.Name != "First" {
			t.Fatalf("expected first reservation to win, got %+v", detail)
		}
	})
}

func TestCoveringRoomOn(t *testing.T) {
	reservations := []*reservation.Reservation{
		{ID: "r1", RoomIDs: []room.RoomID{"1"}, Range: daterange.DateRange{Ingress: date(2026, 8, 1), Egress: date(2026, 8, 3)}},
		{ID: "r2", RoomIDs: []room.RoomID{"2"}, Range: daterange.DateRange{Ingress: date(2026, 8, 1), Egress: date(2026, 8, 3)}},
		{ID: "r3", RoomIDs: []room.RoomID{"1"}, Range: daterange.DateRange{Ingress: date(2026, 8, 10), Egress: date(2026, 8, 12)}},
	}
	got := CoveringRoomOn(reservations, "1", date(2026, 8, 3))
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("unexpected covering set: %v", got)
	}
	if got := CoveringRoomOn(reservations, "1", date(2026, 8, 5)); len(got) != 0 {
		t.Fatalf("expected empty covering set, got %v", got)
	}
}
