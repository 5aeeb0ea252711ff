package reservation

import (
	"errors"
	"testing"
	"time"

	"hotelpremier/internal/domain/room"
	"hotelpremier/internal/domain/shared/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, ingress, egress time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(ingress, egress)
	if err != nil {
		t.Fatalf("invalid range: %v", err)
	}
	return dr
}

func TestNewValidation(t *testing.T) {
	valid := mustRange(t, date(2026, 4, 1), date(2026, 4, 3))
	cases := []struct {
		name    string
		params  CreateParams
		wantErr error
	}{
		{
			"no rooms",
			CreateParams{ID: "r1", GuestName: "Ana", Range: valid},
			ErrNoRooms,
		},
		{
			"no identity",
			CreateParams{ID: "r1", RoomIDs: []room.RoomID{"h1"}, Range: valid},
			ErrNoGuest,
		},
		{
			"invalid range",
			CreateParams{ID: "r1", GuestName: "Ana", RoomIDs: []room.RoomID{"h1"}},
			daterange.ErrInvalidRange,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.params); !errors.Is(err, tc.wantErr) {
				t.Fatalf("New = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewRecordsRegisteredEvent(t *testing.T) {
	r, err := New(CreateParams{
		ID:      "r1",
		GuestID: "g1",
		RoomIDs: []room.RoomID{"h1", "h2"},
		Range:   mustRange(t, date(2026, 4, 1), date(2026, 4, 3)),
		Now:     time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	evs := r.PendingEvents()
	if len(evs) != 1 {
		t.Fatalf("expected 1 pending event, got %d", len(evs))
	}
	if evs[0].EventName() != "reservation.registered" {
		t.Fatalf("unexpected event name %q", evs[0].EventName())
	}
	if evs[0].AggregateID() != "r1" {
		t.Fatalf("unexpected aggregate id %q", evs[0].AggregateID())
	}
}

func TestHasConflict(t *testing.T) {
	existing := []*Reservation{
		{
			ID:      "a",
			RoomIDs: []room.RoomID{"h1"},
			Range:   daterange.DateRange{Ingress: date(2026, 5, 1), Egress: date(2026, 5, 3)},
		},
		{
			ID:      "b",
			RoomIDs: []room.RoomID{"h2"},
			Range:   daterange.DateRange{Ingress: date(2026, 5, 1), Egress: date(2026, 5, 5)},
		},
	}
	cases := []struct {
		name     string
		roomID   room.RoomID
		ingress  time.Time
		egress   time.Time
		conflict bool
	}{
		{"touching ranges do not conflict", "h1", date(2026, 5, 3), date(2026, 5, 5), false},
		{"contained range conflicts", "h2", date(2026, 5, 3), date(2026, 5, 4), true},
		{"crossing range conflicts", "h1", date(2026, 5, 2), date(2026, 5, 10), true},
		{"other room is free", "h3", date(2026, 5, 1), date(2026, 5, 5), false},
		{"disjoint range", "h1", date(2026, 5, 10), date(2026, 5, 12), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasConflict(existing, tc.roomID, tc.ingress, tc.egress); got != tc.conflict {
				t.Fatalf("HasConflict = %v, want %v", got, tc.conflict)
			}
		})
	}
}

// The predicate that rejects a candidate must be exactly the overlap test
// on the stored ranges: HasConflict(existing, room, in, out) == any
// existing range on that room overlapping [in, out].
func TestHasConflictMatchesOverlapPredicate(t *testing.T) {
	base := daterange.DateRange{Ingress: date(2026, 6, 10), Egress: date(2026, 6, 14)}
	existing := []*Reservation{{ID: "a", RoomIDs: []room.RoomID{"h1"}, Range: base}}
	for day := 1; day <= 28; day++ {
		for span := 1; span <= 6; span++ {
			in := date(2026, 6, day)
			out := in.AddDate(0, 0, span)
			want := base.Overlaps(daterange.DateRange{Ingress: in, Egress: out})
			if got := HasConflict(existing, "h1", in, out); got != want {
				t.Fatalf("HasConflict(%s,+%dd) = %v, want %v", in.Format("2006-01-02"), span, got, want)
			}
		}
	}
}
