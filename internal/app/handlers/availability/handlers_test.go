package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	domainavailability "hotelpremier/internal/domain/availability"
	domainguest "hotelpremier/internal/domain/guest"
	domainreservation "hotelpremier/internal/domain/reservation"
	domainroom "hotelpremier/internal/domain/room"
	domainrange "hotelpremier/internal/domain/shared/daterange"
	domainstay "hotelpremier/internal/domain/stay"
	"hotelpremier/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedRoom(t *testing.T, store *memory.Store, id, name string) {
	t.Helper()
	rm, err := domainroom.New(domainroom.CreateParams{
		ID:       domainroom.RoomID(id),
		Name:     name,
		Category: domainroom.CategoryDoubleStandard,
		Now:      time.Now(),
	})
	if err != nil {
		t.Fatalf("room fixture: %v", err)
	}
	if err := store.Rooms().Save(context.Background(), rm); err != nil {
		t.Fatalf("save room: %v", err)
	}
}

func seedReservation(t *testing.T, store *memory.Store, id, guestName string, guestID domainguest.GuestID, roomID string, ingress, egress time.Time) {
	t.Helper()
	dr, err := domainrange.New(ingress, egress)
	if err != nil {
		t.Fatalf("range fixture: %v", err)
	}
	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:        domainreservation.ReservationID(id),
		GuestID:   guestID,
		GuestName: guestName,
		RoomIDs:   []domainroom.RoomID{domainroom.RoomID(roomID)},
		Range:     dr,
		Now:       time.Now(),
	})
	if err != nil {
		t.Fatalf("reservation fixture: %v", err)
	}
	if err := store.Reservations().Save(context.Background(), res); err != nil {
		t.Fatalf("save reservation: %v", err)
	}
}

func TestGetGridHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an inverted window before touching data", func(t *testing.T) {
		h := &GetGridHandler{}
		_, err := h.Handle(ctx, GetGridQuery{From: date(2026, 9, 10), To: date(2026, 9, 5)})
		if !errors.Is(err, domainavailability.ErrBadWindow) {
			t.Fatalf("inverted window error = %v, want ErrBadWindow", err)
		}
	})

	t.Run("builds one row per day with reservation and stay states", func(t *testing.T) {
		store := memory.NewStore()
		seedRoom(t, store, "r1", "DE1")
		seedRoom(t, store, "r2", "DE2")
		seedReservation(t, store, "res-1", "Ana", "", "r1", date(2026, 9, 10), date(2026, 9, 12))

		expected := date(2026, 9, 11)
		s, err := domainstay.New(domainstay.CreateParams{
			ID:               "stay-1",
			RoomID:           "r1",
			ResponsibleID:    "g1",
			CheckInDate:      date(2026, 9, 10),
			ExpectedCheckOut: &expected,
			Now:              time.Now(),
		})
		if err != nil {
			t.Fatalf("stay fixture: %v", err)
		}
		if err := store.Stays().Save(ctx, s); err != nil {
			t.Fatalf("save stay: %v", err)
		}

		h := &GetGridHandler{UoWFactory: store}
		grid, err := h.Handle(ctx, GetGridQuery{From: date(2026, 9, 10), To: date(2026, 9, 13)})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(grid.Rows) != 4 {
			t.Fatalf("rows = %d, want 4", len(grid.Rows))
		}
		if len(grid.RoomNames) != 2 || grid.RoomNames[0] != "DE1" {
			t.Fatalf("room names = %v", grid.RoomNames)
		}
		wantDE1 := []string{"OCCUPIED", "OCCUPIED", "RESERVED", "FREE"}
		for i, row := range grid.Rows {
			if row.States["DE1"] != wantDE1[i] {
				t.Fatalf("day %s DE1 = %q, want %q", row.Date, row.States["DE1"], wantDE1[i])
			}
			if row.States["DE2"] != "FREE" {
				t.Fatalf("day %s DE2 = %q, want FREE", row.Date, row.States["DE2"])
			}
		}
	})

	t.Run("rejects an unknown category before touching data", func(t *testing.T) {
		h := &GetGridHandler{}
		_, err := h.Handle(ctx, GetGridQuery{
			From:     date(2026, 9, 10),
			To:       date(2026, 9, 12),
			Category: "PENTHOUSE",
		})
		if !errors.Is(err, domainroom.ErrUnknownCategory) {
			t.Fatalf("unknown category error = %v, want ErrUnknownCategory", err)
		}
	})

	t.Run("single day window yields one row", func(t *testing.T) {
		store := memory.NewStore()
		seedRoom(t, store, "r1", "DE1")
		h := &GetGridHandler{UoWFactory: store}

		grid, err := h.Handle(ctx, GetGridQuery{From: date(2026, 9, 10), To: date(2026, 9, 10)})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(grid.Rows) != 1 {
			t.Fatalf("rows = %d, want 1", len(grid.Rows))
		}
	})
}

func TestGetDetailHandler(t *testing.T) {
	ctx := context.Background()
	day := date(2026, 9, 11)

	t.Run("requires a room name", func(t *testing.T) {
		h := &GetDetailHandler{}
		if _, err := h.Handle(ctx, GetDetailQuery{Date: day}); !errors.Is(err, ErrRoomNameRequired) {
			t.Fatalf("missing room error = %v, want ErrRoomNameRequired", err)
		}
	})

	t.Run("reports no active reservation on a free day", func(t *testing.T) {
		store := memory.NewStore()
		seedRoom(t, store, "r1", "DE1")
		h := &GetDetailHandler{UoWFactory: store}

		_, err := h.Handle(ctx, GetDetailQuery{RoomName: "DE1", Date: day})
		if !errors.Is(err, domainavailability.ErrNoActiveReservation) {
			t.Fatalf("free day error = %v, want ErrNoActiveReservation", err)
		}
	})

	t.Run("registered guest wins over denormalized fields", func(t *testing.T) {
		store := memory.NewStore()
		seedRoom(t, store, "r1", "DE1")
		if err := store.Guests().Save(ctx, &domainguest.Guest{
			ID: "g1", Name: "Carla", Surname: "Ruiz", Phone: "600111222",
			BirthDate: date(1990, 1, 1),
		}); err != nil {
			t.Fatalf("save guest: %v", err)
		}
		seedReservation(t, store, "res-1", "Walkin", "g1", "r1", date(2026, 9, 10), date(2026, 9, 12))
		h := &GetDetailHandler{UoWFactory: store}

		detail, err := h.Handle(ctx, GetDetailQuery{RoomName: "DE1", Date: day})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if detail.Name != "Carla" || detail.Surname != "Ruiz" || detail.Phone != "600111222" {
			t.Fatalf("detail = %+v, want registered guest data", detail)
		}
	})

	t.Run("dangling guest reference falls back to reservation fields", func(t *testing.T) {
		store := memory.NewStore()
		seedRoom(t, store, "r1", "DE1")
		seedReservation(t, store, "res-1", "Walkin", "missing", "r1", date(2026, 9, 10), date(2026, 9, 12))
		h := &GetDetailHandler{UoWFactory: store}

		detail, err := h.Handle(ctx, GetDetailQuery{RoomName: "DE1", Date: day})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if detail.Name != "Walkin" {
			t.Fatalf("detail name = %q, want reservation fallback", detail.Name)
		}
	})

	t.Run("unknown room name is a 404-style miss", func(t *testing.T) {
		store := memory.NewStore()
		h := &GetDetailHandler{UoWFactory: store}

		_, err := h.Handle(ctx, GetDetailQuery{RoomName: "NOPE", Date: day})
		if !errors.Is(err, domainroom.ErrNotFound) {
			t.Fatalf("unknown room error = %v, want ErrNotFound", err)
		}
	})
}
