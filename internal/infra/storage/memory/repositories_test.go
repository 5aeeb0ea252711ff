package memory

import (
	"context"
	"testing"
	"time"

	domainreservation "hotelpremier/internal/domain/reservation"
	domainroom "hotelpremier/internal/domain/room"
	domainrange "hotelpremier/internal/domain/shared/daterange"
	domainstay "hotelpremier/internal/domain/stay"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func saveReservation(t *testing.T, repo *ReservationRepository, id, roomID string, ingress, egress time.Time) {
	t.Helper()
	dr, err := domainrange.New(ingress, egress)
	if err != nil {
		t.Fatalf("range fixture: %v", err)
	}
	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:        domainreservation.ReservationID(id),
		GuestName: "fixture",
		RoomIDs:   []domainroom.RoomID{domainroom.RoomID(roomID)},
		Range:     dr,
		Now:       time.Now(),
	})
	if err != nil {
		t.Fatalf("reservation fixture: %v", err)
	}
	if err := repo.Save(context.Background(), res); err != nil {
		t.Fatalf("save reservation: %v", err)
	}
}

func TestReservationRepositoryInWindow(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository()
	saveReservation(t, repo, "before", "r1", date(2026, 9, 1), date(2026, 9, 5))
	saveReservation(t, repo, "touching", "r1", date(2026, 9, 5), date(2026, 9, 10))
	saveReservation(t, repo, "inside", "r1", date(2026, 9, 11), date(2026, 9, 12))
	saveReservation(t, repo, "after", "r1", date(2026, 9, 21), date(2026, 9, 25))

	got, err := repo.InWindow(ctx, date(2026, 9, 10), date(2026, 9, 20))
	if err != nil {
		t.Fatalf("InWindow() error = %v", err)
	}
	want := map[domainreservation.ReservationID]bool{"touching": true, "inside": true}
	if len(got) != len(want) {
		t.Fatalf("InWindow() returned %d reservations, want %d", len(got), len(want))
	}
	for _, res := range got {
		if !want[res.ID] {
			t.Fatalf("unexpected reservation %q in window", res.ID)
		}
	}
}

func TestReservationRepositoryForRoom(t *testing.T) {
	ctx := context.Background()
	repo := NewReservationRepository()
	saveReservation(t, repo, "a", "r1", date(2026, 9, 1), date(2026, 9, 5))
	saveReservation(t, repo, "b", "r2", date(2026, 9, 1), date(2026, 9, 5))

	got, err := repo.ForRoom(ctx, "r1")
	if err != nil {
		t.Fatalf("ForRoom() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("ForRoom(r1) = %v", got)
	}
}

func TestStayRepositoryInWindow(t *testing.T) {
	ctx := context.Background()
	repo := NewStayRepository()

	open, err := domainstay.New(domainstay.CreateParams{
		ID: "open", RoomID: "r1", ResponsibleID: "g1",
		CheckInDate: date(2026, 9, 1), Now: time.Now(),
	})
	if err != nil {
		t.Fatalf("stay fixture: %v", err)
	}
	if err := repo.Save(ctx, open); err != nil {
		t.Fatalf("save stay: %v", err)
	}

	closed, err := domainstay.New(domainstay.CreateParams{
		ID: "closed", RoomID: "r2", ResponsibleID: "g2",
		CheckInDate: date(2026, 9, 1), Now: time.Now(),
	})
	if err != nil {
		t.Fatalf("stay fixture: %v", err)
	}
	if err := closed.CheckOut(date(2026, 9, 3)); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if err := repo.Save(ctx, closed); err != nil {
		t.Fatalf("save stay: %v", err)
	}

	future, err := domainstay.New(domainstay.CreateParams{
		ID: "future", RoomID: "r3", ResponsibleID: "g3",
		CheckInDate: date(2026, 10, 1), Now: time.Now(),
	})
	if err != nil {
		t.Fatalf("stay fixture: %v", err)
	}
	if err := repo.Save(ctx, future); err != nil {
		t.Fatalf("save stay: %v", err)
	}

	got, err := repo.InWindow(ctx, date(2026, 9, 10), date(2026, 9, 20))
	if err != nil {
		t.Fatalf("InWindow() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "open" {
		ids := make([]domainstay.StayID, 0, len(got))
		for _, s := range got {
			ids = append(ids, s.ID)
		}
		t.Fatalf("InWindow() = %v, want just the open-ended stay", ids)
	}
}

func TestRoomRepositoryByIDsDropsUnknown(t *testing.T) {
	ctx := context.Background()
	repo := NewRoomRepository()
	rm, err := domainroom.New(domainroom.CreateParams{
		ID: "r1", Name: "IE1", Category: domainroom.CategorySingleStandard, Now: time.Now(),
	})
	if err != nil {
		t.Fatalf("room fixture: %v", err)
	}
	if err := repo.Save(ctx, rm); err != nil {
		t.Fatalf("save room: %v", err)
	}

	got, err := repo.ByIDs(ctx, []domainroom.RoomID{"r1", "ghost"})
	if err != nil {
		t.Fatalf("ByIDs() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("ByIDs() = %v, want just r1", got)
	}
}
