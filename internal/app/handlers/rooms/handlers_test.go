package rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	domainroom "hotelpremier/internal/domain/room"
	"hotelpremier/internal/infra/storage/memory"
)

func seedRoom(t *testing.T, store *memory.Store, id, name string, cat domainroom.Category) {
	t.Helper()
	rm, err := domainroom.New(domainroom.CreateParams{
		ID:         domainroom.RoomID(id),
		Name:       name,
		Category:   cat,
		PriceCents: 10000,
		Now:        time.Now(),
	})
	if err != nil {
		t.Fatalf("room fixture: %v", err)
	}
	if err := store.Rooms().Save(context.Background(), rm); err != nil {
		t.Fatalf("save room: %v", err)
	}
}

func TestListRooms(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedRoom(t, store, "r1", "IE1", domainroom.CategorySingleStandard)
	seedRoom(t, store, "r2", "DE1", domainroom.CategoryDoubleStandard)

	h := &ListRoomsHandler{UoWFactory: store}
	all, err := h.Handle(ctx, ListRoomsQuery{})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("rooms = %d, want 2", len(all))
	}

	singles, err := h.Handle(ctx, ListRoomsQuery{Category: string(domainroom.CategorySingleStandard)})
	if err != nil {
		t.Fatalf("filtered Handle() error = %v", err)
	}
	if len(singles) != 1 || singles[0].Name != "IE1" {
		t.Fatalf("filtered rooms = %+v", singles)
	}

	if _, err := h.Handle(ctx, ListRoomsQuery{Category: "PENTHOUSE"}); !errors.Is(err, domainroom.ErrUnknownCategory) {
		t.Fatalf("unknown category error = %v, want ErrUnknownCategory", err)
	}
}

func TestGetRoom(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedRoom(t, store, "r1", "IE1", domainroom.CategorySingleStandard)

	h := &GetRoomHandler{UoWFactory: store}
	got, err := h.Handle(ctx, GetRoomQuery{ID: "r1"})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got.Name != "IE1" {
		t.Fatalf("room name = %q, want IE1", got.Name)
	}

	if _, err := h.Handle(ctx, GetRoomQuery{ID: "nope"}); !errors.Is(err, domainroom.ErrNotFound) {
		t.Fatalf("missing room error = %v, want ErrNotFound", err)
	}
}

func TestListRoomsByID(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedRoom(t, store, "r1", "IE1", domainroom.CategorySingleStandard)
	seedRoom(t, store, "r2", "DE1", domainroom.CategoryDoubleStandard)

	h := &ListRoomsByIDHandler{UoWFactory: store}

	t.Run("empty id list is rejected before data access", func(t *testing.T) {
		bare := &ListRoomsByIDHandler{}
		if _, err := bare.Handle(ctx, ListRoomsByIDQuery{}); !errors.Is(err, domainroom.ErrEmptyIDList) {
			t.Fatalf("empty list error = %v, want ErrEmptyIDList", err)
		}
	})

	t.Run("unknown ids are dropped", func(t *testing.T) {
		got, err := h.Handle(ctx, ListRoomsByIDQuery{IDs: []string{"r1", "ghost"}})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != "r1" {
			t.Fatalf("rooms = %+v, want just r1", got)
		}
	})
}

func TestUpdateRoom(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seedRoom(t, store, "r1", "IE1", domainroom.CategorySingleStandard)

	h := &UpdateRoomHandler{UoWFactory: store}
	result, err := h.Handle(ctx, UpdateRoomCommand{
		RoomID:     "r1",
		Name:       "IE1-R",
		PriceCents: 12500,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if result.Room.Name != "IE1-R" || result.Room.PriceCents != 12500 {
		t.Fatalf("updated room = %+v", result.Room)
	}
	if result.Room.Category != string(domainroom.CategorySingleStandard) {
		t.Fatalf("category changed on empty input: %q", result.Room.Category)
	}

	if _, err := h.Handle(ctx, UpdateRoomCommand{RoomID: "r1", Name: ""}); !errors.Is(err, domainroom.ErrInvalidName) {
		t.Fatalf("blank name error = %v, want ErrInvalidName", err)
	}
}
