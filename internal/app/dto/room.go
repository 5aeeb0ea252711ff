package dto

import (
	"hotelpremier/internal/domain/room"
)

type Room struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	Status     string `json:"status"`
}

func MapRoom(r *room.Room) Room {
	if r == nil {
		return Room{}
	}
	return Room{
		ID:         string(r.ID),
		Name:       r.Name,
		Category:   string(r.Category),
		PriceCents: r.PriceCents,
		Status:     string(r.Status),
	}
}

func MapRooms(rooms []*room.Room) []Room {
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, MapRoom(r))
	}
	return out
}
