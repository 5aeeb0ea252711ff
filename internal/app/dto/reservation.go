package dto

import (
	"hotelpremier/internal/domain/reservation"
)

type Reservation struct {
	ID           string   `json:"id"`
	GuestID      string   `json:"guest_id,omitempty"`
	GuestName    string   `json:"guest_name,omitempty"`
	GuestSurname string   `json:"guest_surname,omitempty"`
	GuestPhone   string   `json:"guest_phone,omitempty"`
	RoomIDs      []string `json:"room_ids"`
	Ingress      string   `json:"ingress"`
	Egress       string   `json:"egress"`
}

func MapReservation(r *reservation.Reservation) Reservation {
	if r == nil {
		return Reservation{}
	}
	rooms := make([]string, 0, len(r.RoomIDs))
	for _, id := range r.RoomIDs {
		rooms = append(rooms, string(id))
	}
	return Reservation{
		ID:           string(r.ID),
		GuestID:      string(r.GuestID),
		GuestName:    r.GuestName,
		GuestSurname: r.GuestSurname,
		GuestPhone:   r.GuestPhone,
		RoomIDs:      rooms,
		Ingress:      r.Range.Ingress.Format(dateLayout),
		Egress:       r.Range.Egress.Format(dateLayout),
	}
}
