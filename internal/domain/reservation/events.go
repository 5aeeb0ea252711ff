package reservation

import (
	"time"

	"hotelpremier/internal/domain/room"
)

type Registered struct {
	ReservationID ReservationID `json:"reservation_id"`
	RoomIDs       []room.RoomID `json:"room_ids"`
	Ingress       time.Time     `json:"ingress"`
	Egress        time.Time     `json:"egress"`
	At            time.Time     `json:"at"`
}

func (e Registered) EventName() string     { return "reservation.registered" }
func (e Registered) AggregateID() string   { return string(e.ReservationID) }
func (e Registered) OccurredAt() time.Time { return e.At }
