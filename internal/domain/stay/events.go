package stay

import (
	"time"

	"hotelpremier/internal/domain/guest"
	"hotelpremier/internal/domain/room"
)

type CheckInCompleted struct {
	StayID        StayID        `json:"stay_id"`
	RoomID        room.RoomID   `json:"room_id"`
	ResponsibleID guest.GuestID `json:"responsible_id"`
	Companions    int           `json:"companions"`
	At            time.Time     `json:"at"`
}

func (e CheckInCompleted) EventName() string     { return "stay.checkin_completed" }
func (e CheckInCompleted) AggregateID() string   { return string(e.StayID) }
func (e CheckInCompleted) OccurredAt() time.Time { return e.At }

type CheckOutCompleted struct {
	StayID StayID      `json:"stay_id"`
	RoomID room.RoomID `json:"room_id"`
	At     time.Time   `json:"at"`
}

func (e CheckOutCompleted) EventName() string     { return "stay.checkout_completed" }
func (e CheckOutCompleted) AggregateID() string   { return string(e.StayID) }
func (e CheckOutCompleted) OccurredAt() time.Time { return e.At }
