package room

import "time"

type StatusChanged struct {
	RoomID RoomID    `json:"room_id"`
	From   Status    `json:"from"`
	To     Status    `json:"to"`
	At     time.Time `json:"at"`
}

func (e StatusChanged) EventName() string     { return "room.status_changed" }
func (e StatusChanged) AggregateID() string   { return string(e.RoomID) }
func (e StatusChanged) OccurredAt() time.Time { return e.At }
