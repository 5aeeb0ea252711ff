package dto

import (
	"time"

	"hotelpremier/internal/domain/stay"
)

type Stay struct {
	ID               string   `json:"id"`
	RoomID           string   `json:"room_id"`
	ResponsibleID    string   `json:"responsible_id"`
	CompanionIDs     []string `json:"companion_ids,omitempty"`
	ReservationID    string   `json:"reservation_id,omitempty"`
	CheckInAt        string   `json:"check_in_at"`
	ExpectedCheckOut string   `json:"expected_check_out,omitempty"`
	ActualCheckOutAt string   `json:"actual_check_out_at,omitempty"`
}

func MapStay(s *stay.Stay) Stay {
	if s == nil {
		return Stay{}
	}
	companions := make([]string, 0, len(s.CompanionIDs))
	for _, id := range s.CompanionIDs {
		companions = append(companions, string(id))
	}
	out := Stay{
		ID:            string(s.ID),
		RoomID:        string(s.RoomID),
		ResponsibleID: string(s.ResponsibleID),
		CompanionIDs:  companions,
		ReservationID: string(s.ReservationID),
		CheckInAt:     s.CheckInAt.Format(time.RFC3339),
	}
	if s.ExpectedCheckOut != nil {
		out.ExpectedCheckOut = s.ExpectedCheckOut.Format(dateLayout)
	}
	if s.ActualCheckOutAt != nil {
		out.ActualCheckOutAt = s.ActualCheckOutAt.Format(time.RFC3339)
	}
	return out
}
