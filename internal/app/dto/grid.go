package dto

import (
	"time"

	"hotelpremier/internal/domain/availability"
)

// Grid is the wire form of the day-by-room availability matrix.
type Grid struct {
	RoomNames []string          `json:"room_names"`
	RoomIDs   map[string]string `json:"room_ids"`
	Rows      []GridRow         `json:"rows"`
}

type GridRow struct {
	Date   string            `json:"date"`
	States map[string]string `json:"states"`
}

const dateLayout = "2006-01-02"

func MapGrid(grid availability.Grid) Grid {
	out := Grid{
		RoomNames: append([]string(nil), grid.RoomNames...),
		RoomIDs:   make(map[string]string, len(grid.RoomIDs)),
		Rows:      make([]GridRow, 0, len(grid.Rows)),
	}
	for name, id := range grid.RoomIDs {
		out.RoomIDs[name] = string(id)
	}
	for _, row := range grid.Rows {
		states := make(map[string]string, len(row.States))
		for name, state := range row.States {
			states[name] = string(state)
		}
		out.Rows = append(out.Rows, GridRow{Date: row.Date.Format(dateLayout), States: states})
	}
	return out
}

type ReservationDetail struct {
	Surname string `json:"surname"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
}

func MapReservationDetail(d availability.ReservationDetail) ReservationDetail {
	return ReservationDetail{Surname: d.Surname, Name: d.Name, Phone: d.Phone}
}

// ParseDate parses a yyyy-mm-dd query value; the zero time signals absence.
func ParseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
