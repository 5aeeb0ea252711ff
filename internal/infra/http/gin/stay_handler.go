package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"hotelpremier/internal/app/commands"
	stayapp "hotelpremier/internal/app/handlers/stays"
)

type StayHandler struct {
	Commands commands.Bus
}

type checkInRequest struct {
	RoomID           string     `json:"room_id"`
	ResponsibleID    string     `json:"responsible_id"`
	CompanionIDs     []string   `json:"companion_ids"`
	ReservationID    string     `json:"reservation_id"`
	CheckInDate      time.Time  `json:"check_in_date"`
	ExpectedCheckOut *time.Time `json:"expected_check_out"`
}

func (h StayHandler) CheckIn(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := stayapp.RegisterCheckInCommand{
		CommandID:        generateCommandID(),
		RoomID:           req.RoomID,
		ResponsibleID:    req.ResponsibleID,
		CompanionIDs:     req.CompanionIDs,
		ReservationID:    req.ReservationID,
		CheckInDate:      req.CheckInDate,
		ExpectedCheckOut: req.ExpectedCheckOut,
		IdempotencyKeyV:  c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[stayapp.RegisterCheckInCommand, *stayapp.RegisterCheckInResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

var _ StayHTTP = StayHandler{}
