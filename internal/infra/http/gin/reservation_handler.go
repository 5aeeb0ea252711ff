package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotelpremier/internal/app/commands"
	reservationapp "hotelpremier/internal/app/handlers/reservations"
)

type ReservationHandler struct {
	Commands commands.Bus
}

type createReservationRequest struct {
	GuestID      string    `json:"guest_id"`
	GuestName    string    `json:"guest_name"`
	GuestSurname string    `json:"guest_surname"`
	GuestPhone   string    `json:"guest_phone"`
	RoomIDs      []string  `json:"room_ids"`
	Ingress      time.Time `json:"ingress"`
	Egress       time.Time `json:"egress"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reservationapp.RegisterReservationCommand{
		CommandID:       generateCommandID(),
		GuestID:         req.GuestID,
		GuestName:       req.GuestName,
		GuestSurname:    req.GuestSurname,
		GuestPhone:      req.GuestPhone,
		RoomIDs:         req.RoomIDs,
		Ingress:         req.Ingress,
		Egress:          req.Egress,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[reservationapp.RegisterReservationCommand, *reservationapp.RegisterReservationResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func generateCommandID() string {
	return uuid.NewString()
}

var _ ReservationHTTP = ReservationHandler{}
