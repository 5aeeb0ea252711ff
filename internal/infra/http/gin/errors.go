package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	availabilityapp "hotelpremier/internal/app/handlers/availability"
	"hotelpremier/internal/domain/availability"
	"hotelpremier/internal/domain/guest"
	"hotelpremier/internal/domain/reservation"
	"hotelpremier/internal/domain/room"
	"hotelpremier/internal/domain/shared/daterange"
	"hotelpremier/internal/domain/stay"
)

// statusFor maps domain errors onto HTTP status codes: malformed input
// is 400, missing entities 404, business-rule rejections 409.
func statusFor(err error) int {
	var capErr stay.CapacityError
	switch {
	case errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, availability.ErrBadWindow),
		errors.Is(err, reservation.ErrNoRooms),
		errors.Is(err, reservation.ErrNoGuest),
		errors.Is(err, room.ErrEmptyIDList),
		errors.Is(err, room.ErrInvalidName),
		errors.Is(err, room.ErrUnknownCategory),
		errors.Is(err, availabilityapp.ErrRoomNameRequired):
		return http.StatusBadRequest
	case errors.Is(err, room.ErrNotFound),
		errors.Is(err, guest.ErrNotFound),
		errors.Is(err, reservation.ErrNotFound),
		errors.Is(err, stay.ErrNotFound),
		errors.Is(err, availability.ErrNoActiveReservation):
		return http.StatusNotFound
	case errors.Is(err, reservation.ErrRoomConflict),
		errors.Is(err, stay.ErrResponsibleUnderage),
		errors.Is(err, stay.ErrAlreadyCheckedOut),
		errors.As(err, &capErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	if status == http.StatusInternalServerError {
		body = gin.H{"error": "internal error"}
	}
	c.JSON(status, body)
}
