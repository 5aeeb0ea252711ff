package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"hotelpremier/internal/app/dto"
	availabilityapp "hotelpremier/internal/app/handlers/availability"
	"hotelpremier/internal/app/queries"
	"hotelpremier/internal/domain/availability"
)

type AvailabilityHandler struct {
	Queries queries.Bus
}

// Grid serves the day-by-room availability matrix for a date window.
func (h AvailabilityHandler) Grid(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	from := dto.ParseDate(c.Query("from"))
	to := dto.ParseDate(c.Query("to"))
	if from.IsZero() || to.IsZero() {
		writeError(c, availability.ErrBadWindow)
		return
	}
	q := availabilityapp.GetGridQuery{
		From:     from,
		To:       to,
		Category: c.Query("category"),
	}
	result, err := queries.Ask[availabilityapp.GetGridQuery, dto.Grid](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Detail serves the guest identity behind the reservation active on a
// room and date.
func (h AvailabilityHandler) Detail(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	q := availabilityapp.GetDetailQuery{
		RoomName: c.Query("room"),
		Date:     dto.ParseDate(c.Query("date")),
	}
	result, err := queries.Ask[availabilityapp.GetDetailQuery, dto.ReservationDetail](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
