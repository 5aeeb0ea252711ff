package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"hotelpremier/internal/app/commands"
	"hotelpremier/internal/app/dto"
	roomapp "hotelpremier/internal/app/handlers/rooms"
	"hotelpremier/internal/app/queries"
)

type RoomHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h RoomHandler) List(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	q := roomapp.ListRoomsQuery{Category: c.Query("category")}
	result, err := queries.Ask[roomapp.ListRoomsQuery, []dto.Room](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": result})
}

func (h RoomHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	q := roomapp.GetRoomQuery{ID: c.Param("id")}
	result, err := queries.Ask[roomapp.GetRoomQuery, dto.Room](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type roomSearchRequest struct {
	IDs []string `json:"ids"`
}

// Search resolves a batch of room IDs in one request.
func (h RoomHandler) Search(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	var req roomSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q := roomapp.ListRoomsByIDQuery{IDs: req.IDs}
	result, err := queries.Ask[roomapp.ListRoomsByIDQuery, []dto.Room](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": result})
}

type updateRoomRequest struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
}

func (h RoomHandler) Update(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := roomapp.UpdateRoomCommand{
		RoomID:     c.Param("id"),
		Name:       req.Name,
		Category:   req.Category,
		PriceCents: req.PriceCents,
	}
	result, err := commands.Dispatch[roomapp.UpdateRoomCommand, *roomapp.UpdateRoomResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ RoomHTTP = RoomHandler{}
