package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"hotelpremier/internal/infra/config"
	"hotelpremier/internal/infra/obs"
)

type AvailabilityHTTP interface {
	Grid(c *gin.Context)
	Detail(c *gin.Context)
}

type ReservationHTTP interface {
	Create(c *gin.Context)
}

type StayHTTP interface {
	CheckIn(c *gin.Context)
}

type RoomHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Search(c *gin.Context)
	Update(c *gin.Context)
}

type Handlers struct {
	Availability AvailabilityHTTP
	Reservation  ReservationHTTP
	Stay         StayHTTP
	Room         RoomHTTP
	// GridCache, when set, caches availability grid responses.
	GridCache gin.HandlerFunc
	// CacheInvalidate, when set, runs on mutating routes so cached grid
	// responses built before the write are dropped.
	CacheInvalidate gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Availability != nil {
		grid := h.Availability.Grid
		if h.GridCache != nil {
			api.GET("/availability/grid", h.GridCache, grid)
		} else {
			api.GET("/availability/grid", grid)
		}
		api.GET("/availability/detail", h.Availability.Detail)
	}
	if h.Reservation != nil {
		api.POST("/reservations", withInvalidation(h.CacheInvalidate, h.Reservation.Create)...)
	}
	if h.Stay != nil {
		api.POST("/checkins", withInvalidation(h.CacheInvalidate, h.Stay.CheckIn)...)
	}
	if h.Room != nil {
		roomGroup := api.Group("/rooms")
		roomGroup.GET("", h.Room.List)
		roomGroup.GET("/:id", h.Room.Get)
		roomGroup.POST("/search", h.Room.Search)
		roomGroup.PUT("/:id", withInvalidation(h.CacheInvalidate, h.Room.Update)...)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func withInvalidation(invalidate gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	if invalidate == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{invalidate, handler}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
