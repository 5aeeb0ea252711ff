package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotelpremier/internal/app/commands"
	availabilityapp "hotelpremier/internal/app/handlers/availability"
	reservationapp "hotelpremier/internal/app/handlers/reservations"
	roomapp "hotelpremier/internal/app/handlers/rooms"
	stayapp "hotelpremier/internal/app/handlers/stays"
	"hotelpremier/internal/app/middleware"
	appoutbox "hotelpremier/internal/app/outbox"
	"hotelpremier/internal/app/queries"
	"hotelpremier/internal/app/uow"
	domainguest "hotelpremier/internal/domain/guest"
	domainroom "hotelpremier/internal/domain/room"
	"hotelpremier/internal/infra/broker/kafka"
	"hotelpremier/internal/infra/cache"
	"hotelpremier/internal/infra/config"
	mongodb "hotelpremier/internal/infra/db/mongo"
	ginserver "hotelpremier/internal/infra/http/gin"
	"hotelpremier/internal/infra/obs"
	infraoutbox "hotelpremier/internal/infra/outbox"
	"hotelpremier/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration invalid:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if err := app.loadRoomFixtures(ctx, roomFixturesPath(cfg), logger); err != nil {
		logger.Warn("room fixtures load failed", "error", err)
	}
	if err := app.loadGuestFixtures(ctx, guestFixturesPath(cfg), logger); err != nil {
		logger.Warn("guest fixtures load failed", "error", err)
	}

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	factory  uow.UoWFactory
	worker   *infraoutbox.Worker
	ready    func() error
}

func buildApplication(cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		factory     uow.UoWFactory
		outboxStore appoutbox.Outbox
		worker      *infraoutbox.Worker
		ready       = func() error { return nil }
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		factory = mongodb.Factory{
			DB:              client.DB,
			RoomRepo:        mongodb.NewRoomRepository(client.DB),
			ReservationRepo: mongodb.NewReservationRepository(client.DB),
			StayRepo:        mongodb.NewStayRepository(client.DB),
			GuestRepo:       mongodb.NewGuestRepository(client.DB),
		}
		store := infraoutbox.NewStore(client.DB)
		outboxStore = store
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return application{}, fmt.Errorf("kafka producer: %w", err)
			}
			worker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
		} else {
			logger.Warn("no kafka brokers configured, outbox events will stay pending")
		}
	default:
		store := memory.NewStore()
		factory = store
		outboxStore = memory.NewOutbox(nil)
	}

	idStore := memory.NewIdempotencyStore(cfg.IdempotencyTTL)
	locks := reservationapp.NewRoomLocks()

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, reservationapp.RegisterReservationCommand{}.Key(), &reservationapp.RegisterReservationHandler{
		UoWFactory: factory,
		Locks:      locks,
		Outbox:     outboxStore,
		Encoder:    appoutbox.JSONEventEncoder{},
	})
	commands.RegisterHandler(commandBus, stayapp.RegisterCheckInCommand{}.Key(), &stayapp.RegisterCheckInHandler{
		UoWFactory: factory,
		Outbox:     outboxStore,
		Encoder:    appoutbox.JSONEventEncoder{},
	})
	commands.RegisterHandler(commandBus, roomapp.UpdateRoomCommand{}.Key(), &roomapp.UpdateRoomHandler{
		UoWFactory: factory,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, availabilityapp.GetGridQuery{}.Key(), &availabilityapp.GetGridHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, availabilityapp.GetDetailQuery{}.Key(), &availabilityapp.GetDetailHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, roomapp.ListRoomsQuery{}.Key(), &roomapp.ListRoomsHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, roomapp.GetRoomQuery{}.Key(), &roomapp.GetRoomHandler{UoWFactory: factory})
	queries.RegisterHandler(queryBus, roomapp.ListRoomsByIDQuery{}.Key(), &roomapp.ListRoomsByIDHandler{UoWFactory: factory})

	// Locking sits outside Transaction so room locks stay held until the
	// unit of work has committed.
	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Locking(locks),
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	handlers := ginserver.Handlers{
		Availability: ginserver.AvailabilityHandler{Queries: queryBusWithMiddleware},
		Reservation:  ginserver.ReservationHandler{Commands: commandBusWithMiddleware},
		Stay:         ginserver.StayHandler{Commands: commandBusWithMiddleware},
		Room: ginserver.RoomHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
		},
	}
	if rdb := cache.NewClient(cfg.RedisAddr, cfg.RedisPassword); rdb != nil {
		handlers.GridCache = cache.ResponseCache(rdb, cfg.CacheTTL)
		handlers.CacheInvalidate = cache.Invalidate(rdb)
		logger.Info("availability grid response cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	return application{
		handlers: handlers,
		factory:  factory,
		worker:   worker,
		ready:    ready,
	}, nil
}

func (a application) loadRoomFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	data, err := readFixtureFile(path, logger)
	if err != nil || data == nil {
		return err
	}
	var fixtures []roomFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode room fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		return nil
	}

	unit, err := a.factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return err
	}
	now := time.Now()
	imported := 0
	for _, fx := range fixtures {
		rm, err := domainroom.New(domainroom.CreateParams{
			ID:         domainroom.RoomID(fx.ID),
			Name:       fx.Name,
			Category:   domainroom.Category(fx.Category),
			PriceCents: fx.PriceCents,
			Now:        now,
		})
		if err != nil {
			logger.Error("room fixture invalid", "room_id", fx.ID, "error", err)
			continue
		}
		if err := unit.Rooms().Save(ctx, rm); err != nil {
			logger.Error("cannot store fixture room", "room_id", fx.ID, "error", err)
			continue
		}
		imported++
	}
	if err := unit.Commit(ctx); err != nil {
		return err
	}
	logger.Info("room fixtures imported", "count", imported)
	return nil
}

func (a application) loadGuestFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	data, err := readFixtureFile(path, logger)
	if err != nil || data == nil {
		return err
	}
	var fixtures []guestFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode guest fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		return nil
	}

	unit, err := a.factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return err
	}
	imported := 0
	for _, fx := range fixtures {
		birth, err := time.Parse("2006-01-02", fx.BirthDate)
		if err != nil {
			logger.Error("guest fixture invalid", "guest_id", fx.ID, "error", err)
			continue
		}
		g := &domainguest.Guest{
			ID:        domainguest.GuestID(fx.ID),
			Name:      fx.Name,
			Surname:   fx.Surname,
			Phone:     fx.Phone,
			BirthDate: birth,
		}
		if err := unit.Guests().Save(ctx, g); err != nil {
			logger.Error("cannot store fixture guest", "guest_id", fx.ID, "error", err)
			continue
		}
		imported++
	}
	if err := unit.Commit(ctx); err != nil {
		return err
	}
	logger.Info("guest fixtures imported", "count", imported)
	return nil
}

func readFixtureFile(path string, logger *slog.Logger) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("fixtures file not found, skipping", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("fixtures file empty", "path", path)
		return nil, nil
	}
	return data, nil
}

type roomFixture struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
}

type guestFixture struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
}

func roomFixturesPath(cfg config.Config) string {
	if cfg.RoomFixturesPath != "" {
		return cfg.RoomFixturesPath
	}
	return defaultFixturePath("rooms.json")
}

func guestFixturesPath(cfg config.Config) string {
	if cfg.GuestFixturesPath != "" {
		return cfg.GuestFixturesPath
	}
	return defaultFixturePath("guests.json")
}

func defaultFixturePath(name string) string {
	candidate := filepath.Join("data", name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

