package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelpremier/internal/app/commands"
	"hotelpremier/internal/app/dto"
	"hotelpremier/internal/app/middleware"
	"hotelpremier/internal/app/outbox"
	"hotelpremier/internal/app/uow"
	domainguest "hotelpremier/internal/domain/guest"
	domainreservation "hotelpremier/internal/domain/reservation"
	domainroom "hotelpremier/internal/domain/room"
	domainrange "hotelpremier/internal/domain/shared/daterange"
)

const registerReservationKey = "reservation.register"

type RegisterReservationCommand struct {
	CommandID       string
	GuestID         string
	GuestName       string
	GuestSurname    string
	GuestPhone      string
	RoomIDs         []string
	Ingress         time.Time
	Egress          time.Time
	IdempotencyKeyV string
}

func (c RegisterReservationCommand) Key() string { return registerReservationKey }

func (c RegisterReservationCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RegisterReservationCommand) ResultPrototype() any { return &RegisterReservationResult{} }

// LockKeys names the rooms this booking must hold exclusively while it
// checks for conflicts and commits.
func (c RegisterReservationCommand) LockKeys() []string { return c.RoomIDs }

type RegisterReservationResult struct {
	Reservation dto.Reservation `json:"reservation"`
}

type RegisterReservationHandler struct {
	UoWFactory uow.UoWFactory
	Locks      *RoomLocks
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

var ErrUnitOfWorkRequired = errors.New("reservations: unit of work required")

// Handle validates the booking request, proves every requested room free
// of overlapping reservations, and persists the reservation. The conflict
// check, the insert and the commit must all run under the rooms' locks:
// when the handler owns the unit of work it takes the locks itself, and
// when the unit arrives in context the transaction owner holds them via
// the Locking middleware. Acquiring here as well would deadlock.
func (h *RegisterReservationHandler) Handle(ctx context.Context, cmd RegisterReservationCommand) (*RegisterReservationResult, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	dr, err := domainrange.New(cmd.Ingress, cmd.Egress)
	if err != nil {
		return nil, err
	}
	if len(cmd.RoomIDs) == 0 {
		return nil, domainreservation.ErrNoRooms
	}

	roomIDs := make([]domainroom.RoomID, 0, len(cmd.RoomIDs))
	for _, raw := range cmd.RoomIDs {
		roomIDs = append(roomIDs, domainroom.RoomID(raw))
	}
	rooms, err := unit.Rooms().ByIDs(ctx, roomIDs)
	if err != nil {
		return nil, err
	}
	if len(rooms) != len(roomIDs) {
		return nil, domainroom.ErrNotFound
	}

	if managed && h.Locks != nil {
		release := h.Locks.Acquire(cmd.LockKeys())
		defer release()
	}

	for _, id := range roomIDs {
		existing, err := unit.Reservations().ForRoom(ctx, id)
		if err != nil {
			return nil, err
		}
		if domainreservation.HasConflict(existing, id, dr.Ingress, dr.Egress) {
			return nil, fmt.Errorf("%w: room %s", domainreservation.ErrRoomConflict, id)
		}
	}

	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:           domainreservation.ReservationID(cmd.CommandID),
		GuestID:      domainguest.GuestID(cmd.GuestID),
		GuestName:    cmd.GuestName,
		GuestSurname: cmd.GuestSurname,
		GuestPhone:   cmd.GuestPhone,
		RoomIDs:      roomIDs,
		Range:        dr,
		Now:          time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Reservations().Save(ctx, res); err != nil {
		return nil, err
	}

	pending := res.PendingEvents()
	res.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &RegisterReservationResult{Reservation: dto.MapReservation(res)}, nil
}

func (h *RegisterReservationHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[RegisterReservationCommand, *RegisterReservationResult] = (*RegisterReservationHandler)(nil)
var _ middleware.IdempotentCommand = (*RegisterReservationCommand)(nil)
var _ middleware.ExclusiveCommand = (*RegisterReservationCommand)(nil)
