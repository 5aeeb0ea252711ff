package stays

import (
	"context"
	"errors"
	"time"

	"hotelpremier/internal/app/commands"
	"hotelpremier/internal/app/dto"
	"hotelpremier/internal/app/middleware"
	"hotelpremier/internal/app/outbox"
	"hotelpremier/internal/app/uow"
	domainguest "hotelpremier/internal/domain/guest"
	domainreservation "hotelpremier/internal/domain/reservation"
	domainroom "hotelpremier/internal/domain/room"
	domainstay "hotelpremier/internal/domain/stay"
)

const registerCheckInKey = "stay.register_checkin"

type RegisterCheckInCommand struct {
	CommandID        string
	RoomID           string
	ResponsibleID    string
	CompanionIDs     []string
	ReservationID    string
	CheckInDate      time.Time
	ExpectedCheckOut *time.Time
	IdempotencyKeyV  string
}

func (c RegisterCheckInCommand) Key() string { return registerCheckInKey }

func (c RegisterCheckInCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RegisterCheckInCommand) ResultPrototype() any { return &RegisterCheckInResult{} }

type RegisterCheckInResult struct {
	Stay dto.Stay `json:"stay"`
}

type RegisterCheckInHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

var ErrUnitOfWorkRequired = errors.New("stays: unit of work required")

// Handle loads the room and guests, applies the check-in rules (age,
// capacity), persists the stay, and flips the room's cached status to
// OCCUPIED. The validation itself is pure; everything after it is the
// calling workflow the validator leaves to us.
func (h *RegisterCheckInHandler) Handle(ctx context.Context, cmd RegisterCheckInCommand) (*RegisterCheckInResult, error) {
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

	now := h.now()

	rm, err := unit.Rooms().ByID(ctx, domainroom.RoomID(cmd.RoomID))
	if err != nil {
		return nil, err
	}
	responsible, err := unit.Guests().ByID(ctx, domainguest.GuestID(cmd.ResponsibleID))
	if err != nil {
		return nil, err
	}
	companionIDs := make([]domainguest.GuestID, 0, len(cmd.CompanionIDs))
	for _, raw := range cmd.CompanionIDs {
		companionIDs = append(companionIDs, domainguest.GuestID(raw))
	}
	var companions []*domainguest.Guest
	if len(companionIDs) > 0 {
		companions, err = unit.Guests().ByIDs(ctx, companionIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := domainstay.ValidateCheckIn(rm, responsible, companions, now); err != nil {
		return nil, err
	}

	s, err := domainstay.New(domainstay.CreateParams{
		ID:               domainstay.StayID(cmd.CommandID),
		RoomID:           rm.ID,
		ResponsibleID:    responsible.ID,
		CompanionIDs:     companionIDs,
		ReservationID:    domainreservation.ReservationID(cmd.ReservationID),
		CheckInDate:      cmd.CheckInDate,
		ExpectedCheckOut: cmd.ExpectedCheckOut,
		Now:              now,
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Stays().Save(ctx, s); err != nil {
		return nil, err
	}

	rm.MarkStatus(domainroom.StatusOccupied, now)
	if err := unit.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}

	pending := append(s.PendingEvents(), rm.PendingEvents()...)
	s.ClearEvents()
	rm.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &RegisterCheckInResult{Stay: dto.MapStay(s)}, nil
}

func (h *RegisterCheckInHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

func (h *RegisterCheckInHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

var _ commands.Handler[RegisterCheckInCommand, *RegisterCheckInResult] = (*RegisterCheckInHandler)(nil)
var _ middleware.IdempotentCommand = (*RegisterCheckInCommand)(nil)
