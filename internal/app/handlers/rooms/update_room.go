package rooms

import (
	"context"
	"errors"
	"time"

	"hotelpremier/internal/app/commands"
	"hotelpremier/internal/app/dto"
	"hotelpremier/internal/app/uow"
	domainroom "hotelpremier/internal/domain/room"
)

const updateRoomKey = "rooms.update"

type UpdateRoomCommand struct {
	RoomID     string
	Name       string
	Category   string
	PriceCents int64
}

func (c UpdateRoomCommand) Key() string { return updateRoomKey }

type UpdateRoomResult struct {
	Room dto.Room `json:"room"`
}

type UpdateRoomHandler struct {
	UoWFactory uow.UoWFactory
}

var ErrUnitOfWorkRequired = errors.New("rooms: unit of work required")

// Handle applies an administrative change to the room's display data.
func (h *UpdateRoomHandler) Handle(ctx context.Context, cmd UpdateRoomCommand) (*UpdateRoomResult, error) {
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

	r, err := unit.Rooms().ByID(ctx, domainroom.RoomID(cmd.RoomID))
	if err != nil {
		return nil, err
	}
	if err := r.UpdateDetails(cmd.Name, domainroom.Category(cmd.Category), cmd.PriceCents, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := unit.Rooms().Save(ctx, r); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}
	return &UpdateRoomResult{Room: dto.MapRoom(r)}, nil
}

var _ commands.Handler[UpdateRoomCommand, *UpdateRoomResult] = (*UpdateRoomHandler)(nil)
