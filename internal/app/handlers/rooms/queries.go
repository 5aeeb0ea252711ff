package rooms

import (
	"context"

	"hotelpremier/internal/app/dto"
	"hotelpremier/internal/app/queries"
	"hotelpremier/internal/app/uow"
	domainroom "hotelpremier/internal/domain/room"
)

const (
	listRoomsKey     = "rooms.list"
	getRoomKey       = "rooms.get"
	listRoomsByIDKey = "rooms.list_by_id"
)

type ListRoomsQuery struct {
	Category string
}

func (q ListRoomsQuery) Key() string { return listRoomsKey }

type ListRoomsHandler struct {
	UoWFactory uow.UoWFactory
}

// Handle lists rooms, optionally narrowed to one category. A category
// outside the known set is an invalid request, not an empty result.
func (h *ListRoomsHandler) Handle(ctx context.Context, q ListRoomsQuery) ([]dto.Room, error) {
	filter := domainroom.Filter{}
	if q.Category != "" {
		cat, err := domainroom.ParseCategory(q.Category)
		if err != nil {
			return nil, err
		}
		filter.Category = cat
	}
	unit, err := readUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	rooms, err := unit.Rooms().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.MapRooms(rooms), nil
}

type GetRoomQuery struct {
	ID string
}

func (q GetRoomQuery) Key() string { return getRoomKey }

type GetRoomHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetRoomHandler) Handle(ctx context.Context, q GetRoomQuery) (dto.Room, error) {
	unit, err := readUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Room{}, err
	}
	r, err := unit.Rooms().ByID(ctx, domainroom.RoomID(q.ID))
	if err != nil {
		return dto.Room{}, err
	}
	return dto.MapRoom(r), nil
}

type ListRoomsByIDQuery struct {
	IDs []string
}

func (q ListRoomsByIDQuery) Key() string { return listRoomsByIDKey }

type ListRoomsByIDHandler struct {
	UoWFactory uow.UoWFactory
}

// Handle returns the rooms matching the given IDs. An empty list is an
// invalid request, rejected before the directory is consulted; IDs that
// match nothing are silently dropped from the result.
func (h *ListRoomsByIDHandler) Handle(ctx context.Context, q ListRoomsByIDQuery) ([]dto.Room, error) {
	if len(q.IDs) == 0 {
		return nil, domainroom.ErrEmptyIDList
	}
	unit, err := readUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	ids := make([]domainroom.RoomID, 0, len(q.IDs))
	for _, raw := range q.IDs {
		ids = append(ids, domainroom.RoomID(raw))
	}
	rooms, err := unit.Rooms().ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return dto.MapRooms(rooms), nil
}

func readUnit(ctx context.Context, factory uow.UoWFactory) (uow.UnitOfWork, error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, nil
	}
	if factory == nil {
		return nil, uow.ErrUnitOfWorkMissing
	}
	return factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
}

var _ queries.Handler[ListRoomsQuery, []dto.Room] = (*ListRoomsHandler)(nil)
var _ queries.Handler[GetRoomQuery, dto.Room] = (*GetRoomHandler)(nil)
var _ queries.Handler[ListRoomsByIDQuery, []dto.Room] = (*ListRoomsByIDHandler)(nil)
