package availability

import (
	"context"
	"errors"
	"time"

	"hotelpremier/internal/app/dto"
	"hotelpremier/internal/app/queries"
	"hotelpremier/internal/app/uow"
	domainavailability "hotelpremier/internal/domain/availability"
	domainguest "hotelpremier/internal/domain/guest"
	domainroom "hotelpremier/internal/domain/room"
	domainrange "hotelpremier/internal/domain/shared/daterange"
)

const getDetailKey = "availability.detail"

var ErrRoomNameRequired = errors.New("availability: room name required")

type GetDetailQuery struct {
	RoomName string
	Date     time.Time
}

func (q GetDetailQuery) Key() string { return getDetailKey }

type GetDetailHandler struct {
	UoWFactory uow.UoWFactory
}

// Handle resolves the guest identity behind the reservation active on a
// room and date. A missing registered guest degrades to the
// reservation's denormalized fields rather than failing.
func (h *GetDetailHandler) Handle(ctx context.Context, q GetDetailQuery) (dto.ReservationDetail, error) {
	if q.RoomName == "" {
		return dto.ReservationDetail{}, ErrRoomNameRequired
	}
	if q.Date.IsZero() {
		return dto.ReservationDetail{}, domainavailability.ErrBadWindow
	}

	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.ReservationDetail{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.ReservationDetail{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	day := domainrange.Day(q.Date)

	rooms, err := unit.Rooms().List(ctx, domainroom.Filter{})
	if err != nil {
		return dto.ReservationDetail{}, err
	}
	var target *domainroom.Room
	for _, r := range rooms {
		if r.Name == q.RoomName {
			target = r
			break
		}
	}
	if target == nil {
		return dto.ReservationDetail{}, domainroom.ErrNotFound
	}

	reservations, err := unit.Reservations().InWindow(ctx, day, day)
	if err != nil {
		return dto.ReservationDetail{}, err
	}
	covering := domainavailability.CoveringRoomOn(reservations, target.ID, day)
	if len(covering) == 0 {
		return dto.ReservationDetail{}, domainavailability.ErrNoActiveReservation
	}

	var registered *domainguest.Guest
	if covering[0].GuestID != "" {
		registered, err = unit.Guests().ByID(ctx, covering[0].GuestID)
		if err != nil && !errors.Is(err, domainguest.ErrNotFound) {
			return dto.ReservationDetail{}, err
		}
	}

	detail, err := domainavailability.DetailFor(covering, registered)
	if err != nil {
		return dto.ReservationDetail{}, err
	}
	return dto.MapReservationDetail(detail), nil
}

var _ queries.Handler[GetDetailQuery, dto.ReservationDetail] = (*GetDetailHandler)(nil)
