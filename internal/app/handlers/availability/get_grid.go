package availability

import (
	"context"
	"time"

	"hotelpremier/internal/app/dto"
	"hotelpremier/internal/app/queries"
	"hotelpremier/internal/app/uow"
	domainavailability "hotelpremier/internal/domain/availability"
	domainroom "hotelpremier/internal/domain/room"
	domainrange "hotelpremier/internal/domain/shared/daterange"
)

const getGridKey = "availability.grid"

type GetGridQuery struct {
	From     time.Time
	To       time.Time
	Category string
}

func (q GetGridQuery) Key() string { return getGridKey }

type GetGridHandler struct {
	UoWFactory uow.UoWFactory
}

// Handle materializes the availability grid for the requested window.
// The window is validated before any repository is consulted.
func (h *GetGridHandler) Handle(ctx context.Context, q GetGridQuery) (dto.Grid, error) {
	if err := domainavailability.ValidateWindow(q.From, q.To); err != nil {
		return dto.Grid{}, err
	}
	filter := domainroom.Filter{}
	if q.Category != "" {
		cat, err := domainroom.ParseCategory(q.Category)
		if err != nil {
			return dto.Grid{}, err
		}
		filter.Category = cat
	}

	unit, ok := uow.FromContext(ctx)
	if !ok {
		if h.UoWFactory == nil {
			return dto.Grid{}, uow.ErrUnitOfWorkMissing
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{ReadOnly: true})
		if err != nil {
			return dto.Grid{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		defer unit.Rollback(ctx)
	}

	from := domainrange.Day(q.From)
	to := domainrange.Day(q.To)

	rooms, err := unit.Rooms().List(ctx, filter)
	if err != nil {
		return dto.Grid{}, err
	}
	reservations, err := unit.Reservations().InWindow(ctx, from, to)
	if err != nil {
		return dto.Grid{}, err
	}
	// the stay window is a datetime range: start of the first day through
	// the last minute of the last day, as stays carry timestamps
	stays, err := unit.Stays().InWindow(ctx, from, to.Add(23*time.Hour+59*time.Minute))
	if err != nil {
		return dto.Grid{}, err
	}

	grid, err := domainavailability.BuildGrid(rooms, reservations, stays, from, to)
	if err != nil {
		return dto.Grid{}, err
	}
	return dto.MapGrid(grid), nil
}

var _ queries.Handler[GetGridQuery, dto.Grid] = (*GetGridHandler)(nil)
