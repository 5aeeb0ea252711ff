package uow

import (
	"context"

	domainguest "hotelpremier/internal/domain/guest"
	domainreservation "hotelpremier/internal/domain/reservation"
	domainroom "hotelpremier/internal/domain/room"
	domainstay "hotelpremier/internal/domain/stay"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Rooms() domainroom.Repository
	Reservations() domainreservation.Repository
	Stays() domainstay.Repository
	Guests() domainguest.Directory

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
