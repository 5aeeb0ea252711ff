package memory

import (
	"context"

	"hotelpremier/internal/app/uow"
	domainguest "hotelpremier/internal/domain/guest"
	domainreservation "hotelpremier/internal/domain/reservation"
	domainroom "hotelpremier/internal/domain/room"
	domainstay "hotelpremier/internal/domain/stay"
)

// Store bundles the in-memory repositories behind a unit of work
// factory. Writes apply immediately, so Commit and Rollback are no-ops;
// the factory exists to satisfy the transaction middleware contract.
type Store struct {
	rooms        *RoomRepository
	reservations *ReservationRepository
	stays        *StayRepository
	guests       *GuestRepository
}

func NewStore() *Store {
	return &Store{
		rooms:        NewRoomRepository(),
		reservations: NewReservationRepository(),
		stays:        NewStayRepository(),
		guests:       NewGuestRepository(),
	}
}

func (s *Store) Rooms() *RoomRepository               { return s.rooms }
func (s *Store) Reservations() *ReservationRepository { return s.reservations }
func (s *Store) Stays() *StayRepository               { return s.stays }
func (s *Store) Guests() *GuestRepository             { return s.guests }

func (s *Store) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	return &unit{store: s}, nil
}

type unit struct {
	store *Store
}

func (u *unit) Rooms() domainroom.Repository               { return u.store.rooms }
func (u *unit) Reservations() domainreservation.Repository { return u.store.reservations }
func (u *unit) Stays() domainstay.Repository               { return u.store.stays }
func (u *unit) Guests() domainguest.Directory              { return u.store.guests }

func (u *unit) Commit(ctx context.Context) error   { return nil }
func (u *unit) Rollback(ctx context.Context) error { return nil }

var _ uow.UoWFactory = (*Store)(nil)
