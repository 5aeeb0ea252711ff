package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainguest "hotelpremier/internal/domain/guest"
	domainreservation "hotelpremier/internal/domain/reservation"
	domainroom "hotelpremier/internal/domain/room"
	domainrange "hotelpremier/internal/domain/shared/daterange"
	domainstay "hotelpremier/internal/domain/stay"
)

// RoomRepository is an in-memory room directory.
type RoomRepository struct {
	mu    sync.RWMutex
	items map[domainroom.RoomID]*domainroom.Room
}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{items: make(map[domainroom.RoomID]*domainroom.Room)}
}

func (r *RoomRepository) ByID(ctx context.Context, id domainroom.RoomID) (*domainroom.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.items[id]
	if !ok {
		return nil, domainroom.ErrNotFound
	}
	return rm, nil
}

// ByIDs returns the rooms found for the given IDs; unknown IDs are
// dropped, mirroring a findAllById-style query.
func (r *RoomRepository) ByIDs(ctx context.Context, ids []domainroom.RoomID) ([]*domainroom.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainroom.Room, 0, len(ids))
	for _, id := range ids {
		if rm, ok := r.items[id]; ok {
			out = append(out, rm)
		}
	}
	return out, nil
}

func (r *RoomRepository) List(ctx context.Context, filter domainroom.Filter) ([]*domainroom.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainroom.Room, 0, len(r.items))
	for _, rm := range r.items {
		if filter.Matches(rm) {
			out = append(out, rm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RoomRepository) Save(ctx context.Context, rm *domainroom.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[rm.ID] = rm
	return nil
}

// ReservationRepository keeps reservations in memory, in insertion order
// so "first match" lookups stay stable.
type ReservationRepository struct {
	mu    sync.RWMutex
	items []*domainreservation.Reservation
	index map[domainreservation.ReservationID]*domainreservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{index: make(map[domainreservation.ReservationID]*domainreservation.Reservation)}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.index[id]
	if !ok {
		return nil, domainreservation.ErrNotFound
	}
	return res, nil
}

func (r *ReservationRepository) InWindow(ctx context.Context, from, to time.Time) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	from = domainrange.Day(from)
	to = domainrange.Day(to)
	var out []*domainreservation.Reservation
	for _, res := range r.items {
		if !res.Range.Ingress.After(to) && !res.Range.Egress.Before(from) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *ReservationRepository) ForRoom(ctx context.Context, id domainroom.RoomID) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainreservation.Reservation
	for _, res := range r.items {
		if res.IncludesRoom(id) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[res.ID]; !ok {
		r.items = append(r.items, res)
	}
	r.index[res.ID] = res
	return nil
}

// StayRepository keeps stays in memory.
type StayRepository struct {
	mu    sync.RWMutex
	items map[domainstay.StayID]*domainstay.Stay
}

func NewStayRepository() *StayRepository {
	return &StayRepository{items: make(map[domainstay.StayID]*domainstay.Stay)}
}

func (r *StayRepository) ByID(ctx context.Context, id domainstay.StayID) (*domainstay.Stay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, domainstay.ErrNotFound
	}
	return s, nil
}

func (r *StayRepository) InWindow(ctx context.Context, from, to time.Time) ([]*domainstay.Stay, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainstay.Stay
	for _, s := range r.items {
		if s.CheckInAt.After(to) {
			continue
		}
		if s.ActualCheckOutAt != nil && s.ActualCheckOutAt.Before(from) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *StayRepository) Save(ctx context.Context, s *domainstay.Stay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.ID] = s
	return nil
}

// GuestRepository is an in-memory guest directory.
type GuestRepository struct {
	mu    sync.RWMutex
	items map[domainguest.GuestID]*domainguest.Guest
}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{items: make(map[domainguest.GuestID]*domainguest.Guest)}
}

func (r *GuestRepository) ByID(ctx context.Context, id domainguest.GuestID) (*domainguest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.items[id]
	if !ok {
		return nil, domainguest.ErrNotFound
	}
	return g, nil
}

func (r *GuestRepository) ByIDs(ctx context.Context, ids []domainguest.GuestID) ([]*domainguest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainguest.Guest, 0, len(ids))
	for _, id := range ids {
		if g, ok := r.items[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *GuestRepository) Save(ctx context.Context, g *domainguest.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[g.ID] = g
	return nil
}

var (
	_ domainroom.Repository        = (*RoomRepository)(nil)
	_ domainreservation.Repository = (*ReservationRepository)(nil)
	_ domainstay.Repository        = (*StayRepository)(nil)
	_ domainguest.Directory        = (*GuestRepository)(nil)
)
