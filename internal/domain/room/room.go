package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelpremier/internal/domain/shared/events"
)

var (
	ErrNotFound        = errors.New("room: not found")
	ErrEmptyIDList     = errors.New("room: id list must not be empty")
	ErrInvalidName     = errors.New("room: display name required")
	ErrUnknownCategory = errors.New("room: unknown category")
)

type RoomID string

// Category is the fixed set of room types offered by the property.
type Category string

const (
	CategorySingleStandard     Category = "INDIVIDUAL_ESTANDAR"
	CategoryDoubleStandard     Category = "DOBLE_ESTANDAR"
	CategoryDoubleSuperior     Category = "DOBLE_SUPERIOR"
	CategorySuperiorFamilyPlan Category = "SUPERIOR_FAMILY_PLAN"
	CategoryDoubleSuite        Category = "SUITE_DOBLE"
)

// ParseCategory maps a raw string onto the category set. Values outside
// the set are rejected rather than treated as a filter that matches
// nothing.
func ParseCategory(raw string) (Category, error) {
	switch c := Category(raw); c {
	case CategorySingleStandard,
		CategoryDoubleStandard,
		CategoryDoubleSuperior,
		CategorySuperiorFamilyPlan,
		CategoryDoubleSuite:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// Status is the cached room state. It is advisory only: availability
// queries always derive the state for a given day from stay and
// reservation intervals, never from this field.
type Status string

const (
	StatusFree     Status = "FREE"
	StatusReserved Status = "RESERVED"
	StatusOccupied Status = "OCCUPIED"
)

type Room struct {
	ID         RoomID
	Name       string
	Category   Category
	PriceCents int64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id RoomID) (*Room, error)
	ByIDs(ctx context.Context, ids []RoomID) ([]*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, error)
	Save(ctx context.Context, room *Room) error
}

// Filter narrows room listings. A zero Filter matches every room.
type Filter struct {
	Category Category
}

func (f Filter) Matches(r *Room) bool {
	return f.Category == "" || r.Category == f.Category
}

type CreateParams struct {
	ID         RoomID
	Name       string
	Category   Category
	PriceCents int64
	Now        time.Time
}

func New(params CreateParams) (*Room, error) {
	if params.Name == "" {
		return nil, ErrInvalidName
	}
	now := params.Now.UTC()
	return &Room{
		ID:         params.ID,
		Name:       params.Name,
		Category:   params.Category,
		PriceCents: params.PriceCents,
		Status:     StatusFree,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// UpdateDetails changes the administrative display data of the room.
func (r *Room) UpdateDetails(name string, category Category, priceCents int64, now time.Time) error {
	if name == "" {
		return ErrInvalidName
	}
	r.Name = name
	if category != "" {
		r.Category = category
	}
	if priceCents > 0 {
		r.PriceCents = priceCents
	}
	r.UpdatedAt = now.UTC()
	return nil
}

// MarkStatus updates the cached status hint and records the transition.
func (r *Room) MarkStatus(status Status, now time.Time) {
	if r.Status == status {
		return
	}
	previous := r.Status
	r.Status = status
	r.UpdatedAt = now.UTC()
	r.Record(StatusChanged{RoomID: r.ID, From: previous, To: status, At: r.UpdatedAt})
}
