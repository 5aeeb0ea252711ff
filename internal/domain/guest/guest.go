package guest

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("guest: not found")

type GuestID string

// Guest is a registered person in the hotel directory. Registration and
// document management live outside this engine; the directory only needs
// to supply identity and birth date.
type Guest struct {
	ID        GuestID
	Name      string
	Surname   string
	Phone     string
	BirthDate time.Time
}

type Directory interface {
	ByID(ctx context.Context, id GuestID) (*Guest, error)
	ByIDs(ctx context.Context, ids []GuestID) ([]*Guest, error)
	Save(ctx context.Context, guest *Guest) error
}

// Age returns the guest's age in whole years as of the given date.
func (g *Guest) Age(today time.Time) int {
	today = today.UTC()
	birth := g.BirthDate.UTC()
	years := today.Year() - birth.Year()
	anniversary := time.Date(today.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	if anniversary.After(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)) {
		years--
	}
	return years
}
