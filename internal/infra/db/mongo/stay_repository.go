package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainguest "hotelpremier/internal/domain/guest"
	domainreservation "hotelpremier/internal/domain/reservation"
	domainroom "hotelpremier/internal/domain/room"
	domainstay "hotelpremier/internal/domain/stay"
)

type StayRepository struct {
	col *mongo.Collection
}

func NewStayRepository(db *mongo.Database) *StayRepository {
	return &StayRepository{col: db.Collection("agg_stay")}
}

func (r *StayRepository) ByID(ctx context.Context, id domainstay.StayID) (*domainstay.Stay, error) {
	var doc stayDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainstay.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// InWindow fetches stays that touch the datetime window [from, to].
// Open-ended stays match on the check-in bound alone.
func (r *StayRepository) InWindow(ctx context.Context, from, to time.Time) ([]*domainstay.Stay, error) {
	query := bson.M{
		"check_in_at": bson.M{"$lte": to.UnixMilli()},
		"$or": []bson.M{
			{"actual_check_out_at": nil},
			{"actual_check_out_at": bson.M{"$gte": from.UnixMilli()}},
		},
	}
	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainstay.Stay
	for cursor.Next(ctx) {
		var doc stayDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *StayRepository) Save(ctx context.Context, s *domainstay.Stay) error {
	doc := newStayDocument(s)
	filter := bson.M{"_id": doc.ID, "version": s.Version}
	doc.Version = s.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	s.Version = doc.Version
	return nil
}

type stayDocument struct {
	ID               string   `bson:"_id"`
	RoomID           string   `bson:"room_id"`
	ResponsibleID    string   `bson:"responsible_id"`
	CompanionIDs     []string `bson:"companion_ids"`
	ReservationID    string   `bson:"reservation_id"`
	CheckInAt        int64    `bson:"check_in_at"`
	ActualCheckOutAt *int64   `bson:"actual_check_out_at"`
	ExpectedCheckOut *int64   `bson:"expected_check_out"`
	Version          int64    `bson:"version"`
}

func newStayDocument(s *domainstay.Stay) stayDocument {
	companions := make([]string, 0, len(s.CompanionIDs))
	for _, id := range s.CompanionIDs {
		companions = append(companions, string(id))
	}
	doc := stayDocument{
		ID:            string(s.ID),
		RoomID:        string(s.RoomID),
		ResponsibleID: string(s.ResponsibleID),
		CompanionIDs:  companions,
		ReservationID: string(s.ReservationID),
		CheckInAt:     s.CheckInAt.UnixMilli(),
		Version:       s.Version,
	}
	if s.ActualCheckOutAt != nil {
		ms := s.ActualCheckOutAt.UnixMilli()
		doc.ActualCheckOutAt = &ms
	}
	if s.ExpectedCheckOut != nil {
		ms := s.ExpectedCheckOut.UnixMilli()
		doc.ExpectedCheckOut = &ms
	}
	return doc
}

func (d stayDocument) toAggregate() *domainstay.Stay {
	companions := make([]domainguest.GuestID, 0, len(d.CompanionIDs))
	for _, id := range d.CompanionIDs {
		companions = append(companions, domainguest.GuestID(id))
	}
	s := &domainstay.Stay{
		ID:            domainstay.StayID(d.ID),
		RoomID:        domainroom.RoomID(d.RoomID),
		ResponsibleID: domainguest.GuestID(d.ResponsibleID),
		CompanionIDs:  companions,
		ReservationID: domainreservation.ReservationID(d.ReservationID),
		CheckInAt:     timestampToTime(d.CheckInAt),
		Version:       d.Version,
	}
	if d.ActualCheckOutAt != nil {
		t := timestampToTime(*d.ActualCheckOutAt)
		s.ActualCheckOutAt = &t
	}
	if d.ExpectedCheckOut != nil {
		t := timestampToTime(*d.ExpectedCheckOut)
		s.ExpectedCheckOut = &t
	}
	return s
}
