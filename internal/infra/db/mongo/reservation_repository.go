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
	domainrange "hotelpremier/internal/domain/shared/daterange"
)

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("agg_reservation")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

// InWindow fetches reservations whose inclusive range touches [from, to].
func (r *ReservationRepository) InWindow(ctx context.Context, from, to time.Time) ([]*domainreservation.Reservation, error) {
	query := bson.M{
		"range.ingress": bson.M{"$lte": domainrange.Day(to).UnixMilli()},
		"range.egress":  bson.M{"$gte": domainrange.Day(from).UnixMilli()},
	}
	cursor, err := r.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	return decodeReservations(ctx, cursor)
}

func (r *ReservationRepository) ForRoom(ctx context.Context, id domainroom.RoomID) ([]*domainreservation.Reservation, error) {
	cursor, err := r.col.Find(ctx, bson.M{"room_ids": string(id)}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeReservations(ctx, cursor)
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

func decodeReservations(ctx context.Context, cursor *mongo.Cursor) ([]*domainreservation.Reservation, error) {
	defer cursor.Close(ctx)
	var out []*domainreservation.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type reservationDocument struct {
	ID           string        `bson:"_id"`
	GuestID      string        `bson:"guest_id"`
	GuestName    string        `bson:"guest_name"`
	GuestSurname string        `bson:"guest_surname"`
	GuestPhone   string        `bson:"guest_phone"`
	RoomIDs      []string      `bson:"room_ids"`
	Range        rangeDocument `bson:"range"`
	CreatedAt    int64         `bson:"created_at"`
	Version      int64         `bson:"version"`
}

type rangeDocument struct {
	Ingress int64 `bson:"ingress"`
	Egress  int64 `bson:"egress"`
}

func newReservationDocument(res *domainreservation.Reservation) reservationDocument {
	roomIDs := make([]string, 0, len(res.RoomIDs))
	for _, id := range res.RoomIDs {
		roomIDs = append(roomIDs, string(id))
	}
	return reservationDocument{
		ID:           string(res.ID),
		GuestID:      string(res.GuestID),
		GuestName:    res.GuestName,
		GuestSurname: res.GuestSurname,
		GuestPhone:   res.GuestPhone,
		RoomIDs:      roomIDs,
		Range:        rangeDocument{Ingress: res.Range.Ingress.UnixMilli(), Egress: res.Range.Egress.UnixMilli()},
		CreatedAt:    res.CreatedAt.UnixMilli(),
		Version:      res.Version,
	}
}

func (d reservationDocument) toAggregate() *domainreservation.Reservation {
	roomIDs := make([]domainroom.RoomID, 0, len(d.RoomIDs))
	for _, id := range d.RoomIDs {
		roomIDs = append(roomIDs, domainroom.RoomID(id))
	}
	return &domainreservation.Reservation{
		ID:           domainreservation.ReservationID(d.ID),
		GuestID:      domainguest.GuestID(d.GuestID),
		GuestName:    d.GuestName,
		GuestSurname: d.GuestSurname,
		GuestPhone:   d.GuestPhone,
		RoomIDs:      roomIDs,
		Range: domainrange.DateRange{
			Ingress: timestampToTime(d.Range.Ingress),
			Egress:  timestampToTime(d.Range.Egress),
		},
		CreatedAt: timestampToTime(d.CreatedAt),
		Version:   d.Version,
	}
}
