package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainroom "hotelpremier/internal/domain/room"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection("agg_room")}
}

func (r *RoomRepository) ByID(ctx context.Context, id domainroom.RoomID) (*domainroom.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainroom.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *RoomRepository) ByIDs(ctx context.Context, ids []domainroom.RoomID) ([]*domainroom.Room, error) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": raw}})
	if err != nil {
		return nil, err
	}
	return decodeRooms(ctx, cursor)
}

func (r *RoomRepository) List(ctx context.Context, filter domainroom.Filter) ([]*domainroom.Room, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	cursor, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeRooms(ctx, cursor)
}

func (r *RoomRepository) Save(ctx context.Context, rm *domainroom.Room) error {
	doc := newRoomDocument(rm)
	filter := bson.M{"_id": doc.ID, "version": rm.Version}
	doc.Version = rm.Version + 1
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
	rm.Version = doc.Version
	return nil
}

func decodeRooms(ctx context.Context, cursor *mongo.Cursor) ([]*domainroom.Room, error) {
	defer cursor.Close(ctx)
	var out []*domainroom.Room
	for cursor.Next(ctx) {
		var doc roomDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type roomDocument struct {
	ID         string `bson:"_id"`
	Name       string `bson:"name"`
	Category   string `bson:"category"`
	PriceCents int64  `bson:"price_cents"`
	Status     string `bson:"status"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
	Version    int64  `bson:"version"`
}

func newRoomDocument(rm *domainroom.Room) roomDocument {
	return roomDocument{
		ID:         string(rm.ID),
		Name:       rm.Name,
		Category:   string(rm.Category),
		PriceCents: rm.PriceCents,
		Status:     string(rm.Status),
		CreatedAt:  rm.CreatedAt.UnixMilli(),
		UpdatedAt:  rm.UpdatedAt.UnixMilli(),
		Version:    rm.Version,
	}
}

func (d roomDocument) toAggregate() *domainroom.Room {
	return &domainroom.Room{
		ID:         domainroom.RoomID(d.ID),
		Name:       d.Name,
		Category:   domainroom.Category(d.Category),
		PriceCents: d.PriceCents,
		Status:     domainroom.Status(d.Status),
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		Version:    d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
