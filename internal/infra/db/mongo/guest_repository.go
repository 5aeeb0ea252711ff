package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainguest "hotelpremier/internal/domain/guest"
)

func replaceUpsert() *options.ReplaceOptions {
	return options.Replace().SetUpsert(true)
}

type GuestRepository struct {
	col *mongo.Collection
}

func NewGuestRepository(db *mongo.Database) *GuestRepository {
	return &GuestRepository{col: db.Collection("guests")}
}

func (r *GuestRepository) ByID(ctx context.Context, id domainguest.GuestID) (*domainguest.Guest, error) {
	var doc guestDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainguest.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *GuestRepository) ByIDs(ctx context.Context, ids []domainguest.GuestID) ([]*domainguest.Guest, error) {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, string(id))
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": raw}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainguest.Guest
	for cursor.Next(ctx) {
		var doc guestDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *GuestRepository) Save(ctx context.Context, g *domainguest.Guest) error {
	doc := guestDocument{
		ID:        string(g.ID),
		Name:      g.Name,
		Surname:   g.Surname,
		Phone:     g.Phone,
		BirthDate: g.BirthDate.UnixMilli(),
	}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, replaceUpsert())
	return err
}

type guestDocument struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Surname   string `bson:"surname"`
	Phone     string `bson:"phone"`
	BirthDate int64  `bson:"birth_date"`
}

func (d guestDocument) toAggregate() *domainguest.Guest {
	return &domainguest.Guest{
		ID:        domainguest.GuestID(d.ID),
		Name:      d.Name,
		Surname:   d.Surname,
		Phone:     d.Phone,
		BirthDate: timestampToTime(d.BirthDate),
	}
}
