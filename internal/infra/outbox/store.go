package outbox

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appoutbox "hotelpremier/internal/app/outbox"
)

const (
	statusPending = "pending"
	statusSending = "sending"
	statusSent    = "sent"
)

// EventDocument is the persisted form of an outbox record.
type EventDocument struct {
	ID         string            `bson:"_id"`
	Name       string            `bson:"name"`
	Payload    []byte            `bson:"payload"`
	Aggregate  string            `bson:"aggregate"`
	OccurredAt time.Time         `bson:"occurred_at"`
	Status     string            `bson:"status"`
	Attempts   int               `bson:"attempts"`
	NextRetry  time.Time         `bson:"next_retry"`
	ClaimedBy  string            `bson:"claimed_by,omitempty"`
	LastError  string            `bson:"last_error,omitempty"`
	Headers    map[string]string `bson:"headers,omitempty"`
}

// Store persists outbox records in Mongo. Records are inserted inside
// the command transaction; a background worker claims and publishes
// them, so Flush has nothing left to do here.
type Store struct {
	col *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{col: db.Collection("outbox_events")}
}

func (s *Store) Add(ctx context.Context, record appoutbox.EventRecord) error {
	doc := EventDocument{
		ID:         record.ID,
		Name:       record.Name,
		Payload:    record.Payload,
		Aggregate:  record.Aggregate,
		OccurredAt: record.OccurredAt,
		Status:     statusPending,
		NextRetry:  time.Now(),
		Headers:    record.Headers,
	}
	_, err := s.col.InsertOne(ctx, doc)
	return err
}

func (s *Store) Flush(ctx context.Context) error {
	return nil
}

// Claim atomically takes one due pending record for the given worker.
// A nil document means nothing is due.
func (s *Store) Claim(ctx context.Context, workerID string) (*EventDocument, error) {
	filter := bson.M{
		"status":     statusPending,
		"next_retry": bson.M{"$lte": time.Now()},
	}
	update := bson.M{"$set": bson.M{"status": statusSending, "claimed_by": workerID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetSort(bson.D{{Key: "occurred_at", Value: 1}})
	var doc EventDocument
	err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (s *Store) MarkSent(ctx context.Context, id string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": statusSent}})
	return err
}

func (s *Store) MarkFailed(ctx context.Context, id string, nextRetry time.Time, reason string) error {
	update := bson.M{
		"$set": bson.M{"status": statusPending, "next_retry": nextRetry, "last_error": reason},
		"$inc": bson.M{"attempts": 1},
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

var _ appoutbox.Outbox = (*Store)(nil)
