package memory

import (
	"context"
	"sync"

	"hotelpremier/internal/app/outbox"
)

// Publisher receives flushed outbox records.
type Publisher interface {
	Publish(ctx context.Context, rec outbox.EventRecord) error
}

// Outbox buffers event records in memory and hands them to a publisher
// on flush. Records that fail to publish stay queued for the next flush.
type Outbox struct {
	mu        sync.Mutex
	pending   []outbox.EventRecord
	publisher Publisher
}

func NewOutbox(publisher Publisher) *Outbox {
	return &Outbox{publisher: publisher}
}

func (o *Outbox) Add(ctx context.Context, rec outbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, rec)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	batch := o.pending
	o.pending = nil
	o.mu.Unlock()

	if o.publisher == nil {
		return nil
	}
	for i, rec := range batch {
		if err := o.publisher.Publish(ctx, rec); err != nil {
			o.mu.Lock()
			o.pending = append(batch[i:], o.pending...)
			o.mu.Unlock()
			return err
		}
	}
	return nil
}

// Pending returns a snapshot of the queued records.
func (o *Outbox) Pending() []outbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]outbox.EventRecord, len(o.pending))
	copy(out, o.pending)
	return out
}

var _ outbox.Outbox = (*Outbox)(nil)
