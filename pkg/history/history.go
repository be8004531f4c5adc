// Package history records every generated inscription.
//
// The CLI appends to a generated-files.json next to its output; the server
// can use MongoDB instead. Both implement [Store].
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by [Store.Get] for unknown IDs.
var ErrNotFound = errors.New("history entry not found")

// Entry is one generated inscription.
type Entry struct {
	ID            string    `json:"id" bson:"_id"`
	Text          string    `json:"text" bson:"text"`
	Style         string    `json:"style" bson:"style"`
	Explanation   string    `json:"explanation" bson:"explanation"`
	ImageFile     string    `json:"imageFile,omitempty" bson:"image_file,omitempty"`
	Seed          uint64    `json:"seed" bson:"seed"`
	Intersections int       `json:"intersections" bson:"intersections"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
}

// NewEntry returns an entry with a fresh ID and the current time.
func NewEntry(text, style, explanation string, seed uint64) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Text:        text,
		Style:       style,
		Explanation: explanation,
		Seed:        seed,
		CreatedAt:   time.Now().UTC(),
	}
}

// Store persists entries.
type Store interface {
	// Add stores e. Entries without an ID get one.
	Add(ctx context.Context, e Entry) (Entry, error)

	// List returns up to limit entries, newest first. A limit of zero or
	// less returns all.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Get returns the entry with the given ID or [ErrNotFound].
	Get(ctx context.Context, id string) (Entry, error)

	Close(ctx context.Context) error
}

func prepare(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	return e
}
