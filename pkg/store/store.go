// Package store persists assembled diagram documents.
//
// Two backends are provided: a MongoDB store for the API deployment and
// an in-memory store for tests and single-process usage. Records carry
// the full document, so a stored diagram can be re-rendered to any
// output format without re-running the layout engine.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/errors"
)

// Record is one persisted diagram.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Title     string           `json:"title" bson:"title"`
	Document  diagram.Document `json:"document" bson:"document"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// Store is the interface for diagram persistence backends.
type Store interface {
	// Put stores a document under a fresh id and returns the record.
	Put(ctx context.Context, doc diagram.Document) (Record, error)

	// Get retrieves a record by id. Returns a NOT_FOUND error when no
	// record exists.
	Get(ctx context.Context, id string) (Record, error)

	// List returns the most recent records, newest first. A limit of
	// zero selects the backend default.
	List(ctx context.Context, limit int64) ([]Record, error)

	// Delete removes a record. Deleting an absent id returns NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DefaultListLimit bounds List when the caller passes zero.
const DefaultListLimit = 50

// newRecord wraps a document in a record with a fresh id.
func newRecord(doc diagram.Document) Record {
	return Record{
		ID:        uuid.NewString(),
		Title:     doc.Title,
		Document:  doc,
		CreatedAt: time.Now().UTC(),
	}
}

// errNotFound builds the standard missing-record error.
func errNotFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "diagram %s not found", id)
}
