package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// Query is the composable filter the gateway supports: one equality
// predicate, one sort field with direction, and a result-count cap.
// Zero values mean "unfiltered", "unsorted" and "uncapped".
type Query struct {
	Field string
	Value any

	Sort string
	Desc bool

	Limit int64
}

type createOptions struct {
	id string
}

// CreateOption customizes document creation.
type CreateOption func(*createOptions)

// WithID forces an explicit document id (used for phone-number-keyed users).
func WithID(id string) CreateOption {
	return func(o *createOptions) { o.id = id }
}

// Store is the persistence gateway every domain service runs through.
type Store interface {
	// Create inserts doc and returns its id. Without WithID the store
	// generates one.
	Create(ctx context.Context, collection string, doc any, opts ...CreateOption) (string, error)

	// GetByID decodes the document with the given id into out.
	GetByID(ctx context.Context, collection, id string, out any) error

	// Find decodes all documents matching q into out (a pointer to a slice).
	Find(ctx context.Context, collection string, q Query, out any) error

	// FindByIDs is the batched multi-document fetch; missing ids are skipped.
	FindByIDs(ctx context.Context, collection string, ids []string, out any) error

	// Update sets the given top-level fields on the document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Delete hard-deletes the document.
	Delete(ctx context.Context, collection, id string) error
}
