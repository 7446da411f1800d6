// Package store provides persistence for photo libraries.
//
// A library is a named, ordered photo collection together with the
// listing metadata needed to lay it out. The Store interface has two
// backends:
//   - file: JSON files in a config directory for CLI usage
//   - mongo: MongoDB for server deployments
//
// # Usage
//
// Create a store:
//
//	// CLI
//	st, err := store.NewFileStore("")  // Uses ~/.config/photogrid/libraries/
//
//	// Server
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "photogrid")
//
// Manage libraries:
//
//	lib := store.NewLibrary("vacation", photos)
//	if err := st.Set(ctx, lib); err != nil {
//	    return err
//	}
//
//	lib, err := st.GetByName(ctx, "vacation")
//	if errors.Is(err, store.ErrNotFound) {
//	    // No such library
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mhartig/photogrid/pkg/photogrid"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a library does not exist.
	ErrNotFound = errors.New("not found")
)

// Library is a named, ordered photo collection.
type Library struct {
	ID        uuid.UUID                   `json:"id" bson:"_id"`
	Name      string                      `json:"name" bson:"name"`
	Photos    []photogrid.PhotoLayoutData `json:"photos" bson:"photos"`
	UpdatedAt time.Time                   `json:"updated_at" bson:"updated_at"`
}

// NewLibrary creates a library with a fresh ID.
func NewLibrary(name string, photos []photogrid.PhotoLayoutData) *Library {
	return &Library{
		ID:        uuid.New(),
		Name:      name,
		Photos:    photos,
		UpdatedAt: time.Now().UTC(),
	}
}

// Store is the interface for library storage backends.
type Store interface {
	// Get retrieves a library by ID.
	// Returns ErrNotFound if the library doesn't exist.
	Get(ctx context.Context, id uuid.UUID) (*Library, error)

	// GetByName retrieves a library by name.
	// Returns ErrNotFound if no library has that name.
	GetByName(ctx context.Context, name string) (*Library, error)

	// Set stores a library, replacing any existing library with the
	// same ID. UpdatedAt is refreshed on write.
	Set(ctx context.Context, lib *Library) error

	// Delete removes a library. Deleting a missing library is not an
	// error.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all library names in unspecified order.
	List(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}
