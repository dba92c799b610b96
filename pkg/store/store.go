// Package store persists diagram snapshots for the HTTP API.
//
// A snapshot is the exported graph (nodes with final positions and
// kinds, plus edges) together with the source text it was extracted
// from. The core pipeline retains no state across calls; the store only
// keeps what a client explicitly saves.
//
// Two backends are provided: an in-memory store for development and
// single-process deployments, and a MongoDB store for anything shared.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/tillvoss/archsketch/pkg/sketch"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a diagram does not exist.
	ErrNotFound = errors.New("diagram not found")
)

// Diagram is a persisted snapshot of a sketch.
type Diagram struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name" bson:"name"`
	Text      string           `json:"text" bson:"text"`
	Graph     sketch.GraphJSON `json:"graph" bson:"graph"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for snapshot backends.
type Store interface {
	// Save inserts or replaces a diagram by ID.
	Save(ctx context.Context, d *Diagram) error

	// Get retrieves a diagram by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Diagram, error)

	// List returns all diagrams ordered by most recent update.
	List(ctx context.Context) ([]*Diagram, error)

	// Delete removes a diagram. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
