// Package store persists named graph snapshots.
//
// A snapshot is a built graph plus identifying metadata, saved so the HTTP
// API can serve and re-filter graphs without re-uploading declarations.
// Two backends are provided: [MemoryStore] for tests and single-process
// serving, and [MongoStore] for durable multi-process deployments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/injectograph/injectograph/pkg/digraph"
	"github.com/injectograph/injectograph/pkg/errors"
)

// Snapshot is a stored graph with identifying metadata.
type Snapshot struct {
	ID        string        `json:"id" bson:"_id"`
	Name      string        `json:"name" bson:"name"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Graph     digraph.Graph `json:"graph" bson:"graph"`
}

// Info is snapshot metadata without the graph payload, for listings.
type Info struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	NodeCount int       `json:"node_count" bson:"node_count"`
	EdgeCount int       `json:"edge_count" bson:"edge_count"`
}

// Store persists snapshots. Implementations must be safe for concurrent
// use.
type Store interface {
	// Save stores a snapshot, overwriting any existing one with the same ID.
	Save(ctx context.Context, s Snapshot) error

	// Get returns the snapshot with the given ID, or an
	// ErrCodeSnapshotNotFound error.
	Get(ctx context.Context, id string) (Snapshot, error)

	// List returns metadata for all snapshots, newest first.
	List(ctx context.Context) ([]Info, error)

	// Delete removes a snapshot. Deleting a missing ID returns an
	// ErrCodeSnapshotNotFound error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}

// NewSnapshot assembles a snapshot with a fresh UUID and the current time.
func NewSnapshot(name string, g digraph.Graph) Snapshot {
	return Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Graph:     g,
	}
}

// ErrNotFound builds the canonical not-found error for a snapshot ID.
func ErrNotFound(id string) error {
	return errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %q not found", id)
}

// InfoOf projects a snapshot to its listing metadata.
func InfoOf(s Snapshot) Info {
	return Info{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		NodeCount: len(s.Graph.Nodes),
		EdgeCount: len(s.Graph.Edges),
	}
}
