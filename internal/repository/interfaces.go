package repository

import (
	"context"

	"github.com/rpggio/stint/internal/domain/catalog"
	"github.com/rpggio/stint/internal/domain/timeline"
)

// Store persists one user's timeline state. State is loaded whole at the
// start of a command and saved whole at the end; the engine never touches
// the store while it runs.
type Store interface {
	// Load deserializes the user's log and catalog. Returns ErrNotFound
	// for a user with no persisted state.
	Load(ctx context.Context, user string) (*timeline.Log, *catalog.Catalog, error)

	// Save serializes the user's log and catalog, replacing the previous
	// version without corrupting it on a mid-write crash. Returns the
	// location written to.
	Save(ctx context.Context, user string, log *timeline.Log, cat *catalog.Catalog) (string, error)

	// DefaultUser resolves the persisted default-user preference,
	// creating it on first use.
	DefaultUser(ctx context.Context) (string, error)
}
