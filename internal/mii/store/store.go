package store

import (
	"context"

	"miigate/internal/mii/models"
)

// Store is the per-user Mii record surface. Records are keyed by username;
// SetMii always rewrites the whole record, there is no partial-field update.
type Store interface {
	// GetMii returns the record for a username, or sentinel.ErrNotFound.
	GetMii(ctx context.Context, username string) (models.MiiRecord, error)
	// SetMii replaces the record for a username. Creating the user row is
	// the account layer's job; an unknown username is sentinel.ErrNotFound.
	SetMii(ctx context.Context, username string, record models.MiiRecord) error
}
