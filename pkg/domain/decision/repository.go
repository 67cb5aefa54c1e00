package decision

import (
	"context"
)

type Repository interface {
	// List returns up to limit decisions starting at offset, ordered by
	// primary key so repeated pages never overlap.
	List(ctx context.Context, offset, limit int) ([]Decision, error)
	Count(ctx context.Context) (int64, error)
	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
