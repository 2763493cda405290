package core

import "context"

// Gateway loads and saves the whole collection as a unit.
type Gateway interface {
	// Load fetches the previously saved collection.
	// It returns an empty collection, not an error, when nothing was saved yet.
	Load(ctx context.Context) (Collection, error)

	// Save serializes and stores the full collection, overwriting any prior value.
	Save(ctx context.Context, c Collection) error
}
