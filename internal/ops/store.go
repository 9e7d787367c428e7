package ops

import (
	"context"

	"github.com/jacksmith/mealmix/internal/model"
)

// Store defines the key-value persistence required by business logic
// operations. The concrete implementations live in the storage package
// (file, sqlite, redis, memory).
type Store interface {
	// Get returns the value under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// RecipeSource fetches recipes from the remote recipe service.
type RecipeSource interface {
	// Random returns one random recipe.
	Random(ctx context.Context) (*model.Recipe, error)
	// SearchByName returns zero or more recipes matching name.
	SearchByName(ctx context.Context, name string) ([]model.Recipe, error)
}

// RemixSource asks a language model for a themed variation of a recipe.
type RemixSource interface {
	Remix(ctx context.Context, r *model.Recipe, theme string) (string, error)
}
