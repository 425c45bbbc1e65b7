package catalog

import (
	"context"

	"github.com/streamflix/catalog/internal/domain"
)

// Repository defines the storage contract for catalog browsing and the demo
// admin operations.
type Repository interface {
	List(ctx context.Context) ([]domain.Movie, error)
	Get(ctx context.Context, id string) (domain.Movie, error)
	Seed(ctx context.Context) error
	Clear(ctx context.Context) error
}
