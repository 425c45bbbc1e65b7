package search

import (
	"context"

	"github.com/streamflix/catalog/internal/domain"
	"github.com/streamflix/catalog/internal/domain/search/filter"
)

// Repository defines the storage contract for catalog search. Search and
// Count must be compiled from the same filter value so the count describes
// the universe the rows were drawn from.
type Repository interface {
	Search(ctx context.Context, f filter.Filters) ([]domain.Movie, error)
	Count(ctx context.Context, f filter.Filters) (int, error)
}
