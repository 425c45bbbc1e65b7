package suggest

import (
	"context"

	"github.com/streamflix/catalog/internal/domain"
)

// Repository defines the storage contract for autocomplete lookups.
type Repository interface {
	Suggest(ctx context.Context, term string) ([]domain.Suggestion, error)
}
