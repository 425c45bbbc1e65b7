// Package catalog serves catalog browsing plus the demo seed/clear admin
// operations.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/streamflix/catalog/internal/domain"
)

// Service handles catalog browsing and admin requests.
type Service struct {
	repo Repository
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the whole catalog ordered by rating.
func (s *Service) List(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	return movies, nil
}

// Get returns one movie by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Movie, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Movie{}, err
		}
		return domain.Movie{}, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	return m, nil
}

// Seed replaces the catalog contents with the demo rows.
func (s *Service) Seed(ctx context.Context) error {
	if err := s.repo.Seed(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	return nil
}

// Clear empties the catalog.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	return nil
}
