// Package search orchestrates the paginated catalog search: one filter set,
// two concurrent reads (rows + total), one envelope.
package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/streamflix/catalog/internal/domain"
	"github.com/streamflix/catalog/internal/domain/search/filter"
)

// Result is the paginated search envelope.
type Result struct {
	Results    []domain.Movie    `json:"results"`
	Pagination domain.Pagination `json:"pagination"`
}

// Service handles catalog search requests.
type Service struct {
	repo         Repository
	defaultLimit int
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo, defaultLimit: filter.DefaultLimit}
}

// WithDefaultLimit overrides the page size applied when a request carries
// none.
func (s *Service) WithDefaultLimit(n int) *Service {
	if n > 0 {
		s.defaultLimit = n
	}
	return s
}

// Search normalizes the filters and runs the row and count reads
// concurrently. Both reads are compiled from the same normalized filters, so
// the reported total always matches the predicate set behind the rows.
// Either read failing fails the whole call; no partial envelope is returned.
func (s *Service) Search(ctx context.Context, f filter.Filters) (Result, error) {
	if f.Limit == 0 {
		f.Limit = s.defaultLimit
	}
	f = f.Normalized()
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	var (
		movies []domain.Movie
		total  int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = s.repo.Search(ctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(ctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}

	if movies == nil {
		movies = []domain.Movie{}
	}

	return Result{
		Results:    movies,
		Pagination: domain.NewPagination(total, f.Limit, f.Offset),
	}, nil
}
