// Package movie implements the catalog read model and its query compiler on
// Postgres. The compiler functions are pure; Repo binds them to a pool.
package movie

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/streamflix/catalog/internal/domain"
	"github.com/streamflix/catalog/internal/domain/search/filter"
)

// querier is the consumer interface over a pgx pool (ISP).
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repo implements the movie storage contracts on Postgres.
type Repo struct {
	db       querier
	duration *prometheus.HistogramVec
}

// New creates a movie repository.
func New(db querier) *Repo {
	return &Repo{db: db}
}

// WithMetrics attaches a query-duration histogram labeled by query kind.
func (r *Repo) WithMetrics(duration *prometheus.HistogramVec) *Repo {
	r.duration = duration
	return r
}

func (r *Repo) observe(kind string, start time.Time) {
	if r.duration != nil {
		r.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}

// Search runs the compiled row-fetch statement.
func (r *Repo) Search(ctx context.Context, f filter.Filters) ([]domain.Movie, error) {
	defer r.observe("search", time.Now())

	sql, args := BuildSearchQuery(f)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	dtos, err := pgx.CollectRows(rows, pgx.RowToStructByPos[movieRow])
	if err != nil {
		return nil, fmt.Errorf("scan movies: %w", err)
	}
	return toDomainMovies(dtos), nil
}

// Count runs the paired count statement over the identical predicate set.
func (r *Repo) Count(ctx context.Context, f filter.Filters) (int, error) {
	defer r.observe("count", time.Now())

	sql, args := BuildCountQuery(f)
	var total int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return total, nil
}

// Suggest runs the compiled autocomplete statement.
func (r *Repo) Suggest(ctx context.Context, term string) ([]domain.Suggestion, error) {
	defer r.observe("suggest", time.Now())

	sql, args := BuildSuggestionQuery(term)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	dtos, err := pgx.CollectRows(rows, pgx.RowToStructByPos[suggestionRow])
	if err != nil {
		return nil, fmt.Errorf("scan suggestions: %w", err)
	}

	out := make([]domain.Suggestion, len(dtos))
	for i := range dtos {
		out[i] = dtos[i].toDomain()
	}
	return out, nil
}

// List returns the whole catalog ordered by rating.
func (r *Repo) List(ctx context.Context) ([]domain.Movie, error) {
	defer r.observe("list", time.Now())

	sql := "SELECT " + movieColumns + " FROM movies ORDER BY rating DESC NULLS LAST, release_year DESC NULLS LAST"
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	dtos, err := pgx.CollectRows(rows, pgx.RowToStructByPos[movieRow])
	if err != nil {
		return nil, fmt.Errorf("scan movies: %w", err)
	}
	return toDomainMovies(dtos), nil
}

// Get returns one movie by id, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domain.Movie, error) {
	defer r.observe("get", time.Now())

	sql := "SELECT " + movieColumns + " FROM movies WHERE id = $1"
	rows, err := r.db.Query(ctx, sql, id)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("get movie: %w", err)
	}

	dto, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[movieRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, fmt.Errorf("movie %s: %w", id, domain.ErrNotFound)
		}
		return domain.Movie{}, fmt.Errorf("get movie: %w", err)
	}
	return dto.toDomain(), nil
}

// Clear truncates the catalog.
func (r *Repo) Clear(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "TRUNCATE TABLE movies"); err != nil {
		return fmt.Errorf("truncate movies: %w", err)
	}
	return nil
}

func toDomainMovies(dtos []movieRow) []domain.Movie {
	movies := make([]domain.Movie, len(dtos))
	for i := range dtos {
		movies[i] = dtos[i].toDomain()
	}
	return movies
}
