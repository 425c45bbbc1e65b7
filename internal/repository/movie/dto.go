package movie

import "github.com/streamflix/catalog/internal/domain"

// movieRow mirrors the movies table projection, in movieColumns order.
// Nullable columns scan into pointers.
type movieRow struct {
	ID          string
	Title       string
	Description *string
	Director    *string
	Genres      []string
	Cast        []string
	ReleaseYear int
	Rating      float64
	Duration    *int
	ImageURL    *string
}

func (r movieRow) toDomain() domain.Movie {
	m := domain.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Genres:      r.Genres,
		Cast:        r.Cast,
		ReleaseYear: r.ReleaseYear,
		Rating:      r.Rating,
		Duration:    r.Duration,
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Director != nil {
		m.Director = *r.Director
	}
	if r.ImageURL != nil {
		m.ImageURL = *r.ImageURL
	}
	return m
}

// suggestionRow mirrors the suggestion projection.
type suggestionRow struct {
	Suggestion string
	Type       string
	Frequency  int
}

func (r suggestionRow) toDomain() domain.Suggestion {
	return domain.Suggestion{Text: r.Suggestion, Type: r.Type, Frequency: r.Frequency}
}
