// Package suggest serves search-box autocomplete.
package suggest

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/streamflix/catalog/internal/domain"
)

// minTermLength is the shortest term worth a store round-trip; shorter input
// returns an empty list without touching the store.
const minTermLength = 2

// Service handles suggestion requests.
type Service struct {
	repo Repository
}

// New creates a suggestion service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns up to ten autocomplete candidates for the given text.
func (s *Service) Suggest(ctx context.Context, term string) ([]domain.Suggestion, error) {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < minTermLength {
		return []domain.Suggestion{}, nil
	}

	out, err := s.repo.Suggest(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStore, err)
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	return out, nil
}
