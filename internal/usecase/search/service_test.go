package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/streamflix/catalog/internal/domain"
	"github.com/streamflix/catalog/internal/domain/search/filter"
)

// --- Mocks ---

type mockRepo struct {
	mu sync.Mutex

	movies    []domain.Movie
	searchErr error
	total     int
	countErr  error

	searchCalled  bool
	countCalled   bool
	searchFilters filter.Filters
	countFilters  filter.Filters
}

func (m *mockRepo) Search(_ context.Context, f filter.Filters) ([]domain.Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalled = true
	m.searchFilters = f
	return m.movies, m.searchErr
}

func (m *mockRepo) Count(_ context.Context, f filter.Filters) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.countCalled = true
	m.countFilters = f
	return m.total, m.countErr
}

func intPtr(v int) *int { return &v }

// --- Tests ---

func TestSearch_AppliesDefaults(t *testing.T) {
	repo := &mockRepo{total: 0}
	svc := New(repo)

	res, err := svc.Search(context.Background(), filter.Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.searchFilters.Limit != filter.DefaultLimit || repo.searchFilters.Offset != 0 {
		t.Errorf("defaults not applied before compile: %+v", repo.searchFilters)
	}
	if res.Pagination.Limit != filter.DefaultLimit {
		t.Errorf("pagination must echo the resolved limit, got %d", res.Pagination.Limit)
	}
}

func TestSearch_ConfiguredDefaultLimit(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo).WithDefaultLimit(25)

	res, err := svc.Search(context.Background(), filter.Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.searchFilters.Limit != 25 {
		t.Errorf("configured default not applied, got limit %d", repo.searchFilters.Limit)
	}
	if res.Pagination.Limit != 25 {
		t.Errorf("pagination must echo the resolved limit, got %d", res.Pagination.Limit)
	}

	// An explicit limit always wins over the configured default.
	if _, err := svc.Search(context.Background(), filter.Filters{Limit: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.searchFilters.Limit != 10 {
		t.Errorf("explicit limit overridden, got %d", repo.searchFilters.Limit)
	}
}

func TestSearch_BothReadsSeeSameFilters(t *testing.T) {
	repo := &mockRepo{total: 12}
	svc := New(repo)

	f := filter.Filters{Query: " dark ", YearMin: intPtr(2000), Limit: 10, Offset: 5}
	if _, err := svc.Search(context.Background(), f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !repo.searchCalled || !repo.countCalled {
		t.Fatal("expected both reads to run")
	}
	if repo.searchFilters.Query != repo.countFilters.Query ||
		repo.searchFilters.Limit != repo.countFilters.Limit ||
		repo.searchFilters.Offset != repo.countFilters.Offset {
		t.Errorf("filter drift between reads:\nsearch: %+v\ncount:  %+v",
			repo.searchFilters, repo.countFilters)
	}
	if repo.searchFilters.Query != "dark" {
		t.Errorf("expected trimmed query, got %q", repo.searchFilters.Query)
	}
}

func TestSearch_Pagination(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		rows        int
		limit       int
		offset      int
		wantHasMore bool
	}{
		{name: "all fit", total: 5, rows: 5, limit: 50, offset: 0, wantHasMore: false},
		{name: "more pages", total: 5, rows: 2, limit: 2, offset: 0, wantHasMore: true},
		{name: "last page", total: 5, rows: 1, limit: 2, offset: 4, wantHasMore: false},
		{name: "empty", total: 0, rows: 0, limit: 10, offset: 0, wantHasMore: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movies := make([]domain.Movie, tt.rows)
			repo := &mockRepo{movies: movies, total: tt.total}
			svc := New(repo)

			res, err := svc.Search(context.Background(), filter.Filters{Limit: tt.limit, Offset: tt.offset})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			p := res.Pagination
			if p.Total != tt.total || p.Limit != tt.limit || p.Offset != tt.offset {
				t.Errorf("pagination echo wrong: %+v", p)
			}
			if p.HasMore != tt.wantHasMore {
				t.Errorf("hasMore = %v, want %v", p.HasMore, tt.wantHasMore)
			}
			if len(res.Results) > p.Total {
				t.Errorf("more rows than total: %d > %d", len(res.Results), p.Total)
			}
		})
	}
}

func TestSearch_InvalidWindowRejectedBeforeReads(t *testing.T) {
	tests := []struct {
		name    string
		filters filter.Filters
	}{
		{name: "negative limit", filters: filter.Filters{Limit: -3}},
		{name: "negative offset", filters: filter.Filters{Offset: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			svc := New(repo)

			_, err := svc.Search(context.Background(), tt.filters)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if repo.searchCalled || repo.countCalled {
				t.Error("validation failure must not reach the store")
			}
		})
	}
}

func TestSearch_CountFailureFailsWhole(t *testing.T) {
	repo := &mockRepo{
		movies:   []domain.Movie{{Title: "The Dark Knight"}},
		countErr: errors.New("connection reset"),
	}
	svc := New(repo)

	res, err := svc.Search(context.Background(), filter.Filters{})
	if !errors.Is(err, domain.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
	if res.Results != nil {
		t.Error("no partial envelope on failure")
	}
}

func TestSearch_RowReadFailureFailsWhole(t *testing.T) {
	repo := &mockRepo{searchErr: errors.New("query canceled"), total: 99}
	svc := New(repo)

	if _, err := svc.Search(context.Background(), filter.Filters{}); !errors.Is(err, domain.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
}

func TestSearch_NilRowsBecomeEmptySlice(t *testing.T) {
	repo := &mockRepo{movies: nil, total: 0}
	svc := New(repo)

	res, err := svc.Search(context.Background(), filter.Filters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Results == nil {
		t.Error("results must serialize as [], not null")
	}
}
