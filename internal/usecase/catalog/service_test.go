package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/streamflix/catalog/internal/domain"
)

type mockRepo struct {
	movies   []domain.Movie
	listErr  error
	getErr   error
	seedErr  error
	clearErr error
}

func (m *mockRepo) List(_ context.Context) ([]domain.Movie, error) {
	return m.movies, m.listErr
}

func (m *mockRepo) Get(_ context.Context, id string) (domain.Movie, error) {
	if m.getErr != nil {
		return domain.Movie{}, m.getErr
	}
	for _, mv := range m.movies {
		if mv.ID == id {
			return mv, nil
		}
	}
	return domain.Movie{}, fmt.Errorf("movie %s: %w", id, domain.ErrNotFound)
}

func (m *mockRepo) Seed(_ context.Context) error  { return m.seedErr }
func (m *mockRepo) Clear(_ context.Context) error { return m.clearErr }

func TestList_NilBecomesEmpty(t *testing.T) {
	svc := New(&mockRepo{})
	movies, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movies == nil {
		t.Error("expected non-nil empty list")
	}
}

func TestList_StoreError(t *testing.T) {
	svc := New(&mockRepo{listErr: errors.New("down")})
	if _, err := svc.List(context.Background()); !errors.Is(err, domain.ErrStore) {
		t.Fatalf("expected ErrStore, got %v", err)
	}
}

func TestGet_NotFoundPassesThrough(t *testing.T) {
	svc := New(&mockRepo{})
	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, domain.ErrStore) {
		t.Error("not-found must not be reported as a store failure")
	}
}

func TestGet_Found(t *testing.T) {
	svc := New(&mockRepo{movies: []domain.Movie{{ID: "m1", Title: "Heat"}}})
	m, err := svc.Get(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != "Heat" {
		t.Errorf("wrong movie: %+v", m)
	}
}

func TestSeedAndClear_WrapStoreErrors(t *testing.T) {
	svc := New(&mockRepo{seedErr: errors.New("x"), clearErr: errors.New("y")})
	if err := svc.Seed(context.Background()); !errors.Is(err, domain.ErrStore) {
		t.Errorf("seed: expected ErrStore, got %v", err)
	}
	if err := svc.Clear(context.Background()); !errors.Is(err, domain.ErrStore) {
		t.Errorf("clear: expected ErrStore, got %v", err)
	}
}
