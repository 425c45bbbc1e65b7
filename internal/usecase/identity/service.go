// Package identity is the demo user-management service: a static user set
// with a token-granting login. No real credential checking happens here.
package identity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/streamflix/catalog/internal/domain"
)

var demoUsers = []domain.User{
	{ID: "1", Username: "user1", Email: "user1@example.com", Preferences: domain.Preferences{Genres: []string{"action", "sci-fi"}}},
	{ID: "2", Username: "user2", Email: "user2@example.com", Preferences: domain.Preferences{Genres: []string{"comedy", "romance"}}},
	{ID: "3", Username: "user3", Email: "user3@example.com", Preferences: domain.Preferences{Genres: []string{"horror", "thriller"}}},
	{ID: "4", Username: "user4", Email: "user4@example.com", Preferences: domain.Preferences{Genres: []string{"documentary", "drama"}}},
	{ID: "5", Username: "user5", Email: "user5@example.com", Preferences: domain.Preferences{Genres: []string{"animation", "family"}}},
}

// Service is the demo identity provider.
type Service struct {
	users []domain.User
}

// New creates an identity service with the built-in demo users.
func New() *Service {
	return &Service{users: demoUsers}
}

// Users returns all users with email stripped (the demo notion of sanitizing).
func (s *Service) Users() []domain.User {
	out := make([]domain.User, len(s.users))
	for i, u := range s.users {
		u.Email = ""
		out[i] = u
	}
	return out
}

// User returns one user by id.
func (s *Service) User(id string) (domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

// Login grants a demo session token for a known username. The password is
// required but never verified.
func (s *Service) Login(username, password string) (domain.Session, error) {
	if username == "" {
		return domain.Session{}, domain.NewValidation("username", "is required")
	}
	if password == "" {
		return domain.Session{}, domain.NewValidation("password", "is required")
	}

	for _, u := range s.users {
		if u.Username == username {
			return domain.Session{
				UserID:   u.ID,
				Username: u.Username,
				Token:    "demo-token-" + uuid.NewString(),
			}, nil
		}
	}
	return domain.Session{}, domain.ErrInvalidCredentials
}

// Status reports this service's topology node.
func (s *Service) Status() domain.ServiceStatus {
	return domain.ServiceStatus{
		Service: "User Management",
		Status:  "active",
		Counts:  map[string]int{"users": len(s.users)},
	}
}
