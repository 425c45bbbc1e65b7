// Package recommend is the demo recommendation engine. Scores are static
// until Generate replaces a user's slate with pseudo-random ones.
package recommend

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/streamflix/catalog/internal/domain"
)

const defaultLimit = 5

func seedRecommendations() []domain.Recommendation {
	return []domain.Recommendation{
		{UserID: "1", ContentID: "movie-101", ContentType: "movie", Score: 0.95, Reason: "Based on your viewing history"},
		{UserID: "1", ContentID: "show-201", ContentType: "show", Score: 0.88, Reason: "Popular in your area"},
		{UserID: "1", ContentID: "movie-103", ContentType: "movie", Score: 0.82, Reason: "Similar to movies you liked"},
		{UserID: "2", ContentID: "movie-102", ContentType: "movie", Score: 0.92, Reason: "Trending now"},
		{UserID: "2", ContentID: "show-202", ContentType: "show", Score: 0.85, Reason: "Because you watched similar shows"},
		{UserID: "3", ContentID: "movie-104", ContentType: "movie", Score: 0.9, Reason: "Matches your preferences"},
		{UserID: "3", ContentID: "show-203", ContentType: "show", Score: 0.87, Reason: "New release in your favorite genre"},
	}
}

// Service serves per-user recommendation slates.
type Service struct {
	mu   sync.RWMutex
	recs []domain.Recommendation
	rng  *rand.Rand
}

// New creates a recommendation service pre-loaded with the demo slate.
func New(seed int64) *Service {
	return &Service{
		recs: seedRecommendations(),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// ForUser returns a user's recommendations sorted by score, highest first.
// contentType filters to "movie" or "show" when set; limit <= 0 means the
// default of 5.
func (s *Service) ForUser(userID string, limit int, contentType string) []domain.Recommendation {
	if limit <= 0 {
		limit = defaultLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recommendation, 0, limit)
	for _, r := range s.recs {
		if r.UserID != userID {
			continue
		}
		if contentType != "" && r.ContentType != contentType {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Generate replaces a user's slate with fresh pseudo-random recommendations
// and returns the new slate.
func (s *Service) Generate(userID string) []domain.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make([]domain.Recommendation, 0, defaultLimit)
	for i := 0; i < defaultLimit; i++ {
		contentType := "movie"
		if s.rng.Intn(2) == 1 {
			contentType = "show"
		}
		fresh = append(fresh, domain.Recommendation{
			UserID:      userID,
			ContentID:   fmt.Sprintf("%s-%d", contentType, 100+s.rng.Intn(900)),
			ContentType: contentType,
			Score:       0.7 + s.rng.Float64()*0.3,
			Reason:      "Freshly generated for you",
		})
	}

	kept := s.recs[:0]
	for _, r := range s.recs {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	s.recs = append(kept, fresh...)

	sort.SliceStable(fresh, func(i, j int) bool { return fresh[i].Score > fresh[j].Score })
	return fresh
}

// Status reports this service's topology node.
func (s *Service) Status() domain.ServiceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ServiceStatus{
		Service: "Recommendation Engine",
		Status:  "active",
		Counts:  map[string]int{"recommendations": len(s.recs)},
	}
}
