// Package stream tracks demo playback sessions in memory.
package stream

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/streamflix/catalog/internal/domain"
)

// Service manages active playback sessions.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]domain.StreamSession
	now      func() time.Time
}

// New creates an empty stream session registry.
func New() *Service {
	return &Service{
		sessions: make(map[string]domain.StreamSession),
		now:      time.Now,
	}
}

// Start opens a playback session and returns it with a fresh session id.
func (s *Service) Start(userID, contentID, contentType, quality, deviceType string) (domain.StreamSession, error) {
	if userID == "" {
		return domain.StreamSession{}, domain.NewValidation("userId", "is required")
	}
	if contentID == "" {
		return domain.StreamSession{}, domain.NewValidation("contentId", "is required")
	}
	if contentType == "" {
		return domain.StreamSession{}, domain.NewValidation("contentType", "is required")
	}
	if quality == "" {
		quality = "auto"
	}
	if deviceType == "" {
		deviceType = "unknown"
	}

	sess := domain.StreamSession{
		SessionID:   uuid.NewString(),
		UserID:      userID,
		ContentID:   contentID,
		ContentType: contentType,
		Quality:     quality,
		DeviceType:  deviceType,
		StartTime:   s.now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	s.sessions[sess.SessionID] = sess
	s.mu.Unlock()

	return sess, nil
}

// UpdateMetrics records playback quality counters on an active session.
func (s *Service) UpdateMetrics(sessionID string, metrics domain.StreamMetrics) (domain.StreamSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.StreamSession{}, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	sess.Metrics = metrics
	s.sessions[sessionID] = sess
	return sess, nil
}

// Stop ends a session and returns its final state.
func (s *Service) Stop(sessionID string) (domain.StreamSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.StreamSession{}, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	delete(s.sessions, sessionID)
	return sess, nil
}

// List returns all active sessions ordered by start time, then session id.
func (s *Service) List() []domain.StreamSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.StreamSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].SessionID < out[j].SessionID
	})
	return out
}

// Status reports this service's topology node.
func (s *Service) Status() domain.ServiceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.ServiceStatus{
		Service: "Streaming Service",
		Status:  "active",
		Counts:  map[string]int{"activeSessions": len(s.sessions)},
	}
}
