package stream

import (
	"errors"
	"testing"

	"github.com/streamflix/catalog/internal/domain"
)

func TestStart(t *testing.T) {
	svc := New()

	sess, err := svc.Start("1", "movie-101", "movie", "hd", "tv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.SessionID == "" {
		t.Error("expected a session id")
	}
	if sess.StartTime == "" {
		t.Error("expected a start time")
	}
	if len(svc.List()) != 1 {
		t.Errorf("expected 1 active session, got %d", len(svc.List()))
	}
}

func TestStart_Defaults(t *testing.T) {
	svc := New()

	sess, err := svc.Start("1", "movie-101", "movie", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.Quality != "auto" || sess.DeviceType != "unknown" {
		t.Errorf("defaults not applied: %+v", sess)
	}
}

func TestStart_MissingFields(t *testing.T) {
	svc := New()

	cases := []struct {
		name                           string
		userID, contentID, contentType string
		param                          string
	}{
		{"no user", "", "movie-101", "movie", "userId"},
		{"no content", "1", "", "movie", "contentId"},
		{"no content type", "1", "movie-101", "", "contentType"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Start(tc.userID, tc.contentID, tc.contentType, "", "")
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Param != tc.param {
				t.Errorf("expected param %q, got %q", tc.param, verr.Param)
			}
		})
	}
}

func TestUpdateMetrics(t *testing.T) {
	svc := New()
	sess, _ := svc.Start("1", "movie-101", "movie", "hd", "tv")

	updated, err := svc.UpdateMetrics(sess.SessionID, domain.StreamMetrics{
		BufferingEvents: 2,
		QualityChanges:  1,
		AverageBitrate:  4500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Metrics.BufferingEvents != 2 || updated.Metrics.AverageBitrate != 4500 {
		t.Errorf("metrics not applied: %+v", updated.Metrics)
	}

	if _, err := svc.UpdateMetrics("missing", domain.StreamMetrics{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStop(t *testing.T) {
	svc := New()
	sess, _ := svc.Start("1", "movie-101", "movie", "hd", "tv")

	final, err := svc.Stop(sess.SessionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.SessionID != sess.SessionID {
		t.Errorf("wrong session returned: %+v", final)
	}
	if len(svc.List()) != 0 {
		t.Error("session must be removed after stop")
	}

	if _, err := svc.Stop(sess.SessionID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double stop, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	svc := New()
	svc.Start("1", "movie-101", "movie", "hd", "tv")
	svc.Start("2", "show-201", "show", "sd", "mobile")

	st := svc.Status()
	if st.Service != "Streaming Service" || st.Status != "active" {
		t.Errorf("unexpected status: %+v", st)
	}
	if st.Counts["activeSessions"] != 2 {
		t.Errorf("expected 2 active sessions, got %d", st.Counts["activeSessions"])
	}
}
