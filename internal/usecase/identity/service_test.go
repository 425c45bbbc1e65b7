package identity

import (
	"errors"
	"strings"
	"testing"

	"github.com/streamflix/catalog/internal/domain"
)

func TestLogin_KnownUser(t *testing.T) {
	svc := New()

	sess, err := svc.Login("user1", "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.UserID != "1" || sess.Username != "user1" {
		t.Errorf("wrong session: %+v", sess)
	}
	if !strings.HasPrefix(sess.Token, "demo-token-") {
		t.Errorf("unexpected token format: %q", sess.Token)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := New()
	if _, err := svc.Login("nobody", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc := New()
	if _, err := svc.Login("", "pw"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing username: expected ErrValidation, got %v", err)
	}
	if _, err := svc.Login("user1", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing password: expected ErrValidation, got %v", err)
	}
}

func TestUsers_StripsEmail(t *testing.T) {
	svc := New()
	for _, u := range svc.Users() {
		if u.Email != "" {
			t.Errorf("email leaked for %s", u.Username)
		}
	}
}

func TestUser_ByID(t *testing.T) {
	svc := New()

	u, err := svc.User("3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "user3" {
		t.Errorf("wrong user: %+v", u)
	}

	if _, err := svc.User("99"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	st := New().Status()
	if st.Service != "User Management" || st.Status != "active" {
		t.Errorf("unexpected status: %+v", st)
	}
	if st.Counts["users"] != 5 {
		t.Errorf("expected 5 users, got %d", st.Counts["users"])
	}
}
