package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	user := &entity.User{
		ID:       7,
		Username: "alice",
		Role:     workflow.RoleAdmin,
	}

	token, err := m.Issue(user)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	actor, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if actor.UserID != 7 {
		t.Errorf("UserID = %d, want 7", actor.UserID)
	}
	if actor.Username != "alice" {
		t.Errorf("Username = %q, want alice", actor.Username)
	}
	if actor.Role != workflow.RoleAdmin {
		t.Errorf("Role = %s, want admin", actor.Role)
	}
}

func TestTokenManager_ParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Issue(&entity.User{ID: 1, Username: "alice", Role: workflow.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	_, err = verifier.Parse(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_ParseRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.Issue(&entity.User{ID: 1, Username: "alice", Role: workflow.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	_, err = m.Parse(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_ParseRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	_, err := m.Parse("not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
	}
}
