package httpapi

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/domain"
	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/store/memory"
)

func newAuthWithUser(t *testing.T, ttl time.Duration) *AuthManager {
	t.Helper()

	repo := memory.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := repo.CreateUser(context.Background(), domain.User{
		ID:       "user-1",
		Username: "clerk",
		Password: string(hash),
		Name:     "Clerk",
		Role:     domain.RoleCashier,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewAuthManager(testSecret, ttl, repo)
}

func TestLoginAndParseTokenRoundTrip(t *testing.T) {
	auth := newAuthWithUser(t, time.Hour)

	resp, err := auth.Login(context.Background(), domain.LoginRequest{Username: "clerk", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	actor, err := auth.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if actor.Username != "clerk" || actor.Role != domain.RoleCashier || actor.UserID != "user-1" {
		t.Fatalf("unexpected actor: %+v", actor)
	}
}

func TestLoginUsernameIsCaseInsensitive(t *testing.T) {
	auth := newAuthWithUser(t, time.Hour)
	if _, err := auth.Login(context.Background(), domain.LoginRequest{Username: "  CLERK ", Password: "secret123"}); err != nil {
		t.Fatalf("login with mixed case: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newAuthWithUser(t, time.Hour)
	if _, err := auth.Login(context.Background(), domain.LoginRequest{Username: "clerk", Password: "nope"}); err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	auth := newAuthWithUser(t, time.Hour)
	if _, err := auth.ParseToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	auth := newAuthWithUser(t, time.Hour)
	resp, err := auth.Login(context.Background(), domain.LoginRequest{Username: "clerk", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	other := NewAuthManager("another-secret-that-is-long-enough!!", time.Hour, memory.New())
	if _, err := other.ParseToken(resp.AccessToken); err == nil {
		t.Fatal("expected error for token signed with different secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	auth := newAuthWithUser(t, time.Hour)

	user := &domain.User{ID: "user-1", Username: "clerk", Role: domain.RoleCashier}
	token, err := auth.sign(user, time.Now().UTC().Add(-time.Minute))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := auth.ParseToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}
