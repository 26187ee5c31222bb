package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"recruit/internal/entity"
)

func TestNewManagerAndTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	user := &entity.DbUser{ID: 42, Email: "user@example.com", Role: entity.UserRoleAdmin}
	token, expiresAt, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, claims.UserID)
	}
	if !strings.EqualFold(claims.Email, user.Email) {
		t.Fatalf("expected email %s, got %s", user.Email, claims.Email)
	}
	if claims.Role != user.Role {
		t.Fatalf("expected role %s, got %s", user.Role, claims.Role)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	issuer, _ := NewManager("secret-a", "recruit", time.Hour)
	verifier, _ := NewManager("secret-b", "recruit", time.Hour)

	token, _, err := issuer.GenerateToken(&entity.DbUser{ID: 1, Role: entity.UserRoleUser})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestParseTokenRejectsOtherIssuer(t *testing.T) {
	a, _ := NewManager("same-secret", "issuer-a", time.Hour)
	b, _ := NewManager("same-secret", "issuer-b", time.Hour)

	token, _, _ := a.GenerateToken(&entity.DbUser{ID: 3})
	if _, err := b.ParseToken(token); err == nil {
		t.Fatal("expected token from another issuer to be rejected")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer   abc", want: "abc"},
		{header: "", wantErr: ErrMissingToken},
		{header: "Bearer ", wantErr: ErrMissingToken},
		{header: "Basic dXNlcjpwYXNz", wantErr: ErrMalformedHeader},
		{header: "token", wantErr: ErrMalformedHeader},
	}

	for _, tt := range tests {
		got, err := BearerToken(tt.header)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("header %q: expected %v, got %v", tt.header, tt.wantErr, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("header %q: expected %q, got %q (%v)", tt.header, tt.want, got, err)
		}
	}
}
