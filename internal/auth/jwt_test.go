package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "test-secret-that-is-32-chars-long!!"

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(testSecret, "deepthoughts", 15*time.Minute)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "amiko")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	gotID, gotUsername, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if gotID != userID {
		t.Errorf("expected user ID %s, got %s", userID, gotID)
	}
	if gotUsername != "amiko" {
		t.Errorf("expected username amiko, got %q", gotUsername)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager(testSecret, "deepthoughts", -1*time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), "amiko")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := NewJWTManager(testSecret, "deepthoughts", 15*time.Minute)
	other := NewJWTManager("another-secret-that-is-32-chars-x", "deepthoughts", 15*time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), "amiko")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestJWTManager_WrongIssuer(t *testing.T) {
	m := NewJWTManager(testSecret, "deepthoughts", 15*time.Minute)
	other := NewJWTManager(testSecret, "someone-else", 15*time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), "amiko")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, _, err := other.ValidateAccessToken(token); err == nil {
		t.Error("expected error for token with wrong issuer")
	}
}

func TestJWTManager_EmptyToken(t *testing.T) {
	m := NewJWTManager(testSecret, "deepthoughts", 15*time.Minute)
	if _, _, err := m.ValidateAccessToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestJWTManager_Garbage(t *testing.T) {
	m := NewJWTManager(testSecret, "deepthoughts", 15*time.Minute)
	if _, _, err := m.ValidateAccessToken("not.a.jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}
