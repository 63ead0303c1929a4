package auth

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundtrip(t *testing.T) {
	id := primitive.NewObjectID()

	token, err := IssueToken(id, "secret", 7*24*time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	got, err := VerifyToken(token, "secret")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if got != id {
		t.Fatalf("expected principal %s, got %s", id.Hex(), got.Hex())
	}
}

func TestExpiredTokenIsDistinguished(t *testing.T) {
	token, err := IssueToken(primitive.NewObjectID(), "secret", -time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = VerifyToken(token, "secret")
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTamperedTokenIsInvalid(t *testing.T) {
	token, err := IssueToken(primitive.NewObjectID(), "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := VerifyToken(token, "other-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
	if _, err := VerifyToken("not-a-token", "secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestCookiePolicyByEnvironment(t *testing.T) {
	dev := PolicyFor(false)
	if dev.Secure || dev.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected development policy: %+v", dev)
	}

	prod := PolicyFor(true)
	if !prod.Secure || prod.SameSite != http.SameSiteNoneMode {
		t.Fatalf("unexpected production policy: %+v", prod)
	}
}
