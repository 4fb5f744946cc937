package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scrapeapi/accounts-api/internal/core/domain"
)

func TestJWTManager_IssueParse(t *testing.T) {
	m := NewJWTManager("secret", 0)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	signed, exp, err := m.Issue("alice", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.Equal(fixed.Add(15 * time.Minute)) {
		t.Fatalf("expected default 15m ttl, got %v", exp)
	}

	claims, err := m.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
	if claims.ID == "" {
		t.Fatalf("expected jti to be set")
	}
	if !claims.ExpiresAt.Time.Equal(exp) {
		t.Fatalf("exp mismatch: %v vs %v", claims.ExpiresAt.Time, exp)
	}
}

func TestJWTManager_ExpiresWithClock(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	now := time.Now()
	m.now = func() time.Time { return now }

	signed, _, err := m.Issue("alice", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := m.Parse(signed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after expiry, got %v", err)
	}
}

func TestJWTManager_RejectsOtherKey(t *testing.T) {
	signed, _, err := NewJWTManager("old-secret", 0).Issue("alice", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewJWTManager("new-secret", 0).Parse(signed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected rotated key to invalidate token, got %v", err)
	}
}

func TestJWTManager_RejectsOtherAlgorithms(t *testing.T) {
	m := NewJWTManager("secret", 0)
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	for name, tok := range map[string]string{"HS512": hs512, "none": none} {
		if _, err := m.Parse(tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

func TestJWTManager_RequiresSubjectAndExpiry(t *testing.T) {
	m := NewJWTManager("secret", 0)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.Parse(noSub); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("missing sub: expected ErrUnauthorized, got %v", err)
	}
	if _, err := m.Parse(noExp); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("missing exp: expected ErrUnauthorized, got %v", err)
	}
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func TestJWTManager_RejectsChangedLastSignatureChar(t *testing.T) {
	m := NewJWTManager("secret", 0)

	for i := 0; i < 20; i++ {
		signed, _, err := m.Issue("alice", time.Minute)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		last := signed[len(signed)-1]
		idx := strings.IndexByte(base64URLAlphabet, last)
		if idx < 0 {
			t.Fatalf("unexpected signature character %q", last)
		}
		tampered := signed[:len(signed)-1] + string(base64URLAlphabet[idx^1])

		if _, err := m.Parse(tampered); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("token with last character %q -> %q accepted", last, base64URLAlphabet[idx^1])
		}
	}
}
