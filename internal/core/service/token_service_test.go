package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTokenService(t *testing.T, secret string, clock *fakeClock) *JWTService {
	t.Helper()
	svc, err := NewTokenService(secret, "HS256", 60*time.Minute, WithClock(clock.Now), WithIssuer("aegisflow"))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, "secret", clock)

	token, err := svc.Issue("42")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	subject, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if subject != "42" {
		t.Fatalf("expected subject 42, got %q", subject)
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		t.Fatalf("parse claims: %v", err)
	}
	if claims.ID == "" || claims.Issuer != "aegisflow" || claims.IssuedAt == nil {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Time.Equal(clock.now.Add(60 * time.Minute)) {
		t.Fatalf("unexpected expiry: %v", claims.ExpiresAt)
	}
}

func TestJWTService_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	svc := newTestTokenService(t, "secret", clock)

	token, err := svc.Issue("7")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	clock.now = issuedAt.Add(59 * time.Minute)
	if _, err := svc.Validate(token); err != nil {
		t.Fatalf("expected token valid at T+59m, got %v", err)
	}

	clock.now = issuedAt.Add(61 * time.Minute)
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at T+61m, got %v", err)
	}
}

func TestJWTService_DifferentSecret(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestTokenService(t, "secret-a", clock)
	verifier := newTestTokenService(t, "secret-b", clock)

	token, err := issuer.Issue("1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}

	// Signature is checked before expiry.
	clock.now = clock.now.Add(24 * time.Hour)
	if _, err := verifier.Validate(token); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid for expired foreign token, got %v", err)
	}
}

func TestJWTService_AlgorithmMismatch(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestTokenService(t, "secret", clock)

	other, err := NewTokenService("secret", "HS512", time.Hour, WithClock(clock.Now), WithIssuer("aegisflow"))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	token, err := other.Issue("1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestJWTService_Malformed(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestTokenService(t, "secret", clock)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("expected ErrTokenMalformed for %q, got %v", token, err)
		}
	}
}

func TestJWTService_MissingSubject(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestTokenService(t, "secret", clock)

	token, err := svc.Issue("")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestJWTService_IssuerMismatch(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	svc := newTestTokenService(t, "secret", clock)

	foreign, err := NewTokenService("secret", "HS256", time.Hour, WithClock(clock.Now), WithIssuer("someone-else"))
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	token, err := foreign.Issue("1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestNewTokenService_Validation(t *testing.T) {
	if _, err := NewTokenService("", "HS256", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewTokenService("secret", "RS256", time.Hour); err == nil {
		t.Fatalf("expected error for non-HMAC algorithm")
	}
	if _, err := NewTokenService("secret", "none", time.Hour); err == nil {
		t.Fatalf("expected error for none algorithm")
	}

	svc, err := NewTokenService("secret", "HS384", 0)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	if svc.ttl != DefaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", svc.ttl)
	}
}
