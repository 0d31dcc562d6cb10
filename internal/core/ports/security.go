package ports

import (
	"context"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
)

// PasswordHasher performs one-way credential hashing.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify never fails on a malformed hash; it reports false instead.
	Verify(plaintext, hash string) bool
}

// TokenService issues and validates signed bearer tokens carrying a subject id.
type TokenService interface {
	Issue(subject string) (string, error)
	// Validate returns domain.ErrTokenExpired, domain.ErrTokenSignatureInvalid
	// or domain.ErrTokenMalformed on failure.
	Validate(token string) (string, error)
}

// IdentityResolver turns a bearer token into the acting principal.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Principal, error)
}

// LoginThrottle counts failed logins per username.
type LoginThrottle interface {
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
