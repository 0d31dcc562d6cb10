package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
	"github.com/aegisflow/aegisflow-api/internal/core/ports"
)

// IdentityResolver maps a bearer token to the acting principal and re-checks
// the account's activation status on every call.
type IdentityResolver struct {
	tokens ports.TokenService
	users  ports.UserRepository
}

func NewIdentityResolver(tokens ports.TokenService, users ports.UserRepository) *IdentityResolver {
	return &IdentityResolver{tokens: tokens, users: users}
}

func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	subject, err := r.tokens.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	user, err := r.users.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve principal: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}

	return &domain.Principal{User: *user}, nil
}
