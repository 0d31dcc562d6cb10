package ports

import (
	"context"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
)

// UserRepository persists accounts. Implementations return domain.ErrUserNotFound
// for unknown ids and usernames, and domain.ErrUserExists on a duplicate username.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns users in a stable order (by id).
	List(ctx context.Context, page domain.Page) ([]domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	UpdateStatus(ctx context.Context, id string, active bool) (*domain.User, error)
}

// RoleRepository manages the role catalog.
type RoleRepository interface {
	// EnsureDefaults idempotently creates every role in domain.DefaultRoles.
	EnsureDefaults(ctx context.Context) error
	Exists(ctx context.Context, role domain.Role) (bool, error)
}
