package ports

import (
	"context"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
)

type AccountService interface {
	Signup(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	GetSelf(ctx context.Context, principal *domain.Principal) (*domain.User, error)
	ListUsers(ctx context.Context, principal *domain.Principal, page domain.Page) ([]domain.User, error)
	UpdateRole(ctx context.Context, principal *domain.Principal, userID, roleName string) (*domain.User, error)
	UpdateStatus(ctx context.Context, principal *domain.Principal, userID string, active bool) (*domain.User, error)
}
