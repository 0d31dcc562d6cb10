package ports

import (
	"context"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
)

// CreateProjectInput is the payload accepted by ProjectService.Create.
type CreateProjectInput struct {
	Name        string
	Description *string
}

type ProjectService interface {
	Create(ctx context.Context, principal *domain.Principal, input CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, principal *domain.Principal, page domain.Page) ([]domain.Project, error)
	Get(ctx context.Context, principal *domain.Principal, id string) (*domain.Project, error)
	Update(ctx context.Context, principal *domain.Principal, id string, changes domain.ProjectChanges) (*domain.Project, error)
	Delete(ctx context.Context, principal *domain.Principal, id string) (*domain.Project, error)
}
