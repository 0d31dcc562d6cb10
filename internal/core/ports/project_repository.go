package ports

import (
	"context"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
)

// ProjectFilter narrows ListActive. An empty OwnerID lists every owner.
type ProjectFilter struct {
	OwnerID string
	Page    domain.Page
}

// ProjectRepository persists projects. Every read and mutation only matches
// active rows; anything else yields domain.ErrProjectNotFound.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindActiveByID(ctx context.Context, id string) (*domain.Project, error)
	ListActive(ctx context.Context, filter ProjectFilter) ([]domain.Project, error)
	Update(ctx context.Context, id string, changes domain.ProjectChanges) (*domain.Project, error)
	Deactivate(ctx context.Context, id string) (*domain.Project, error)
}
