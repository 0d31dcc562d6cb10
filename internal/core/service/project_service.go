package service

import (
	"context"
	"strings"
	"unicode/utf8"
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
	"github.com/aegisflow/aegisflow-api/internal/core/ports"
)

const maxProjectNameLength = 255

// ProjectService implements ownership-scoped CRUD over projects.
type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

func (s *ProjectService) Create(ctx context.Context, principal *domain.Principal, input ports.CreateProjectInput) (*domain.Project, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	name, ok := projectName(input.Name)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Project{
		Name:        name,
		Description: input.Description,
		OwnerID:     principal.ID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", principal.ID).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("owner_id", principal.ID).Msg("project created")
	return created, nil
}

// List returns every active project for admins and only the principal's own
// active projects otherwise.
func (s *ProjectService) List(ctx context.Context, principal *domain.Principal, page domain.Page) ([]domain.Project, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	filter := ports.ProjectFilter{Page: page}
	if !principal.IsAdmin() {
		filter.OwnerID = principal.ID
	}
	return s.repo.ListActive(ctx, filter)
}

func (s *ProjectService) Get(ctx context.Context, principal *domain.Principal, id string) (*domain.Project, error) {
	return s.authorized(ctx, principal, id)
}

// Update applies a partial change. An empty change set returns the project as is.
// Existence and ownership are checked before the payload.
func (s *ProjectService) Update(ctx context.Context, principal *domain.Principal, id string, changes domain.ProjectChanges) (*domain.Project, error) {
	project, err := s.authorized(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if changes.Name != nil {
		name, ok := projectName(*changes.Name)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		changes.Name = &name
	}
	if changes.IsEmpty() {
		return project, nil
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("project_id", id).Str("actor_id", principal.ID).Msg("project updated")
	return updated, nil
}

// Delete soft-deletes the project and returns the now inactive record.
func (s *ProjectService) Delete(ctx context.Context, principal *domain.Principal, id string) (*domain.Project, error) {
	if _, err := s.authorized(ctx, principal, id); err != nil {
		return nil, err
	}

	deleted, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("project_id", id).Str("actor_id", principal.ID).Msg("project deleted")
	return deleted, nil
}

// authorized loads an active project and applies the owner-or-admin gate.
// Existence is checked first, so a missing project is always NotFound.
func (s *ProjectService) authorized(ctx context.Context, principal *domain.Principal, id string) (*domain.Project, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}

	project, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnerOrAdmin(principal, project.OwnerID); err != nil {
		return nil, err
	}
	return project, nil
}

// projectName trims name and reports whether the result is a usable name.
func projectName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	return name, name != "" && utf8.RuneCountInString(name) <= maxProjectNameLength
}
