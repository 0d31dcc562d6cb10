package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
	"github.com/aegisflow/aegisflow-api/internal/core/ports"
)

const projectColumns = `id, name, description, owner_id, is_active, created_at, updated_at`

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	owner, ok := parseID(p.OwnerID)
	if !ok {
		return nil, fmt.Errorf("ProjectRepository.Create: invalid owner id %q", p.OwnerID)
	}

	query := `INSERT INTO projects (name, description, owner_id, is_active)
	          VALUES ($1, $2, $3, $4)
	          RETURNING ` + projectColumns

	created, err := scanProject(r.db.QueryRowContext(ctx, query, p.Name, p.Description, owner, p.IsActive))
	if err != nil {
		return nil, fmt.Errorf("ProjectRepository.Create: %w", err)
	}
	return created, nil
}

func (r *ProjectRepository) FindActiveByID(ctx context.Context, id string) (*domain.Project, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND is_active`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("ProjectRepository.FindActiveByID: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) ListActive(ctx context.Context, f ports.ProjectFilter) ([]domain.Project, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if f.OwnerID == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+projectColumns+` FROM projects WHERE is_active ORDER BY id LIMIT $1 OFFSET $2`,
			f.Page.Limit, f.Page.Offset)
	} else {
		owner, ok := parseID(f.OwnerID)
		if !ok {
			return []domain.Project{}, nil
		}
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+projectColumns+` FROM projects WHERE is_active AND owner_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
			owner, f.Page.Limit, f.Page.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("ProjectRepository.ListActive: %w", err)
	}
	defer rows.Close()

	projects := make([]domain.Project, 0, f.Page.Limit)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("ProjectRepository.ListActive: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// Update changes only the supplied fields; nil parameters keep the column.
func (r *ProjectRepository) Update(ctx context.Context, id string, c domain.ProjectChanges) (*domain.Project, error) {
	const query = `
		UPDATE projects
		SET name = COALESCE($2, name), description = COALESCE($3, description), updated_at = now()
		WHERE id = $1 AND is_active
		RETURNING ` + projectColumns

	return r.update(ctx, query, id, c.Name, c.Description)
}

func (r *ProjectRepository) Deactivate(ctx context.Context, id string) (*domain.Project, error) {
	const query = `
		UPDATE projects SET is_active = FALSE, updated_at = now()
		WHERE id = $1 AND is_active
		RETURNING ` + projectColumns

	return r.update(ctx, query, id)
}

func (r *ProjectRepository) update(ctx context.Context, query, id string, args ...any) (*domain.Project, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}

	p, err := scanProject(r.db.QueryRowContext(ctx, query, append([]any{key}, args...)...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("ProjectRepository.update: %w", err)
	}
	return p, nil
}
