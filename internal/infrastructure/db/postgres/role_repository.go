package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
)

type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) EnsureDefaults(ctx context.Context) error {
	for _, role := range domain.DefaultRoles {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, role.String())
		if err != nil {
			return fmt.Errorf("seed role %s: %w", role, err)
		}
	}
	return nil
}

func (r *RoleRepository) Exists(ctx context.Context, role domain.Role) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, role.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("RoleRepository.Exists: %w", err)
	}
	return exists, nil
}
