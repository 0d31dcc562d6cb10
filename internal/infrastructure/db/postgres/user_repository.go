package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
)

const userColumns = `u.id, u.username, u.hashed_password, u.is_active, r.name, u.created_at, u.updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

// Create inserts the user with the role resolved by name in the same statement.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
		WITH inserted AS (
			INSERT INTO users (username, hashed_password, is_active, role_id)
			SELECT $1::varchar, $2::text, $3::boolean, id FROM roles WHERE name = $4
			RETURNING id, username, hashed_password, is_active, role_id, created_at, updated_at
		)
		SELECT ` + userColumns + `
		FROM inserted u JOIN roles r ON r.id = u.role_id`

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.IsActive, user.Role.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotConfigured
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("UserRepository.Create: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, `u.id = $1`, key)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `u.username = $1`, username)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id WHERE ` + where

	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("UserRepository.find: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, page domain.Page) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u JOIN roles r ON r.id = u.role_id
	          ORDER BY u.id LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("UserRepository.List: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, page.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("UserRepository.List: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	const query = `
		UPDATE users AS u SET role_id = r.id, updated_at = now()
		FROM roles r
		WHERE u.id = $1 AND r.name = $2
		RETURNING ` + userColumns

	return r.update(ctx, query, id, role.String())
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id string, active bool) (*domain.User, error) {
	const query = `
		UPDATE users AS u SET is_active = $2, updated_at = now()
		FROM roles r
		WHERE u.id = $1 AND r.id = u.role_id
		RETURNING ` + userColumns

	return r.update(ctx, query, id, active)
}

func (r *UserRepository) update(ctx context.Context, query, id string, arg any) (*domain.User, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	u, err := scanUser(r.db.QueryRowContext(ctx, query, key, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("UserRepository.update: %w", err)
	}
	return u, nil
}
