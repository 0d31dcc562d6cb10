// Package memory is a process-local store used for development
// (STORE_DRIVER=memory) and end-to-end tests. Ids are sequential integers
// rendered as strings, so list order equals id order.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
	"github.com/aegisflow/aegisflow-api/internal/core/ports"
)

type Store struct {
	mu       sync.RWMutex
	roles    map[domain.Role]struct{}
	users    []*domain.User
	projects []*domain.Project
	userSeq  int
	projSeq  int
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		roles: make(map[domain.Role]struct{}),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Ping always succeeds; it lets the store take part in readiness checks.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Roles() *RoleRepository       { return &RoleRepository{s: s} }
func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{s: s} }

// page slices n items according to p.
func page(n int, p domain.Page) (lo, hi int) {
	lo = min(p.Offset, n)
	hi = min(lo+p.Limit, n)
	return lo, hi
}

// ---------------------------------------------------------------------------
// Roles
// ---------------------------------------------------------------------------

type RoleRepository struct{ s *Store }

func (r *RoleRepository) EnsureDefaults(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, role := range domain.DefaultRoles {
		r.s.roles[role] = struct{}{}
	}
	return nil
}

func (r *RoleRepository) Exists(_ context.Context, role domain.Role) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.roles[role]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.roles[user.Role]; !ok {
		return nil, domain.ErrRoleNotConfigured
	}
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}

	r.s.userSeq++
	stored := *user
	stored.ID = strconv.Itoa(r.s.userSeq)
	stored.CreatedAt = r.s.now()
	stored.UpdatedAt = stored.CreatedAt
	r.s.users = append(r.s.users, &stored)

	out := stored
	return &out, nil
}

func (r *UserRepository) find(id string) *domain.User {
	for _, u := range r.s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u := r.find(id); u != nil {
		out := *u
		return &out, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context, p domain.Page) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lo, hi := page(len(r.s.users), p)
	out := make([]domain.User, 0, hi-lo)
	for _, u := range r.s.users[lo:hi] {
		out = append(out, *u)
	}
	return out, nil
}

func (r *UserRepository) mutate(id string, fn func(*domain.User)) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u := r.find(id)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	fn(u)
	u.UpdatedAt = r.s.now()
	out := *u
	return &out, nil
}

func (r *UserRepository) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) { u.Role = role })
}

func (r *UserRepository) UpdateStatus(_ context.Context, id string, active bool) (*domain.User, error) {
	return r.mutate(id, func(u *domain.User) { u.IsActive = active })
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

type ProjectRepository struct{ s *Store }

func cloneProject(p *domain.Project) *domain.Project {
	out := *p
	if p.Description != nil {
		d := *p.Description
		out.Description = &d
	}
	return &out
}

func (r *ProjectRepository) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.projSeq++
	stored := cloneProject(project)
	stored.ID = strconv.Itoa(r.s.projSeq)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.s.now()
		stored.UpdatedAt = stored.CreatedAt
	}
	r.s.projects = append(r.s.projects, stored)
	return cloneProject(stored), nil
}

func (r *ProjectRepository) active(id string) *domain.Project {
	for _, p := range r.s.projects {
		if p.ID == id && p.IsActive {
			return p
		}
	}
	return nil
}

func (r *ProjectRepository) FindActiveByID(_ context.Context, id string) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p := r.active(id); p != nil {
		return cloneProject(p), nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *ProjectRepository) ListActive(_ context.Context, f ports.ProjectFilter) ([]domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*domain.Project
	for _, p := range r.s.projects {
		if p.IsActive && (f.OwnerID == "" || p.OwnerID == f.OwnerID) {
			matched = append(matched, p)
		}
	}

	lo, hi := page(len(matched), f.Page)
	out := make([]domain.Project, 0, hi-lo)
	for _, p := range matched[lo:hi] {
		out = append(out, *cloneProject(p))
	}
	return out, nil
}

func (r *ProjectRepository) mutate(id string, fn func(*domain.Project)) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p := r.active(id)
	if p == nil {
		return nil, domain.ErrProjectNotFound
	}
	fn(p)
	p.UpdatedAt = r.s.now()
	return cloneProject(p), nil
}

func (r *ProjectRepository) Update(_ context.Context, id string, c domain.ProjectChanges) (*domain.Project, error) {
	return r.mutate(id, func(p *domain.Project) {
		if c.Name != nil {
			p.Name = *c.Name
		}
		if c.Description != nil {
			d := *c.Description
			p.Description = &d
		}
	})
}

func (r *ProjectRepository) Deactivate(_ context.Context, id string) (*domain.Project, error) {
	return r.mutate(id, func(p *domain.Project) { p.IsActive = false })
}
