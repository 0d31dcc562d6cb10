package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
	"github.com/aegisflow/aegisflow-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users []*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	stored := cloneUser(user)
	stored.ID = strconv.Itoa(r.seq)
	r.users = append(r.users, stored)
	return cloneUser(stored), nil
}

func (r *stubUserRepo) find(id string) *domain.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u := r.find(id); u != nil {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, page domain.Page) ([]domain.User, error) {
	out := []domain.User{}
	for i := page.Offset; i < len(r.users) && len(out) < page.Limit; i++ {
		out = append(out, *r.users[i])
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	u := r.find(id)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id string, active bool) (*domain.User, error) {
	u := r.find(id)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = active
	return cloneUser(u), nil
}

type stubRoleRepo struct {
	roles map[domain.Role]bool
}

func newStubRoleRepo(roles ...domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[domain.Role]bool)}
	for _, role := range roles {
		r.roles[role] = true
	}
	return r
}

func (r *stubRoleRepo) EnsureDefaults(_ context.Context) error {
	for _, role := range domain.DefaultRoles {
		r.roles[role] = true
	}
	return nil
}

func (r *stubRoleRepo) Exists(_ context.Context, role domain.Role) (bool, error) {
	return r.roles[role], nil
}

type stubProjectRepo struct {
	projects []*domain.Project
	seq      int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{}
}

func cloneProject(p *domain.Project) *domain.Project {
	clone := *p
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.seq++
	stored := cloneProject(p)
	stored.ID = strconv.Itoa(r.seq)
	r.projects = append(r.projects, stored)
	return cloneProject(stored), nil
}

func (r *stubProjectRepo) active(id string) *domain.Project {
	for _, p := range r.projects {
		if p.ID == id && p.IsActive {
			return p
		}
	}
	return nil
}

func (r *stubProjectRepo) FindActiveByID(_ context.Context, id string) (*domain.Project, error) {
	if p := r.active(id); p != nil {
		return cloneProject(p), nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) ListActive(_ context.Context, f ports.ProjectFilter) ([]domain.Project, error) {
	var matched []domain.Project
	for _, p := range r.projects {
		if !p.IsActive || (f.OwnerID != "" && p.OwnerID != f.OwnerID) {
			continue
		}
		matched = append(matched, *p)
	}
	if f.Page.Offset >= len(matched) {
		return []domain.Project{}, nil
	}
	matched = matched[f.Page.Offset:]
	if len(matched) > f.Page.Limit {
		matched = matched[:f.Page.Limit]
	}
	return matched, nil
}

func (r *stubProjectRepo) Update(_ context.Context, id string, c domain.ProjectChanges) (*domain.Project, error) {
	p := r.active(id)
	if p == nil {
		return nil, domain.ErrProjectNotFound
	}
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Description != nil {
		p.Description = c.Description
	}
	p.UpdatedAt = time.Now().UTC()
	return cloneProject(p), nil
}

func (r *stubProjectRepo) Deactivate(_ context.Context, id string) (*domain.Project, error) {
	p := r.active(id)
	if p == nil {
		return nil, domain.ErrProjectNotFound
	}
	p.IsActive = false
	return cloneProject(p), nil
}

// ---------------------------------------------------------------------------
// Stub collaborators
// ---------------------------------------------------------------------------

type stubThrottle struct {
	limit    int
	failures map[string]int
	err      error
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{limit: limit, failures: make(map[string]int)}
}

func (t *stubThrottle) Blocked(_ context.Context, username string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[strings.ToLower(username)] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	if t.err != nil {
		return t.err
	}
	t.failures[strings.ToLower(username)]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	delete(t.failures, strings.ToLower(username))
	return t.err
}

type stubTokens struct {
	subjects map[string]string
	err      error
}

func (s *stubTokens) Issue(subject string) (string, error) {
	token := "token-" + subject
	if s.subjects == nil {
		s.subjects = make(map[string]string)
	}
	s.subjects[token] = subject
	return token, nil
}

func (s *stubTokens) Validate(token string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	subject, ok := s.subjects[token]
	if !ok {
		return "", domain.ErrTokenMalformed
	}
	return subject, nil
}

func principalOf(u *domain.User) *domain.Principal {
	return &domain.Principal{User: *u}
}
