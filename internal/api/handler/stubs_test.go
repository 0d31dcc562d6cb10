package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/aegisflow/aegisflow-api/internal/api/middleware"
	"github.com/aegisflow/aegisflow-api/internal/core/domain"
	"github.com/aegisflow/aegisflow-api/internal/core/ports"
)

type stubAccountService struct {
	signupFn       func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn        func(ctx context.Context, username, password string) (string, error)
	listUsersFn    func(ctx context.Context, p *domain.Principal, page domain.Page) ([]domain.User, error)
	updateRoleFn   func(ctx context.Context, p *domain.Principal, userID, roleName string) (*domain.User, error)
	updateStatusFn func(ctx context.Context, p *domain.Principal, userID string, active bool) (*domain.User, error)
}

func (s *stubAccountService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	return s.signupFn(ctx, username, password)
}

func (s *stubAccountService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAccountService) GetSelf(_ context.Context, p *domain.Principal) (*domain.User, error) {
	u := p.User
	return &u, nil
}

func (s *stubAccountService) ListUsers(ctx context.Context, p *domain.Principal, page domain.Page) ([]domain.User, error) {
	return s.listUsersFn(ctx, p, page)
}

func (s *stubAccountService) UpdateRole(ctx context.Context, p *domain.Principal, userID, roleName string) (*domain.User, error) {
	return s.updateRoleFn(ctx, p, userID, roleName)
}

func (s *stubAccountService) UpdateStatus(ctx context.Context, p *domain.Principal, userID string, active bool) (*domain.User, error) {
	return s.updateStatusFn(ctx, p, userID, active)
}

type stubProjectService struct {
	createFn func(ctx context.Context, p *domain.Principal, in ports.CreateProjectInput) (*domain.Project, error)
	listFn   func(ctx context.Context, p *domain.Principal, page domain.Page) ([]domain.Project, error)
	getFn    func(ctx context.Context, p *domain.Principal, id string) (*domain.Project, error)
	updateFn func(ctx context.Context, p *domain.Principal, id string, ch domain.ProjectChanges) (*domain.Project, error)
	deleteFn func(ctx context.Context, p *domain.Principal, id string) (*domain.Project, error)
}

func (s *stubProjectService) Create(ctx context.Context, p *domain.Principal, in ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubProjectService) List(ctx context.Context, p *domain.Principal, page domain.Page) ([]domain.Project, error) {
	return s.listFn(ctx, p, page)
}

func (s *stubProjectService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.Project, error) {
	return s.getFn(ctx, p, id)
}

func (s *stubProjectService) Update(ctx context.Context, p *domain.Principal, id string, ch domain.ProjectChanges) (*domain.Project, error) {
	return s.updateFn(ctx, p, id, ch)
}

func (s *stubProjectService) Delete(ctx context.Context, p *domain.Principal, id string) (*domain.Project, error) {
	return s.deleteFn(ctx, p, id)
}

// newContext builds an echo context for method/target with an optional JSON
// body. A non-nil principal is stored as if the Auth middleware had run.
func newContext(t *testing.T, method, target string, body io.Reader, principal *domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(middleware.PrincipalKey, principal)
	}
	return c, rec
}

func principalOf(id string, role domain.Role) *domain.Principal {
	return &domain.Principal{User: domain.User{ID: id, Username: "user-" + id, IsActive: true, Role: role}}
}
