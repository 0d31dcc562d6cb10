package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
	"github.com/aegisflow/aegisflow-api/internal/core/ports"
)

func TestProjectHandler_Create(t *testing.T) {
	stub := &stubProjectService{
		createFn: func(ctx context.Context, p *domain.Principal, in ports.CreateProjectInput) (*domain.Project, error) {
			if in.Name != "P1" || in.Description == nil || *in.Description != "first" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Project{ID: "10", Name: in.Name, Description: in.Description, OwnerID: p.ID, IsActive: true}, nil
		},
	}
	c, rec := newContext(t, http.MethodPost, "/projects", strings.NewReader(`{"name":"P1","description":"first"}`), principalOf("1", domain.RoleUser))

	if err := NewProjectHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"id", "name", "description", "owner_id", "is_active", "created_at", "updated_at"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("missing %q in %+v", key, resp)
		}
	}
	if resp["owner_id"] != "1" {
		t.Fatalf("unexpected owner: %v", resp["owner_id"])
	}
}

func TestProjectHandler_Create_Validation(t *testing.T) {
	long := strings.Repeat("n", 256)
	for _, body := range []string{`{}`, `{"name":""}`, `{"name":"` + long + `"}`} {
		c, _ := newContext(t, http.MethodPost, "/projects", strings.NewReader(body), principalOf("1", domain.RoleUser))

		err := NewProjectHandler(&stubProjectService{}).Create(c)
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("body %s: expected ErrInvalidInput, got %v", body, err)
		}
	}
}

func TestProjectHandler_Create_WithoutPrincipal(t *testing.T) {
	c, _ := newContext(t, http.MethodPost, "/projects", strings.NewReader(`{"name":"P1"}`), nil)

	if err := NewProjectHandler(&stubProjectService{}).Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestProjectHandler_List(t *testing.T) {
	stub := &stubProjectService{
		listFn: func(ctx context.Context, p *domain.Principal, page domain.Page) ([]domain.Project, error) {
			if page.Limit != 5 {
				t.Fatalf("unexpected page: %+v", page)
			}
			return []domain.Project{{ID: "1"}, {ID: "2"}}, nil
		},
	}
	c, rec := newContext(t, http.MethodGet, "/projects?limit=5", nil, principalOf("1", domain.RoleUser))

	if err := NewProjectHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []domain.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(resp))
	}
}

func TestProjectHandler_Get_Errors(t *testing.T) {
	for _, want := range []error{domain.ErrProjectNotFound, domain.ErrForbidden} {
		stub := &stubProjectService{
			getFn: func(ctx context.Context, p *domain.Principal, id string) (*domain.Project, error) {
				return nil, want
			},
		}
		c, _ := newContext(t, http.MethodGet, "/projects/9", nil, principalOf("1", domain.RoleUser))
		c.SetParamNames("id")
		c.SetParamValues("9")

		if err := NewProjectHandler(stub).Get(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestProjectHandler_Update_Partial(t *testing.T) {
	stub := &stubProjectService{
		updateFn: func(ctx context.Context, p *domain.Principal, id string, ch domain.ProjectChanges) (*domain.Project, error) {
			if id != "9" {
				t.Fatalf("unexpected id %s", id)
			}
			if ch.Name != nil {
				t.Fatalf("name must be left untouched, got %q", *ch.Name)
			}
			if ch.Description == nil || *ch.Description != "new" {
				t.Fatalf("unexpected description: %v", ch.Description)
			}
			return &domain.Project{ID: id, Name: "P1", Description: ch.Description}, nil
		},
	}
	c, rec := newContext(t, http.MethodPut, "/projects/9", strings.NewReader(`{"description":"new"}`), principalOf("1", domain.RoleUser))
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := NewProjectHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProjectHandler_Update_EmptyName(t *testing.T) {
	c, _ := newContext(t, http.MethodPut, "/projects/9", strings.NewReader(`{"name":""}`), principalOf("1", domain.RoleUser))
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := NewProjectHandler(&stubProjectService{}).Update(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProjectHandler_Delete(t *testing.T) {
	stub := &stubProjectService{
		deleteFn: func(ctx context.Context, p *domain.Principal, id string) (*domain.Project, error) {
			return &domain.Project{ID: id, IsActive: false}, nil
		},
	}
	c, rec := newContext(t, http.MethodDelete, "/projects/9", nil, principalOf("1", domain.RoleUser))
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := NewProjectHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp domain.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.IsActive {
		t.Fatal("expected an inactive project")
	}
}
