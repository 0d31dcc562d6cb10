package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/aegisflow/aegisflow-api/internal/api/middleware"
	"github.com/aegisflow/aegisflow-api/internal/core/domain"
)

// ctxPrincipal returns the principal injected by the Auth middleware. Its
// absence means the route was registered without Auth, which is reported as
// unauthenticated rather than trusted.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}

// ctxPage reads limit and offset from the query string, defaulting to the
// first page of DefaultPageLimit items.
func ctxPage(c echo.Context) (domain.Page, error) {
	page := domain.DefaultPage()
	err := echo.QueryParamsBinder(c).
		Int("limit", &page.Limit).
		Int("offset", &page.Offset).
		BindError()
	if err != nil {
		return page, fmt.Errorf("%w: limit and offset must be integers", domain.ErrInvalidPagination)
	}
	if err := page.Validate(); err != nil {
		return page, fmt.Errorf("%w: limit must be between 1 and %d, offset must not be negative", err, domain.MaxPageLimit)
	}
	return page, nil
}
