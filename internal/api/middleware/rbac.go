package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
	"github.com/aegisflow/aegisflow-api/internal/core/service"
)

// RBAC gates a route group on the principal's role. It must run after Auth.
func RBAC(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, _ := Principal(c)
			if err := service.RequireRole(p, allowed...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
