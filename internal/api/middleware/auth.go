package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aegisflow/aegisflow-api/internal/api/metrics"
	"github.com/aegisflow/aegisflow-api/internal/core/domain"
	"github.com/aegisflow/aegisflow-api/internal/core/ports"
)

// PrincipalKey is the echo.Context key holding the resolved *domain.Principal.
const PrincipalKey = "principal"

// Auth resolves the bearer token into a principal and stores it in the context.
// Failures are returned as domain errors for the central error handler.
func Auth(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthenticationFailuresTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			principal, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				metrics.AuthenticationFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				return err
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

// Principal returns the principal stored by Auth, if any.
func Principal(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(*domain.Principal)
	return p, ok && p != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrInactiveUser):
		return "inactive"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "invalid"
	default:
		return "error"
	}
}
