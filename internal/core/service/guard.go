package service

import "github.com/aegisflow/aegisflow-api/internal/core/domain"

// RequireRole allows the call only when the principal holds one of allowed.
func RequireRole(p *domain.Principal, allowed ...domain.Role) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	for _, r := range allowed {
		if p.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}

// RequireOwnerOrAdmin allows the call when the principal is an admin or owns
// the resource.
func RequireOwnerOrAdmin(p *domain.Principal, ownerID string) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if p.IsAdmin() || p.ID == ownerID {
		return nil
	}
	return domain.ErrForbidden
}
