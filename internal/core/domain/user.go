package domain

import "time"

// User models an account able to authenticate against the API.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Principal is the user performing the current request, resolved from its bearer token.
type Principal struct {
	User
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
