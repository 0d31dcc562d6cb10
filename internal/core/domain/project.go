package domain

import "time"

// Project is the owned resource. Soft-deleted projects keep IsActive=false
// and are invisible to every read.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"owner_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectChanges carries a partial update; nil fields are left untouched.
type ProjectChanges struct {
	Name        *string
	Description *string
}

func (c ProjectChanges) IsEmpty() bool {
	return c.Name == nil && c.Description == nil
}
