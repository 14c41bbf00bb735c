package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// RoleCreateRequest payload.
type RoleCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoleUpdateRequest payload. Absent fields are left unchanged.
type RoleUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// RoleResponse is the wire view of a role.
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewRoleResponse maps a domain role.
func NewRoleResponse(role *domain.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}

// NewRoleListResponse maps a slice of roles.
func NewRoleListResponse(roles []domain.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, NewRoleResponse(&roles[i]))
	}
	return out
}
