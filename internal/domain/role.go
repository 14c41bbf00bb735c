package domain

import "time"

// Well-known role names seeded at startup.
const (
	RoleCustomer     = "Customer"
	RoleSupportAgent = "SupportAgent"
	RoleAdmin        = "Admin"
)

// Role assigns a named permission level to users. Names are unique.
type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
