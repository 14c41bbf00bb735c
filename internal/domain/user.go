package domain

import "time"

// User is the domain model for anyone who can authenticate: customers,
// support agents and administrators, differentiated only by their role.
type User struct {
	ID             string
	Username       string
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	RoleID         string
	ResetToken     *string
	ResetExpiresAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
