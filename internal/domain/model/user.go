package model

import (
	"time"
)

type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleAttendee  Role = "attendee"
)

// Valid reports whether r is one of the roles a user can register with.
func (r Role) Valid() bool {
	return r == RoleOrganizer || r == RoleAttendee
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not exposed
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Sanitized returns a copy of u without the password hash.
func (u User) Sanitized() *User {
	u.PasswordHash = ""
	return &u
}

// Identity is the caller established from a verified token.
type Identity struct {
	ID    string
	Role  Role
	Email string
}

func (i Identity) IsOrganizer() bool {
	return i.Role == RoleOrganizer
}
