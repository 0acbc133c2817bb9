package models

import "fmt"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStudent:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"-" yaml:"password"` // plaintext, never exposed in JSON
	Role     Role   `json:"role" yaml:"role"`
	Name     string `json:"name" yaml:"name"`
}

// SessionUser is the identity snapshot stored in a session at login.
type SessionUser struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

func (u User) Snapshot() SessionUser {
	return SessionUser{Username: u.Username, Role: u.Role, Name: u.Name}
}

func (u SessionUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u SessionUser) IsStudent() bool {
	return u.Role == RoleStudent
}

// Dashboard returns the landing page for the user's role.
func (u SessionUser) Dashboard() string {
	if u.IsAdmin() {
		return "/admin-dashboard"
	}
	return "/student-dashboard"
}
