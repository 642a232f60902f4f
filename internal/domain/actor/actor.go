package actor

import (
	"strings"
	"time"

	"github.com/someswar123624/job-portal-backend/internal/common"
)

// Role is the closed set of actor kinds. Authorization checks switch on it
// exhaustively; adding a role is an explicit code change.
type Role string

const (
	RoleStudent  Role = "student"
	RoleEmployer Role = "employer"
)

func ParseRole(value string) (Role, error) {
	normalized := Role(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case RoleStudent, RoleEmployer:
		return normalized, nil
	default:
		return "", common.NewValidationError("invalid role", map[string]string{"role": "role must be student or employer"})
	}
}

// Actor is a Student or Employer account. PasswordHash and GoogleID are each
// optional; registration and login flows guarantee at least one is set. For
// employers, Name holds the company name.
type Actor struct {
	ID           common.UUID `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	GoogleID     string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
