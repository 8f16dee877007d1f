package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleJobseeker:
		return RoleJobseeker, true
	case RoleEmployer:
		return RoleEmployer, true
	default:
		return "", false
	}
}

type User struct {
	ID              uuid.UUID
	Email           string
	PasswordHash    string
	Role            Role
	Name            string
	Skills          []string
	ResumeURL       *string
	ProfileImageURL *string
	CompanyName     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AuthContext identifies the caller of a request. It is built from the
// bearer token by the HTTP layer and passed explicitly to every usecase.
type AuthContext struct {
	UserID uuid.UUID
	Role   Role
	Token  string
}

func (a AuthContext) Authenticated() bool {
	return a.UserID != uuid.Nil && a.Role != ""
}

func (a AuthContext) Is(role Role) bool {
	return a.Authenticated() && a.Role == role
}
