package domain

import (
	"strings"

	"github.com/google/uuid"
)

const (
	RoleManager  = "MANAGER"
	RoleEngineer = "ENGINEER"
)

// ValidRole reports whether r is one of the known user roles.
func ValidRole(r string) bool {
	return r == RoleManager || r == RoleEngineer
}

// IsAdminRole reports whether a role grants administrative rights. The admin
// flag on a user is derived from this at creation time and never settable
// directly.
func IsAdminRole(r string) bool {
	return r == RoleManager
}

// User models an authenticated actor in the system. A user is assigned to at
// most one project at a time; deleting that project detaches the user via the
// ON DELETE SET NULL constraint rather than removing the user row.
type User struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username       string     `json:"username" gorm:"size:8;uniqueIndex;not null"`
	HashedPassword string     `json:"-" gorm:"not null"`
	FirstName      string     `json:"first_name" gorm:"size:30;not null"`
	LastName       string     `json:"last_name" gorm:"size:30;not null"`
	Role           string     `json:"role" gorm:"size:16;not null;index"`
	Email          string     `json:"email" gorm:"size:30;uniqueIndex;not null"`
	Active         bool       `json:"active" gorm:"not null;default:true"`
	Admin          bool       `json:"admin" gorm:"not null;default:false"`
	ProjectID      *uuid.UUID `json:"project_id,omitempty" gorm:"type:uuid"`
	Project        *Project   `json:"project,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// NormalizeUsername applies the canonical form used for storage and login
// lookups: trimmed and lowercased.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail applies the canonical form used for storage and uniqueness
// checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
