package domain

import "github.com/google/uuid"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	StatusPending  ProjectStatus = "PENDING"
	StatusDesign   ProjectStatus = "DESIGN"
	StatusBuild    ProjectStatus = "BUILD"
	StatusComplete ProjectStatus = "COMPLETE"
)

// ValidStatus reports whether s is one of the known project statuses.
func ValidStatus(s ProjectStatus) bool {
	switch s {
	case StatusPending, StatusDesign, StatusBuild, StatusComplete:
		return true
	}
	return false
}

// Project belongs to exactly one customer and has zero or more users
// assigned. Deleting a project never deletes its users; their project
// reference is cleared by the store constraint.
type Project struct {
	ID         uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string        `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Status     ProjectStatus `json:"status" gorm:"size:16;not null;index"`
	Details    string        `json:"details" gorm:"type:text"`
	Active     bool          `json:"active" gorm:"not null;default:true"`
	CustomerID uuid.UUID     `json:"customer_id" gorm:"type:uuid;not null;index"`
	Customer   *Customer     `json:"customer,omitempty"`
	Users      []User        `json:"users,omitempty"`
}
