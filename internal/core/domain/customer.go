package domain

import "github.com/google/uuid"

// Customer owns a collection of projects. Deleting a customer cascades to its
// projects at the store level.
type Customer struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Active   bool      `json:"active" gorm:"not null;default:true"`
	Details  string    `json:"details" gorm:"type:text"`
	Projects []Project `json:"projects,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
