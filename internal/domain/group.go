package domain

import (
	"time" // Creation timestamps

	"github.com/google/uuid" // UUID generation
	"gorm.io/gorm"           // GORM ORM library
)

// Group Model
type Group struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`                              // Primary key (UUID)
	Name        string      `gorm:"not null" json:"name"`                                      // Group name
	Description string      `json:"description"`                                               // Free-form description
	CreatedDate time.Time   `json:"created_date"`                                              // Creation date supplied by the caller
	Members     []UserGroup `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`      // Memberships, removed with the group
	Expenses    []Expense   `gorm:"constraint:OnDelete:CASCADE" json:"expenses,omitempty"`     // Expenses owned by the group
}

// UserGroup links one User to one Group; it has no lifecycle of its own
type UserGroup struct {
	ID      uint   `gorm:"primaryKey" json:"id"`               // Primary key
	UserID  string `gorm:"size:36;index;not null" json:"user_id"` // Foreign key to User
	GroupID string `gorm:"size:36;index;not null" json:"group_id"` // Foreign key to Group
	User    User   `json:"user,omitempty"`                     // Member user, preloaded where needed
}

// BeforeCreate assigns a UUID primary key when none was provided
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
