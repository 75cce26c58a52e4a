package domain

import (
	"github.com/google/uuid"        // UUID generation
	"github.com/shopspring/decimal" // Decimal arithmetic for money
	"gorm.io/gorm"                  // GORM ORM library
)

// User Model
type User struct {
	ID       string          `gorm:"primaryKey;size:36" json:"id"`                          // Primary key (UUID)
	Name     string          `gorm:"not null" json:"name"`                                  // Display name
	Email    string          `gorm:"unique;not null" json:"email"`                          // Unique email, login identity
	Password string          `gorm:"not null" json:"-"`                                     // Bcrypt password hash, never serialized
	Role     string          `gorm:"default:user" json:"role"`                              // Role: user or admin
	Balance  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"balance"` // Net amount owed to (+) or by (-) this user
}

// BeforeCreate assigns a UUID primary key when none was provided
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
