package domain

import (
	"time" // Expense dates

	"github.com/google/uuid"        // UUID generation
	"github.com/shopspring/decimal" // Decimal arithmetic for money
	"gorm.io/gorm"                  // GORM ORM library
)

// Expense Model
type Expense struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`                 // Primary key (UUID)
	Description string          `gorm:"not null" json:"description"`                  // What the expense was for
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`    // Positive amount paid
	GroupID     string          `gorm:"size:36;index;not null" json:"group_id"`       // Foreign key to the owning Group
	PaidByID    string          `gorm:"size:36;index;not null" json:"paid_by_id"`     // Foreign key to the paying User
	Date        time.Time       `json:"date"`                                         // When the expense happened
	IsSettled   bool            `gorm:"not null;default:false" json:"is_settled"`     // Write-once settlement flag
}

// BeforeCreate assigns a UUID primary key when none was provided
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
