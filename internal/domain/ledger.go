package domain

import (
	"github.com/shopspring/decimal" // Decimal arithmetic for money
)

// LedgerEntry records one member's balance delta from one settlement.
// Entries are immutable; a user's balance equals the sum of their deltas.
type LedgerEntry struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	ExpenseID string          `gorm:"size:36;index;not null" json:"expense_id"`  // Settled expense
	UserID    string          `gorm:"size:36;index;not null" json:"user_id"`     // Affected user
	Delta     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"delta"`  // Signed balance change
	CreatedAt int64           `gorm:"autoCreateTime:milli" json:"created_at"`    // Timestamp of settlement in milliseconds
}
