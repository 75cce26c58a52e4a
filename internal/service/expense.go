package service

import (
	"errors" // Error classification
	"fmt"    // Error wrapping
	"time"   // Expense dates

	"expense_sharing/internal/balance" // Balance Engine
	"expense_sharing/internal/domain"  // Importing domain models

	"github.com/shopspring/decimal" // Decimal arithmetic for money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/clause"           // Row locking for settlement
)

// ExpenseDetails is the transient create/update payload for an expense.
// It is validated by the service and never persisted directly.
type ExpenseDetails struct {
	GroupID     string          `json:"group_id" binding:"required"`    // Owning group
	Description string          `json:"description" binding:"required"` // What the expense was for
	Amount      decimal.Decimal `json:"amount"`                         // Positive amount paid
	PaidByID    string          `json:"paid_by_id" binding:"required"`  // Paying user
	Date        time.Time       `json:"date"`                           // When the expense happened
}

// ExpenseService orchestrates validation, persistence and the Balance Engine
type ExpenseService struct {
	db *gorm.DB // Ledger store
}

// NewExpenseService creates an ExpenseService on top of the given database
func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

// validateDetails checks an expense payload against the store: positive amount,
// non-blank description, resolvable group, and a payer who is a member of it.
func (s *ExpenseService) validateDetails(details *ExpenseDetails) error {
	// Amount must be strictly positive
	if !details.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	// Description must be provided
	if details.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	// The group must exist
	var group domain.Group
	if err := s.db.First(&group, "id = ?", details.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: group %s does not exist", ErrValidation, details.GroupID)
		}
		return err
	}
	// The payer must exist
	var payer domain.User
	if err := s.db.First(&payer, "id = ?", details.PaidByID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s does not exist", ErrValidation, details.PaidByID)
		}
		return err
	}
	// The payer must be a member of the group being charged
	var membership domain.UserGroup
	if err := s.db.Where("user_id = ? AND group_id = ?", details.PaidByID, details.GroupID).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: payer %s is not a member of group %s", ErrValidation, details.PaidByID, details.GroupID)
		}
		return err
	}
	return nil
}

// Add validates and persists a new, unsettled expense.
// Balances are untouched: money only moves at settlement.
func (s *ExpenseService) Add(groupID string, details *ExpenseDetails) (*domain.Expense, error) {
	details.GroupID = groupID // The route's group wins over the payload's
	if err := s.validateDetails(details); err != nil {
		return nil, err
	}
	expense := domain.Expense{
		Description: details.Description, // What the expense was for
		Amount:      details.Amount,      // Amount paid
		GroupID:     details.GroupID,     // Owning group
		PaidByID:    details.PaidByID,    // Paying user
		Date:        details.Date,        // When it happened
		IsSettled:   false,               // Settlement happens later
	}
	if err := s.db.Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// GetAll returns every expense across all groups
func (s *ExpenseService) GetAll() ([]domain.Expense, error) {
	var expenses []domain.Expense
	if err := s.db.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// GetByID returns one expense or ErrNotFound
func (s *ExpenseService) GetByID(id string) (*domain.Expense, error) {
	var expense domain.Expense
	if err := s.db.First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: expense %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &expense, nil
}

// GetAllOfGroup returns the expenses owned by one group.
// An unknown group surfaces as a plain error, matching the observed contract.
func (s *ExpenseService) GetAllOfGroup(groupID string) ([]domain.Expense, error) {
	var group domain.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, fmt.Errorf("load group %s: %v", groupID, err)
	}
	var expenses []domain.Expense
	if err := s.db.Where("group_id = ?", groupID).Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Update replaces all mutable fields of an expense. The settled flag is not a
// mutable field, and updating a settled expense does not re-adjust balances
// that a prior settlement already applied.
func (s *ExpenseService) Update(id string, details *ExpenseDetails) (*domain.Expense, error) {
	var expense domain.Expense
	if err := s.db.First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: expense %s", ErrNotFound, id)
		}
		return nil, err
	}
	if err := s.validateDetails(details); err != nil {
		return nil, err
	}
	// Full replace of the mutable fields
	expense.Description = details.Description
	expense.Amount = details.Amount
	expense.GroupID = details.GroupID
	expense.PaidByID = details.PaidByID
	expense.Date = details.Date
	if err := s.db.Save(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// Delete removes an expense. It does not reverse balance changes a prior
// settlement applied.
func (s *ExpenseService) Delete(id string) error {
	result := s.db.Delete(&domain.Expense{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: expense %s", ErrNotFound, id)
	}
	return nil
}

// Settle performs the one-way settlement of an expense: it locks the expense
// row, runs the Balance Engine over the group's members, applies every balance
// delta, records one ledger entry per member and flips the settled flag, all
// inside a single transaction. A concurrent settlement of the same expense
// loses the row lock race and fails on the re-checked settled flag.
// The applied deltas are returned so callers can invalidate derived state.
func (s *ExpenseService) Settle(id string) ([]balance.Delta, error) {
	var applied []balance.Delta
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var expense domain.Expense
		// Lock the expense row so concurrent settlements serialize
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&expense, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: expense %s", ErrNotFound, id)
			}
			return err
		}
		// Load the member set of the owning group
		var memberships []domain.UserGroup
		if err := tx.Where("group_id = ?", expense.GroupID).Find(&memberships).Error; err != nil {
			return err
		}
		memberIDs := make([]string, len(memberships))
		for i, m := range memberships {
			memberIDs[i] = m.UserID
		}
		// Compute the balance deltas
		deltas, err := balance.Settle(&expense, memberIDs)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		// Apply every delta and record it in the ledger
		for _, d := range deltas {
			if err := tx.Model(&domain.User{}).Where("id = ?", d.UserID).
				Update("balance", gorm.Expr("balance + ?", d.Amount)).Error; err != nil {
				return err
			}
			entry := domain.LedgerEntry{
				ExpenseID: expense.ID, // Settled expense
				UserID:    d.UserID,   // Affected user
				Delta:     d.Amount,   // Signed balance change
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		// Flip the write-once settled flag in the same transaction
		if err := tx.Model(&expense).Update("is_settled", true).Error; err != nil {
			return err
		}
		applied = deltas
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Log the settlement with context
	logrus.WithFields(logrus.Fields{
		"expense_id": id,       // Settled expense
		"members":    len(applied), // Members affected
		"type":       "settle", // Operation type
	}).Info("Expense settled")
	return applied, nil
}
