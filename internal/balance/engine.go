package balance

import (
	"errors" // Sentinel domain errors

	"expense_sharing/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Decimal arithmetic for money
)

// Engine errors, classified by the service layer
var (
	ErrAlreadySettled = errors.New("expense is already settled")
	ErrNoMembers      = errors.New("no members to settle")
	ErrPayerNotMember = errors.New("payer is not a member of the group")
)

// Delta is one member's signed balance change from a settlement
type Delta struct {
	UserID string          // Affected user
	Amount decimal.Decimal // Signed change: positive credits, negative debits
}

// Settle computes how settling one expense redistributes money among the
// members of its group. It is pure: no storage access, no mutation.
//
// Each non-paying member is debited an equal share of the amount, rounded to
// cents. The payer is credited the exact sum of the other members' debits, so
// the deltas always sum to zero and any division remainder stays with the
// payer's own share.
func Settle(expense *domain.Expense, memberIDs []string) ([]Delta, error) {
	// Settlement is terminal: refuse to settle twice
	if expense.IsSettled {
		return nil, ErrAlreadySettled
	}
	// An expense cannot be split across an empty group
	if len(memberIDs) == 0 {
		return nil, ErrNoMembers
	}
	// The payer must actually be in the group being charged
	payerFound := false
	for _, id := range memberIDs {
		if id == expense.PaidByID {
			payerFound = true
			break
		}
	}
	if !payerFound {
		return nil, ErrPayerNotMember
	}

	n := decimal.NewFromInt(int64(len(memberIDs)))      // Member count
	share := expense.Amount.DivRound(n, 2)              // Per-member share, rounded to cents
	others := decimal.NewFromInt(int64(len(memberIDs) - 1)) // Everyone except the payer

	// One delta per member: -share for each non-payer, the others' total for the payer
	deltas := make([]Delta, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id == expense.PaidByID {
			deltas = append(deltas, Delta{UserID: id, Amount: share.Mul(others)}) // Credit the payer
		} else {
			deltas = append(deltas, Delta{UserID: id, Amount: share.Neg()}) // Debit the member
		}
	}
	return deltas, nil
}
