package service

import (
	"testing"
	"time"

	"expense_sharing/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails(groupID, paidByID, amount string) *ExpenseDetails {
	return &ExpenseDetails{
		GroupID:     groupID,
		Description: "Test Expense",
		Amount:      decimal.RequireFromString(amount),
		PaidByID:    paidByID,
		Date:        time.Now(),
	}
}

func TestAddExpenseValid(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedUser(t, db, "user1", "User One", "user1@example.com")
	seedUser(t, db, "user2", "User Two", "user2@example.com")
	seedGroup(t, db, "group1", "Test Group", "user1", "user2")

	created, err := svc.Add("group1", validDetails("group1", "user1", "100"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	var stored domain.Expense
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.Equal(t, "Test Expense", stored.Description)
	assert.True(t, stored.Amount.Equal(decimal.NewFromInt(100)))
	assert.False(t, stored.IsSettled)

	// Adding an expense never touches balances
	assert.True(t, userBalance(t, db, "user1").IsZero())
	assert.True(t, userBalance(t, db, "user2").IsZero())
}

func TestAddExpenseValidationFailures(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedUser(t, db, "user1", "User One", "user1@example.com")
	seedUser(t, db, "loner", "No Group", "loner@example.com")
	seedGroup(t, db, "group1", "Test Group", "user1")

	tests := []struct {
		name    string
		groupID string
		details *ExpenseDetails
	}{
		{"unknown group", "invalidGroup", validDetails("invalidGroup", "user1", "100")},
		{"unknown payer", "group1", validDetails("group1", "ghost", "100")},
		{"payer not a member", "group1", validDetails("group1", "loner", "100")},
		{"zero amount", "group1", validDetails("group1", "user1", "0")},
		{"negative amount", "group1", validDetails("group1", "user1", "-5")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(tt.groupID, tt.details)
			require.ErrorIs(t, err, ErrValidation)
		})
	}

	// Nothing was persisted by the failed attempts
	var count int64
	require.NoError(t, db.Model(&domain.Expense{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetAllExpenses(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedExpense(t, db, "1", "group1", "user1", "100")
	seedExpense(t, db, "2", "group2", "user2", "200")

	list, err := svc.GetAll()
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGetExpenseByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedExpense(t, db, "1", "group1", "user1", "100")

	expense, err := svc.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, "Test Expense", expense.Description)
	assert.True(t, expense.Amount.Equal(decimal.NewFromInt(100)))

	_, err = svc.GetByID("999")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllExpensesOfGroup(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedUser(t, db, "user1", "User One", "user1@example.com")
	seedGroup(t, db, "group1", "Test Group", "user1")
	seedExpense(t, db, "1", "group1", "user1", "100")
	seedExpense(t, db, "2", "group1", "user1", "200")

	list, err := svc.GetAllOfGroup("group1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, e := range list {
		assert.Equal(t, "group1", e.GroupID)
	}

	// Unknown groups surface as an unclassified error, not a 404
	_, err = svc.GetAllOfGroup("invalidGroup")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestUpdateExpenseRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedUser(t, db, "user1", "User One", "user1@example.com")
	seedGroup(t, db, "group1", "Test Group", "user1")
	seedExpense(t, db, "1", "group1", "user1", "100")

	details := validDetails("group1", "user1", "150")
	details.Description = "Updated Expense"
	details.Date = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Update("1", details)
	require.NoError(t, err)

	// Round-trip: reads return the updated fields verbatim
	got, err := svc.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, details.Description, got.Description)
	assert.True(t, got.Amount.Equal(details.Amount))
	assert.Equal(t, details.GroupID, got.GroupID)
	assert.Equal(t, details.PaidByID, got.PaidByID)
	assert.False(t, got.IsSettled)
}

func TestUpdateExpenseErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedUser(t, db, "user1", "User One", "user1@example.com")
	seedGroup(t, db, "group1", "Test Group", "user1")
	seedExpense(t, db, "1", "group1", "user1", "100")

	_, err := svc.Update("999", validDetails("group1", "user1", "150"))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update("1", validDetails("group1", "user1", "-1"))
	require.ErrorIs(t, err, ErrValidation)

	// The failed update left the expense untouched
	got, err := svc.GetByID("1")
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(100)))
}

func TestDeleteExpense(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedExpense(t, db, "1", "group1", "user1", "100")

	require.NoError(t, svc.Delete("1"))
	var count int64
	require.NoError(t, db.Model(&domain.Expense{}).Count(&count).Error)
	assert.Zero(t, count)

	require.ErrorIs(t, svc.Delete("999"), ErrNotFound)
}

func TestSettleExpense(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedUser(t, db, "user1", "User One", "user1@example.com")
	seedUser(t, db, "user2", "User Two", "user2@example.com")
	seedUser(t, db, "user3", "User Three", "user3@example.com")
	seedGroup(t, db, "group1", "Test Group", "user1", "user2", "user3")
	seedExpense(t, db, "1", "group1", "user1", "300")

	deltas, err := svc.Settle("1")
	require.NoError(t, err)
	assert.Len(t, deltas, 3)

	// 300 across three members: the payer is owed the others' shares
	assert.True(t, userBalance(t, db, "user1").Equal(decimal.NewFromInt(200)))
	assert.True(t, userBalance(t, db, "user2").Equal(decimal.NewFromInt(-100)))
	assert.True(t, userBalance(t, db, "user3").Equal(decimal.NewFromInt(-100)))

	// The settled flag flipped in the same transaction
	var expense domain.Expense
	require.NoError(t, db.First(&expense, "id = ?", "1").Error)
	assert.True(t, expense.IsSettled)

	// One immutable ledger entry per member, summing to zero
	var entries []domain.LedgerEntry
	require.NoError(t, db.Where("expense_id = ?", "1").Find(&entries).Error)
	require.Len(t, entries, 3)
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Delta)
	}
	assert.True(t, sum.IsZero())
}

func TestSettleExpenseTwiceFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedUser(t, db, "user1", "User One", "user1@example.com")
	seedUser(t, db, "user2", "User Two", "user2@example.com")
	seedGroup(t, db, "group1", "Test Group", "user1", "user2")
	seedExpense(t, db, "1", "group1", "user1", "100")

	_, err := svc.Settle("1")
	require.NoError(t, err)

	_, err = svc.Settle("1")
	require.ErrorIs(t, err, ErrInvalidState)

	// The failed second attempt changed nothing
	assert.True(t, userBalance(t, db, "user1").Equal(decimal.NewFromInt(50)))
	assert.True(t, userBalance(t, db, "user2").Equal(decimal.NewFromInt(-50)))
	var count int64
	require.NoError(t, db.Model(&domain.LedgerEntry{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSettleExpenseErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)

	// Unknown expense
	_, err := svc.Settle("999")
	require.ErrorIs(t, err, ErrNotFound)

	// Expense whose group has no members
	seedExpense(t, db, "1", "empty-group", "user1", "100")
	_, err = svc.Settle("1")
	require.ErrorIs(t, err, ErrInvalidState)

	// Expense whose payer is no longer a member
	seedUser(t, db, "user1", "User One", "user1@example.com")
	seedGroup(t, db, "group1", "Test Group", "user1")
	seedExpense(t, db, "2", "group1", "outsider", "100")
	_, err = svc.Settle("2")
	require.ErrorIs(t, err, ErrInvalidState)

	// Failed settlements never reach the ledger or the balances
	var count int64
	require.NoError(t, db.Model(&domain.LedgerEntry{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.True(t, userBalance(t, db, "user1").IsZero())
}

// Updating or deleting a settled expense deliberately leaves the applied
// balances in place; settlement is not reversed.
func TestSettledExpenseUpdateAndDeleteDoNotReverseBalances(t *testing.T) {
	db := newTestDB(t)
	svc := NewExpenseService(db)
	seedUser(t, db, "user1", "User One", "user1@example.com")
	seedUser(t, db, "user2", "User Two", "user2@example.com")
	seedGroup(t, db, "group1", "Test Group", "user1", "user2")
	seedExpense(t, db, "1", "group1", "user1", "100")

	_, err := svc.Settle("1")
	require.NoError(t, err)

	// Update the settled expense's amount
	_, err = svc.Update("1", validDetails("group1", "user1", "999"))
	require.NoError(t, err)
	assert.True(t, userBalance(t, db, "user1").Equal(decimal.NewFromInt(50)))
	assert.True(t, userBalance(t, db, "user2").Equal(decimal.NewFromInt(-50)))

	// The update also did not clear the settled flag
	got, err := svc.GetByID("1")
	require.NoError(t, err)
	assert.True(t, got.IsSettled)

	// Delete the settled expense
	require.NoError(t, svc.Delete("1"))
	assert.True(t, userBalance(t, db, "user1").Equal(decimal.NewFromInt(50)))
	assert.True(t, userBalance(t, db, "user2").Equal(decimal.NewFromInt(-50)))
}
