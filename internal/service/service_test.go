package service

import (
	"testing"
	"time"

	"expense_sharing/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Group{},
		&domain.UserGroup{},
		&domain.Expense{},
		&domain.LedgerEntry{},
	))
	return db
}

// seedUser inserts a user with a zero balance
func seedUser(t *testing.T, db *gorm.DB, id, name, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: "hashed-password",
		Role:     "user",
		Balance:  decimal.Zero,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedGroup inserts a group with one membership per given user id
func seedGroup(t *testing.T, db *gorm.DB, id, name string, memberIDs ...string) *domain.Group {
	t.Helper()
	group := &domain.Group{
		ID:          id,
		Name:        name,
		Description: "Test Description",
		CreatedDate: time.Now(),
	}
	require.NoError(t, db.Create(group).Error)
	for _, userID := range memberIDs {
		require.NoError(t, db.Create(&domain.UserGroup{UserID: userID, GroupID: id}).Error)
	}
	return group
}

// seedExpense inserts an unsettled expense
func seedExpense(t *testing.T, db *gorm.DB, id, groupID, paidByID, amount string) *domain.Expense {
	t.Helper()
	expense := &domain.Expense{
		ID:          id,
		Description: "Test Expense",
		Amount:      decimal.RequireFromString(amount),
		GroupID:     groupID,
		PaidByID:    paidByID,
		Date:        time.Now(),
	}
	require.NoError(t, db.Create(expense).Error)
	return expense
}

// userBalance reloads one user's balance
func userBalance(t *testing.T, db *gorm.DB, id string) decimal.Decimal {
	t.Helper()
	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", id).Error)
	return user.Balance
}
