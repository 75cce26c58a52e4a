package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"expense_sharing/internal/domain"  // Importing domain models
	"expense_sharing/internal/service" // Service layer
	"expense_sharing/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// AddExpenseHandler validates and persists a new expense
func AddExpenseHandler(expenses *service.ExpenseService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ExpenseDetails // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Persist the expense; balances are untouched until settlement
		if _, err := expenses.Add(req.GroupID, &req); err != nil {
			respondError(c, err)
			return
		}
		// Invalidate the group's cached expense list
		if rdb != nil {
			_ = utils.DeleteCache(context.Background(), rdb, utils.GroupExpensesKey(req.GroupID))
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Expense added successfully."})
	}
}

// GetAllExpensesHandler returns every expense
func GetAllExpensesHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := expenses.GetAll() // Fetch all expenses
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list) // Return the list
	}
}

// GetExpenseByIDHandler returns one expense by id
func GetExpenseByIDHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		expense, err := expenses.GetByID(c.Param("id")) // Fetch by path id
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, expense) // Return the expense
	}
}

// GetGroupExpensesHandler returns the expenses of one group, cached per group
func GetGroupExpensesHandler(expenses *service.ExpenseService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Param("id")                      // Group id from the path
		cacheKey := utils.GroupExpensesKey(groupID)   // Cache key for this group's list
		ctx := context.Background()                   // Context for Redis operations
		var cached []domain.Expense                   // Cached expense list
		if rdb != nil {
			// Try to get from cache
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
			if err == nil && found {
				// Return cached expense list
				c.JSON(http.StatusOK, gin.H{"expenses": cached, "cached": true})
				return
			}
		}
		// If not in cache, fetch from the service
		list, err := expenses.GetAllOfGroup(groupID)
		if err != nil {
			respondError(c, err)
			return
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, list, 60*time.Second) // Cache for 60 seconds
		}
		c.JSON(http.StatusOK, gin.H{"expenses": list, "cached": false}) // Return the list
	}
}

// UpdateExpenseHandler replaces all mutable fields of an expense
func UpdateExpenseHandler(expenses *service.ExpenseService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ExpenseDetails // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		expense, err := expenses.Update(c.Param("id"), &req) // Apply the update
		if err != nil {
			respondError(c, err)
			return
		}
		// Invalidate the group's cached expense list
		if rdb != nil {
			_ = utils.DeleteCache(context.Background(), rdb, utils.GroupExpensesKey(expense.GroupID))
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Expense updated successfully."})
	}
}

// DeleteExpenseHandler removes an expense
func DeleteExpenseHandler(expenses *service.ExpenseService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Expense id from the path
		// Fetch first so the owning group's cache can be invalidated after
		expense, err := expenses.GetByID(id)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := expenses.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		// Invalidate the group's cached expense list
		if rdb != nil {
			_ = utils.DeleteCache(context.Background(), rdb, utils.GroupExpensesKey(expense.GroupID))
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully."})
	}
}

// SettleExpenseHandler performs the one-way settlement of an expense
func SettleExpenseHandler(expenses *service.ExpenseService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Expense id from the path
		// Settle atomically; the returned deltas name every affected member
		deltas, err := expenses.Settle(id)
		if err != nil {
			respondError(c, err)
			return
		}
		// Invalidate the cached balance of every affected member
		if rdb != nil {
			ctx := context.Background() // Context for Redis operations
			for _, d := range deltas {
				_ = utils.DeleteCache(ctx, rdb, utils.BalanceKey(d.UserID))
			}
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Expense settled successfully."})
	}
}
