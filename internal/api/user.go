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

// GetMeHandler returns the authenticated user's profile and balance, cached
func GetMeHandler(users *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id := userID.(string)           // Authenticated user id
		cacheKey := utils.BalanceKey(id) // Cache key for the profile
		ctx := context.Background()     // Context for Redis operations
		var cached domain.User          // Cached user
		if rdb != nil {
			// Try to get from cache
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
			if err == nil && found {
				// Return cached profile
				c.JSON(http.StatusOK, gin.H{"user": cached, "cached": true})
				return
			}
		}
		// If not in cache, fetch from the service
		user, err := users.GetByID(id)
		if err != nil {
			respondError(c, err)
			return
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, user, 60*time.Second) // Cache for 60 seconds
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "cached": false}) // Return the profile
	}
}

// GetMyLedgerHandler returns the authenticated user's settlement history
func GetMyLedgerHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		entries, err := users.LedgerEntries(userID.(string)) // Fetch settlement history
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries}) // Return the entries
	}
}

// GetUserByIDHandler returns one user by id
func GetUserByIDHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetByID(c.Param("id")) // Fetch by path id
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user) // Return the user
	}
}

// UpdateUserHandler replaces the patchable fields of a user
func UpdateUserHandler(users *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UserPatch // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		id := c.Param("id") // User id from the path
		if err := users.Update(id, &req); err != nil {
			respondError(c, err)
			return
		}
		// Invalidate the user's cached profile
		if rdb != nil {
			_ = utils.DeleteCache(context.Background(), rdb, utils.BalanceKey(id))
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully."})
	}
}

// DeleteUserHandler removes a user
func DeleteUserHandler(users *service.UserService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // User id from the path
		if err := users.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		// Invalidate the user's cached profile
		if rdb != nil {
			_ = utils.DeleteCache(context.Background(), rdb, utils.BalanceKey(id))
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
	}
}
