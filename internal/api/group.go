package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"expense_sharing/internal/service" // Service layer
	"expense_sharing/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// CreateGroupHandler creates a group with its initial members
func CreateGroupHandler(groups *service.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.GroupCreation // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		group, err := groups.Create(&req) // Create group and memberships transactionally
		if err != nil {
			respondError(c, err)
			return
		}
		// Point the caller at the created resource
		c.Header("Location", "/api/groups/"+group.ID)
		c.JSON(http.StatusCreated, group) // Return the created group
	}
}

// GetAllGroupsHandler returns every group
func GetAllGroupsHandler(groups *service.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := groups.GetAll() // Fetch all groups
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list) // Return the list
	}
}

// GetGroupByIDHandler returns one group by id
func GetGroupByIDHandler(groups *service.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		group, err := groups.GetByID(c.Param("id")) // Fetch by path id
		if err != nil {
			respondError(c, err)
			return
		}
		// The service signals an unknown id with an absent group
		if group == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
			return
		}
		c.JSON(http.StatusOK, group) // Return the group
	}
}

// GetUserGroupsHandler returns every group a user belongs to
func GetUserGroupsHandler(groups *service.GroupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := groups.GetByUserID(c.Param("id")) // Fetch by membership
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list) // Return the list
	}
}

// DeleteGroupHandler removes a group, its memberships and its expenses
func DeleteGroupHandler(groups *service.GroupService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Group id from the path
		if err := groups.Delete(id); err != nil {
			respondError(c, err)
			return
		}
		// Invalidate the group's cached expense list
		if rdb != nil {
			_ = utils.DeleteCache(context.Background(), rdb, utils.GroupExpensesKey(id))
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Group deleted successfully."})
	}
}
