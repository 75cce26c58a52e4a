package api

import (
	"expense_sharing/internal/middleware" // Auth middleware
	"expense_sharing/internal/service"    // Service layer

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// SetupRouter wires every route onto a gin engine. rdb may be nil, in which
// case read caching is disabled.
func SetupRouter(r *gin.Engine, db *gorm.DB, rdb *redis.Client, jwtSecret string) {
	// Service layer over the shared database handle
	users := service.NewUserService(db)       // Identity and credentials
	groups := service.NewGroupService(db)     // Groups and memberships
	expenses := service.NewExpenseService(db) // Expenses and settlement

	// Auth routes, open to the world
	auth := r.Group("/api/auth")
	auth.POST("/register", RegisterHandler(users))        // Registration endpoint
	auth.POST("/login", LoginHandler(users, jwtSecret))   // Login endpoint

	// Everything else sits behind JWT
	protected := r.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(jwtSecret))

	// User routes
	protected.GET("/users/me", GetMeHandler(users, rdb))           // Own profile and balance
	protected.GET("/users/me/ledger", GetMyLedgerHandler(users))   // Own settlement history
	protected.GET("/users/:id", GetUserByIDHandler(users))         // User by id
	protected.GET("/users/:id/groups", GetUserGroupsHandler(groups)) // Groups of a user
	protected.PUT("/users/:id", UpdateUserHandler(users, rdb))     // Update user
	protected.DELETE("/users/:id", DeleteUserHandler(users, rdb))  // Delete user

	// Group routes
	protected.POST("/groups", CreateGroupHandler(groups))                       // Create group
	protected.GET("/groups", GetAllGroupsHandler(groups))                       // All groups
	protected.GET("/groups/:id", GetGroupByIDHandler(groups))                   // Group by id
	protected.GET("/groups/:id/expenses", GetGroupExpensesHandler(expenses, rdb)) // Expenses of a group
	protected.DELETE("/groups/:id", DeleteGroupHandler(groups, rdb))            // Delete group with cascade

	// Expense routes
	protected.POST("/expenses", AddExpenseHandler(expenses, rdb))              // Add expense
	protected.GET("/expenses", GetAllExpensesHandler(expenses))                // All expenses
	protected.GET("/expenses/:id", GetExpenseByIDHandler(expenses))            // Expense by id
	protected.PUT("/expenses/:id", UpdateExpenseHandler(expenses, rdb))        // Update expense
	protected.DELETE("/expenses/:id", DeleteExpenseHandler(expenses, rdb))     // Delete expense
	protected.POST("/expenses/:id/settle", SettleExpenseHandler(expenses, rdb)) // Settle expense

	// Admin routes (protected, admin only)
	admin := r.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(jwtSecret), middleware.AdminOnlyMiddleware(db))
	admin.GET("/users", ListUsersHandler(db, rdb))    // List users with balances
	admin.GET("/ledger", ListLedgerHandler(db, rdb))  // List settlement ledger
}
