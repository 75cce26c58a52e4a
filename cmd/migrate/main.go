package main

import (
	"expense_sharing/internal/config" // Custom import path (Config)
	"expense_sharing/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run schema migration against MySQL
}
