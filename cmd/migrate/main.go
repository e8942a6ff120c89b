package main

import (
	"log"

	"notes-api/internal/config"
	"notes-api/internal/model"
	"notes-api/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDB(database.GormConfig{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.Connection,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate users, personal_access_tokens, tags, notes
	log.Printf("Running AutoMigrate for %d tables...", len(model.All()))
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Success: Database migration completed.")
}
