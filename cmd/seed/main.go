package main

import (
	"context"
	"log"

	"notes-api/internal/config"
	"notes-api/internal/repository/unitofwork"
	"notes-api/internal/seed"
	"notes-api/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(database.GormConfig{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.Connection,
		LogLevel: cfg.Database.LogLevel,
	})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding API test user...")

	user, created, err := seed.TestUser(context.Background(), unitofwork.NewRepositoryFactory(db), cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("Error seeding test user: %v", err)
	}

	if created {
		log.Printf("Created user: %s (id %d)", user.Email, user.Id)
	} else {
		log.Printf("User '%s' already exists, credentials reset", user.Email)
	}
}
