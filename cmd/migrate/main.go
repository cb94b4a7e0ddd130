package main

import (
	"log"
	"os"

	"plans-assistant-be/internal/model"
	"plans-assistant-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: gen_random_uuid() needs pgcrypto on older Postgres
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warning: failed to create extension pgcrypto: %v", err)
	}

	// 4. AutoMigrate schema
	if err := db.AutoMigrate(
		&model.Plan{},
		&model.ChatExchange{},
	); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	log.Println("Migration completed!")
}
