package main

import (
	"log"
	"os"

	"plans-assistant-be/internal/model"
	"plans-assistant-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Plan Catalog...")

	plans := []model.Plan{
		{Category: "Business Mobile", Plans: "5G Infinite Premium", Price: 85.00, Description: "Unlimited premium 5G data with mobile hotspot and international roaming"},
		{Category: "Business Mobile", Plans: "5G Infinite", Price: 70.00, Description: "Unlimited 5G data for everyday business use"},
		{Category: "Business Mobile", Plans: "5G Start", Price: 55.00, Description: "Entry 5G plan with 25GB of premium data"},
		{Category: "Business Internet", Plans: "Business Internet 300 Mbps", Price: 69.00, Description: "Fiber internet with 300 Mbps symmetrical speeds"},
		{Category: "Business Internet", Plans: "Business Internet 500 Mbps", Price: 89.00, Description: "Fiber internet with 500 Mbps symmetrical speeds"},
		{Category: "Business Internet", Plans: "Business Internet Gigabit", Price: 129.00, Description: "Gigabit fiber internet for bandwidth-heavy teams"},
		{Category: "Business TV", Plans: "Business TV Essentials", Price: 39.00, Description: "Core channel lineup for waiting rooms and break areas"},
		{Category: "Business TV", Plans: "Business TV Preferred", Price: 59.00, Description: "Expanded lineup with sports and news packages"},
	}

	for _, p := range plans {
		// Skip rows that already exist so reseeding stays idempotent
		var existing model.Plan
		if err := db.Where("plans = ?", p.Plans).First(&existing).Error; err == nil {
			log.Printf("Plan '%s' already exists, skipping...", p.Plans)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating plan '%s': %v", p.Plans, err)
		} else {
			log.Printf("Created plan: %s (%s)", p.Plans, p.Category)
		}
	}

	log.Println("Plan seeding completed!")
}
