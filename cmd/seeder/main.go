package main

import (
	"log"

	"github.com/imaditya55/RoomMateMatcher/internal/config"
	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	"github.com/imaditya55/RoomMateMatcher/internal/seeds"
)

func main() {
	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations (just in case)...")
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.SavedRoommate{},
		&models.RoommateRequest{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	if err := seeds.SeedUsers(); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Println("Seeding complete")
}
