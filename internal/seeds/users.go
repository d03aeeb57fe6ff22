package seeds

import (
	"log"

	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var sampleUsers = []models.User{
	{
		Name:  "Aarav Sharma",
		Email: "aarav@example.com",
		Preferences: models.Preferences{
			Gender: "male", SleepTime: 1, StudyTime: 2,
			Cleanliness: 7, Noise: 5,
			Smokes: false, Drinks: false,
			OkayWithSmoking: false, OkayWithDrinking: true,
			Guests: true, Food: "veg", Personality: "introvert",
			BudgetMin: 3500, BudgetMax: 6000, Location: "Block A",
		},
	},
	{
		Name:  "Ishita Verma",
		Email: "ishita@example.com",
		Preferences: models.Preferences{
			Gender: "female", SleepTime: 2, StudyTime: 2,
			Cleanliness: 8, Noise: 3,
			Smokes: false, Drinks: false,
			OkayWithSmoking: false, OkayWithDrinking: false,
			Guests: false, Food: "veg", Personality: "ambivert",
			BudgetMin: 4000, BudgetMax: 7000, Location: "Block B",
		},
	},
	{
		Name:  "Rohan Mehta",
		Email: "rohan@example.com",
		Preferences: models.Preferences{
			Gender: "male", SleepTime: 3, StudyTime: 1,
			Cleanliness: 5, Noise: 7,
			Smokes: true, Drinks: true,
			OkayWithSmoking: true, OkayWithDrinking: true,
			Guests: true, Food: "nonveg", Personality: "extrovert",
			BudgetMin: 3000, BudgetMax: 5500, Location: "Block A",
		},
	},
	{
		Name:  "Sneha Kapoor",
		Email: "sneha@example.com",
		Preferences: models.Preferences{
			Gender: "female", SleepTime: 1, StudyTime: 3,
			Cleanliness: 9, Noise: 2,
			Smokes: false, Drinks: true,
			OkayWithSmoking: false, OkayWithDrinking: true,
			Guests: false, Food: "veg", Personality: "introvert",
			BudgetMin: 5000, BudgetMax: 8000, Location: "Block C",
		},
	},
	{
		Name:  "Kabir Singh",
		Email: "kabir@example.com",
		Preferences: models.Preferences{
			Gender: "male", SleepTime: 2, StudyTime: 2,
			Cleanliness: 6, Noise: 6,
			Smokes: false, Drinks: true,
			OkayWithSmoking: true, OkayWithDrinking: true,
			Guests: true, Food: "nonveg", Personality: "extrovert",
			BudgetMin: 3500, BudgetMax: 6500, Location: "Block A",
		},
	},
}

const samplePassword = "Password@123"

// SeedUsers inserts the demo roster, skipping emails that already exist so
// the seeder stays re-runnable against a live database.
func SeedUsers() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(samplePassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created := 0
	for _, u := range sampleUsers {
		var existing models.User
		if err := database.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			continue
		}

		u.Password = string(hash)
		if err := database.DB.Create(&u).Error; err != nil {
			return err
		}
		created++
	}

	log.Printf("Seeded %d demo users (password: %s)", created, samplePassword)
	return nil
}
