package main

import (
	"errors"
	"log"
	"os"

	"fitcoin/internal/config"
	"fitcoin/internal/models"
	"fitcoin/internal/repositories"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the admin account plus a starter challenge and reward catalog.
// Safe to run more than once.
func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.CloseDB()

	seedAdmin(adminEmail, adminPassword)
	seedChallenges()
	seedRewards()
}

func seedAdmin(email, password string) {
	var existing models.User
	err := repositories.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Failed to look up admin user:", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Email:        email,
		Password:     string(hashed),
		Name:         "Administrator",
		Role:         "admin",
		Status:       "active",
		TokenVersion: 1,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	wallet := models.Wallet{UserID: admin.ID}
	if err := repositories.DB.Create(&wallet).Error; err != nil {
		log.Fatal("Failed to create admin wallet:", err)
	}
	admin.WalletID = &wallet.ID
	if err := repositories.DB.Save(&admin).Error; err != nil {
		log.Fatal("Failed to link admin wallet:", err)
	}

	log.Println("Admin account created")
}

func seedChallenges() {
	challenges := []models.Challenge{
		{Title: "First Steps", Description: "Walk 5,000 steps in a day", Metric: "steps", Target: 5000, Unit: "steps", Reward: 50},
		{Title: "10K Club", Description: "Walk 10,000 steps in a day", Metric: "steps", Target: 10000, Unit: "steps", Reward: 120},
		{Title: "Morning Run", Description: "Run 5 km", Metric: "distance", Target: 5, Unit: "km", Reward: 150},
		{Title: "Calorie Burner", Description: "Burn 500 kcal in one workout", Metric: "calories", Target: 500, Unit: "kcal", Reward: 100},
	}
	for _, c := range challenges {
		var count int64
		repositories.DB.Model(&models.Challenge{}).Where("title = ?", c.Title).Count(&count)
		if count > 0 {
			continue
		}
		if err := repositories.DB.Create(&c).Error; err != nil {
			log.Fatal("Failed to seed challenge:", err)
		}
		log.Printf("Seeded challenge %q", c.Title)
	}
}

func seedRewards() {
	rewards := []models.Reward{
		{Title: "Coffee Voucher", Description: "A free coffee at partner cafes", Cost: 30, Stock: 100},
		{Title: "Water Bottle", Description: "Branded stainless steel bottle", Cost: 80, Stock: 25},
		{Title: "Premium Month", Description: "One month of premium features", Cost: 200, Stock: models.UnlimitedStock},
	}
	for _, r := range rewards {
		var count int64
		repositories.DB.Model(&models.Reward{}).Where("title = ?", r.Title).Count(&count)
		if count > 0 {
			continue
		}
		if err := repositories.DB.Create(&r).Error; err != nil {
			log.Fatal("Failed to seed reward:", err)
		}
		log.Printf("Seeded reward %q", r.Title)
	}
}
