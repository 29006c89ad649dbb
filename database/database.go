package database

import (
	"fmt"
	"log"

	config "github.com/taskpay/taskpay_backend/configs"
	"github.com/taskpay/taskpay_backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Subscription{},
		&models.DailyTask{},
		&models.Submission{},
		&models.Referral{},
		&models.ReferralCommission{},
		&models.Withdrawal{},
		&models.Payment{},
		&models.KYCRecord{},
		&models.SiteSettings{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}
	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}
	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedDefaults writes the settings row and the starter plan catalogue on
// first boot. Existing rows are left alone so admin edits survive restarts.
func SeedDefaults() {
	var settingsCount int64
	DB.Model(&models.SiteSettings{}).Count(&settingsCount)
	if settingsCount == 0 {
		settings := models.SiteSettings{ID: 1}
		if err := DB.Create(&settings).Error; err != nil {
			log.Fatalf("🔥 Failed to seed site settings: %v", err)
		}
		log.Println("✅ Site settings seeded")
	}

	var planCount int64
	DB.Model(&models.Plan{}).Count(&planCount)
	if planCount == 0 {
		plans := []models.Plan{
			{Name: "Basic", Price: 1500, DailyQuota: 3, ValidityDays: 30},
			{Name: "Standard", Price: 4000, DailyQuota: 8, ValidityDays: 30},
			{Name: "Premium", Price: 9000, DailyQuota: 15, ValidityDays: 30},
		}
		if err := DB.Create(&plans).Error; err != nil {
			log.Fatalf("🔥 Failed to seed plans: %v", err)
		}
		log.Println("✅ Plan catalogue seeded")
	}
}

// GetSettings loads the single settings row seeded by SeedDefaults.
func GetSettings() (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := DB.First(&settings, 1).Error
	return settings, err
}
