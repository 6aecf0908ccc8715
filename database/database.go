package database

import (
	"fmt"
	"log"
	"strings"

	config "github.com/carepulse/carepulse-backend/configs"
	"github.com/carepulse/carepulse-backend/models"
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
		&models.Doctor{},
		&models.Patient{},
		&models.Appointment{},
		&models.DoctorAvailability{},
		&models.BlockedSlot{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️ ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
	}
	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
	}

	adminUser := models.User{
		Name:     config.ConfigOr("ADMIN_FULL_NAME", "Administrator"),
		Email:    adminEmail,
		Phone:    config.Config("ADMIN_PHONE"),
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedDoctors fills the roster from the DOCTOR_ROSTER env var, a
// comma-separated list of display names. Existing doctors are left untouched
// so the roster can grow without resetting anything.
func SeedDoctors() {
	roster := DoctorRoster()
	if len(roster) == 0 {
		log.Println("⚠️ DOCTOR_ROSTER not set, skipping doctor seed")
		return
	}

	for _, name := range roster {
		var count int64
		if err := DB.Model(&models.Doctor{}).Where("name = ?", name).Count(&count).Error; err != nil {
			log.Printf("🔥 Failed to check for doctor %s: %v", name, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&models.Doctor{Name: name}).Error; err != nil {
			log.Printf("🔥 Failed to seed doctor %s: %v", name, err)
		}
	}
	log.Println("✅ Doctor roster seeded successfully")
}

// DoctorRoster parses DOCTOR_ROSTER into a clean list of doctor names.
func DoctorRoster() []string {
	raw := config.Config("DOCTOR_ROSTER")
	if raw == "" {
		return nil
	}

	var roster []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			roster = append(roster, name)
		}
	}
	return roster
}
