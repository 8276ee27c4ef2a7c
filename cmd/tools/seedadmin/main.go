package main

import (
	"flag"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/gregbolastig/short-courses-sub001/internal/modules/admins"
)

// seedadmin creates the first admin account so the panel can be
// signed into on a fresh database.
func main() {
	username := flag.String("username", "admin", "admin username")
	email := flag.String("email", "admin@localhost", "admin email")
	password := flag.String("password", "", "initial password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}
	if err := admins.ValidateNewPassword(*password); err != nil {
		log.Fatalf("weak password: %v", err)
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	u := admins.AdminUser{
		Username:     *username,
		Email:        *email,
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    time.Now(),
	}
	if err := db.Create(&u).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("✓ admin %q created (id=%d)", u.Username, u.ID)
}
