package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"

	"webgestor/config"
	"webgestor/models"
)

// provision-admin creates a fresh admin account end to end: user row,
// profile row and role grant. It refuses to touch an existing account;
// use promote-admin for those.
func main() {
	log.SetFlags(0)

	email := flag.String("email", "", "email for the new admin account")
	name := flag.String("name", "Admin", "display name for the profile")
	password := flag.String("password", "", "password for the new account")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: provision-admin -email admin@example.com -password secret [-name \"Full Name\"]")
	}
	if err := checkmail.ValidateFormat(*email); err != nil {
		log.Fatalf("invalid email %q: %v", *email, err)
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("database error: %v", err)
	}

	db := config.DB

	var existing models.User
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		log.Fatalf("account %s already exists (id %d); use promote-admin instead", *email, existing.ID)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}

	user := models.User{
		Email:        *email,
		PasswordHash: string(hash),
		Name:         name,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("creating account: %v", err)
	}

	// The profile row is written by a creation hook; wait briefly for it
	var profile models.Profile
	deadline := time.Now().Add(10 * time.Second)
	for {
		if err := db.First(&profile, "user_id = ?", user.ID).Error; err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("profile for %s never appeared; run diagnose-db", *email)
		}
		time.Sleep(500 * time.Millisecond)
	}

	if err := db.Model(&profile).Updates(map[string]interface{}{
		"role": models.RoleAdmin,
		"name": *name,
	}).Error; err != nil {
		log.Fatalf("granting admin role: %v", err)
	}

	fmt.Printf("provisioned admin %s (user %d, profile %s)\n", *email, user.ID, profile.ID)
}
