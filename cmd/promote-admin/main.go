package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"webgestor/config"
	"webgestor/models"
	"webgestor/utils"
)

// promote-admin grants the admin role to an existing account. With
// -password it creates the account first when no user matches the email.
func main() {
	log.SetFlags(0)

	email := flag.String("email", "", "email of the account to promote")
	name := flag.String("name", "", "display name to set on the profile (optional)")
	password := flag.String("password", "", "create the account with this password if it does not exist")
	flag.Parse()

	if *email == "" {
		log.Fatal("usage: promote-admin -email user@example.com [-name \"Full Name\"] [-password secret]")
	}
	if err := checkmail.ValidateFormat(*email); err != nil {
		log.Fatalf("invalid email %q: %v", *email, err)
	}

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("database error: %v", err)
	}

	db := config.DB

	var user models.User
	err := db.Where("email = ?", *email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if *password == "" {
			log.Fatalf("no account for %s; pass -password to create one", *email)
		}
		if len(*password) < 8 {
			log.Fatal("password must be at least 8 characters")
		}

		hash, hashErr := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if hashErr != nil {
			log.Fatalf("hashing password: %v", hashErr)
		}
		user = models.User{
			Email:        *email,
			PasswordHash: string(hash),
			Name:         name,
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("creating account: %v", err)
		}
		fmt.Printf("created account %s (id %d)\n", user.Email, user.ID)
	} else if err != nil {
		log.Fatalf("looking up account: %v", err)
	}

	profile, err := utils.EnsureProfile(db, &user)
	if err != nil {
		log.Fatalf("loading profile: %v", err)
	}

	if profile.Role == models.RoleAdmin {
		fmt.Printf("%s is already an admin\n", *email)
		return
	}

	updates := map[string]interface{}{"role": models.RoleAdmin}
	if *name != "" {
		updates["name"] = *name
	}
	if err := db.Model(profile).Updates(updates).Error; err != nil {
		log.Fatalf("promoting profile: %v", err)
	}

	fmt.Printf("promoted %s to admin (profile %s)\n", *email, profile.ID)
}
