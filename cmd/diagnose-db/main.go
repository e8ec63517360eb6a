package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"webgestor/config"
	"webgestor/models"
)

// diagnose-db prints a health report of the backing database: user and
// profile counts, users missing a profile row, and the size of each
// persisted collection.
func main() {
	log.SetFlags(0)

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("database error: %v", err)
	}

	db := config.DB
	exitCode := 0

	var userCount, profileCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		log.Fatalf("counting users: %v", err)
	}
	if err := db.Model(&models.Profile{}).Count(&profileCount).Error; err != nil {
		log.Fatalf("counting profiles: %v", err)
	}

	fmt.Printf("users:    %d\n", userCount)
	fmt.Printf("profiles: %d\n", profileCount)

	// A user without a profile cannot appear in any team or task view
	var orphans []models.User
	if err := db.Where("id NOT IN (?)",
		db.Model(&models.Profile{}).Select("user_id"),
	).Find(&orphans).Error; err != nil {
		log.Fatalf("finding users without profiles: %v", err)
	}
	if len(orphans) > 0 {
		exitCode = 1
		fmt.Printf("\nusers without a profile row (%d):\n", len(orphans))
		for _, u := range orphans {
			fmt.Printf("  %d  %s\n", u.ID, u.Email)
		}
	}

	var admins int64
	if err := db.Model(&models.Profile{}).
		Where("role = ?", models.RoleAdmin).
		Count(&admins).Error; err != nil {
		log.Fatalf("counting admins: %v", err)
	}
	fmt.Printf("admins:   %d\n", admins)
	if admins == 0 {
		exitCode = 1
		fmt.Println("warning: no admin profile exists")
	}

	var collections []models.Collection
	if err := db.Order("key").Find(&collections).Error; err != nil {
		log.Fatalf("listing collections: %v", err)
	}

	fmt.Println("\ncollections:")
	if len(collections) == 0 {
		fmt.Println("  (none)")
	}
	for _, col := range collections {
		entries := "?"
		var arr []json.RawMessage
		if err := json.Unmarshal(col.Data, &arr); err == nil {
			entries = fmt.Sprintf("%d", len(arr))
		}
		fmt.Printf("  %-28s %6d bytes  %s entries  updated %s\n",
			col.Key, len(col.Data), entries, col.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := checkProfileTrigger(db); err != nil {
		exitCode = 1
		fmt.Printf("\nprofile trigger check FAILED: %v\n", err)
	} else {
		fmt.Println("\nprofile trigger check OK")
	}

	os.Exit(exitCode)
}

// checkProfileTrigger creates a throwaway account, waits for its profile row
// to appear, and cleans both up again.
func checkProfileTrigger(db *gorm.DB) error {
	email := fmt.Sprintf("diagnose-%d@webgestor.invalid", time.Now().UnixNano())
	user := models.User{
		Email:        email,
		PasswordHash: "diagnostic",
		IsActive:     false,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("creating throwaway user: %w", err)
	}
	defer func() {
		db.Where("user_id = ?", user.ID).Delete(&models.Profile{})
		db.Unscoped().Delete(&user)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for {
		var profile models.Profile
		err := db.First(&profile, "user_id = ?", user.ID).Error
		if err == nil {
			if profile.Role != models.RoleCollaborator {
				return fmt.Errorf("profile created with role %q, want %q", profile.Role, models.RoleCollaborator)
			}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("reading profile: %w", err)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("profile row never appeared for user %d", user.ID)
		}
		time.Sleep(250 * time.Millisecond)
	}
}
