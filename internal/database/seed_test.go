package database

import (
	"testing"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedIsIdempotent(t *testing.T) {
	utils.BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { utils.BcryptCost = 12 })

	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { Close(db) })

	admin := config.AdminConfig{Email: "Admin@Example.com", Password: "Admin@123456", Name: "Admin"}
	for i := 0; i < 2; i++ {
		if _, err := SeedAdmin(db, admin); err != nil {
			t.Fatalf("SeedAdmin #%d: %v", i, err)
		}
		if err := SeedContent(db); err != nil {
			t.Fatalf("SeedContent #%d: %v", i, err)
		}
	}

	var users, categories, quotes, assets int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Category{}).Count(&categories)
	db.Model(&models.Quote{}).Count(&quotes)
	db.Model(&models.StudioAsset{}).Count(&assets)

	if users != 1 || categories != int64(len(defaultCategories)) || quotes != int64(len(defaultQuotes)) || assets != int64(len(defaultGradients)) {
		t.Fatalf("counts users=%d categories=%d quotes=%d assets=%d", users, categories, quotes, assets)
	}

	var stored models.User
	if err := db.Where("email = ?", "admin@example.com").First(&stored).Error; err != nil {
		t.Fatalf("admin email not normalised: %v", err)
	}
	if stored.Role != models.RoleSuperAdmin || !stored.IsActive {
		t.Fatalf("admin = %+v", stored)
	}
}

func TestResetAdmin(t *testing.T) {
	utils.BcryptCost = bcrypt.MinCost
	t.Cleanup(func() { utils.BcryptCost = 12 })

	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { Close(db) })

	cfg := config.AdminConfig{Email: "admin@example.com", Password: "Admin@123456", Name: "Admin"}
	admin, err := SeedAdmin(db, cfg)
	if err != nil {
		t.Fatal(err)
	}
	db.Model(&models.User{}).Where("id = ?", admin.ID).Updates(map[string]interface{}{"is_active": false, "role": models.RoleUser})

	cfg.Password = "Changed@98765"
	if err := ResetAdmin(db, cfg); err != nil {
		t.Fatalf("ResetAdmin: %v", err)
	}

	var stored models.User
	db.First(&stored, "id = ?", admin.ID)
	if !stored.IsActive || stored.Role != models.RoleSuperAdmin || !utils.VerifyPassword(stored.Password, "Changed@98765") {
		t.Fatalf("admin not reset: %+v", stored)
	}
}
