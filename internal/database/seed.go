package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type seedCategory struct {
	NameBn, NameEn, Slug, Description string
	Order                             int
}

var defaultCategories = []seedCategory{
	{"জীবন", "Life", "life", "জীবন নিয়ে উক্তি ও দর্শন", 1},
	{"অনুপ্রেরণা", "Inspiration", "inspiration", "অনুপ্রেরণামূলক ও উৎসাহব্যঞ্জক উক্তি", 2},
	{"সফলতা", "Success", "success", "সফলতা ও কৃতিত্ব নিয়ে উক্তি", 3},
	{"স্বপ্ন", "Dreams", "dreams", "স্বপ্ন ও লক্ষ্য নিয়ে উক্তি", 4},
	{"পরিশ্রম", "Hard Work", "hard-work", "পরিশ্রম ও কঠোর সাধনা নিয়ে উক্তি", 5},
	{"ধৈর্য", "Patience", "patience", "ধৈর্য ও সহনশীলতা নিয়ে উক্তি", 6},
	{"সময়", "Time", "time", "সময় ও সময়ের মূল্য নিয়ে উক্তি", 7},
	{"ভালোবাসা", "Love", "love", "ভালোবাসা ও প্রেম নিয়ে উক্তি", 8},
	{"আনন্দ", "Happiness", "happiness", "আনন্দ ও খুশি নিয়ে উক্তি", 9},
	{"আশা", "Hope", "hope", "আশা ও প্রত্যাশা নিয়ে উক্তি", 10},
}

type seedQuote struct {
	TextBn, TextEn, Author, CategorySlug string
}

var defaultQuotes = []seedQuote{
	{"যে ব্যক্তি কখনো ভুল করেনি সে কখনো নতুন কিছু করার চেষ্টা করেনি।", "A person who never made a mistake never tried anything new.", "আলবার্ট আইনস্টাইন", "inspiration"},
	{"সফলতা চূড়ান্ত নয়, ব্যর্থতা মারাত্মক নয়: চালিয়ে যাওয়ার সাহসই গুরুত্বপূর্ণ।", "Success is not final, failure is not fatal: it is the courage to continue that counts.", "উইনস্টন চার্চিল", "inspiration"},
	{"ভালোবাসা হল জীবনের সৌন্দর্য, আত্মার সুখ এবং হৃদয়ের আনন্দ।", "Love is the beauty of life, the happiness of the soul and the joy of the heart.", "রবীন্দ্রনাথ ঠাকুর", "love"},
	{"জীবন হল যা ঘটে যখন তুমি অন্য পরিকল্পনা করতে ব্যস্ত থাকো।", "Life is what happens when you are busy making other plans.", "জন লেনন", "life"},
	{"তোমার সময় সীমিত, তাই অন্যের জীবন যাপন করে তা নষ্ট করো না।", "Your time is limited, so don't waste it living someone else's life.", "স্টিভ জবস", "life"},
}

var defaultGradients = []models.StudioAsset{
	{Type: models.AssetBackgroundGradient, Name: "Sunset", Value: "linear-gradient(135deg, #667eea 0%, #764ba2 100%)", IsActive: true, Order: 1},
	{Type: models.AssetBackgroundGradient, Name: "Ocean", Value: "linear-gradient(135deg, #2E3192 0%, #1BFFFF 100%)", IsActive: true, Order: 2},
	{Type: models.AssetBackgroundGradient, Name: "Forest", Value: "linear-gradient(135deg, #0F2027 0%, #203A43 50%, #2C5364 100%)", IsActive: true, Order: 3},
}

// SeedAdmin creates the super admin from config unless a live user with that
// email already exists.
func SeedAdmin(db *gorm.DB, cfg config.AdminConfig) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))

	var existing models.User
	err := db.Where("email = ? AND deleted_at IS NULL", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Email:    email,
		Password: hash,
		Name:     cfg.Name,
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	logrus.WithField("email", email).Info("super admin created")
	return admin, nil
}

// ResetAdmin restores the configured admin's password, role and active flag.
func ResetAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	admin, err := SeedAdmin(db, cfg)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	return db.Model(&models.User{}).Where("id = ?", admin.ID).Updates(map[string]interface{}{
		"password":  hash,
		"role":      models.RoleSuperAdmin,
		"is_active": true,
	}).Error
}

// SeedContent inserts the starter categories, quotes and studio gradients.
// Rows that already exist are left alone.
func SeedContent(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		categoryIDs := make(map[string]string, len(defaultCategories))

		for _, sc := range defaultCategories {
			var category models.Category
			err := tx.Where("slug = ? AND deleted_at IS NULL", sc.Slug).First(&category).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				description := sc.Description
				category = models.Category{
					NameBn:      sc.NameBn,
					NameEn:      sc.NameEn,
					Slug:        sc.Slug,
					Description: &description,
					IsActive:    true,
					Order:       sc.Order,
				}
				err = tx.Create(&category).Error
			}
			if err != nil {
				return fmt.Errorf("seed category %s: %w", sc.Slug, err)
			}
			categoryIDs[sc.Slug] = category.ID
		}

		var quoteCount int64
		if err := tx.Model(&models.Quote{}).Count(&quoteCount).Error; err != nil {
			return err
		}
		if quoteCount == 0 {
			now := time.Now().UTC()
			for _, sq := range defaultQuotes {
				textEn, author := sq.TextEn, sq.Author
				quote := models.Quote{
					TextBn:      sq.TextBn,
					TextEn:      &textEn,
					Author:      &author,
					CategoryID:  categoryIDs[sq.CategorySlug],
					Status:      models.QuoteStatusPublished,
					PublishedAt: &now,
				}
				if err := tx.Create(&quote).Error; err != nil {
					return fmt.Errorf("seed quote: %w", err)
				}
			}
		}

		var assetCount int64
		if err := tx.Model(&models.StudioAsset{}).Count(&assetCount).Error; err != nil {
			return err
		}
		if assetCount == 0 {
			assets := make([]models.StudioAsset, len(defaultGradients))
			copy(assets, defaultGradients)
			if err := tx.Create(&assets).Error; err != nil {
				return fmt.Errorf("seed studio assets: %w", err)
			}
		}

		logrus.WithFields(logrus.Fields{
			"categories": len(defaultCategories),
			"quotes":     len(defaultQuotes),
			"assets":     len(defaultGradients),
		}).Info("seed content ensured")
		return nil
	})
}
