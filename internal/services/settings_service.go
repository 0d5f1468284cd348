package services

import (
	"context"
	"time"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Feature toggle keys known to the clients.
const (
	ToggleDownloadEnabled  = "DOWNLOAD_ENABLED"
	ToggleShareEnabled     = "SHARE_ENABLED"
	ToggleWatermarkEnabled = "WATERMARK_ENABLED"
	ToggleLoginRequired    = "LOGIN_REQUIRED"
	ToggleAdsEnabled       = "ADS_ENABLED"
	TogglePremiumFeatures  = "PREMIUM_FEATURES"
)

var defaultToggles = []struct {
	key         string
	enabled     bool
	description string
}{
	{ToggleDownloadEnabled, true, "Allow users to download quote images"},
	{ToggleShareEnabled, true, "Allow users to share quotes on social media"},
	{ToggleWatermarkEnabled, false, "Add watermark to downloaded images"},
	{ToggleLoginRequired, false, "Require login to access studio features"},
	{ToggleAdsEnabled, false, "Show advertisements on the site"},
	{TogglePremiumFeatures, false, "Enable premium studio features"},
}

// key is a keyword in some dialects, so it is always quoted.
var keyColumn = clause.Column{Name: "key"}

type SettingsService struct {
	db       *gorm.DB
	activity *ActivityLogService
}

func NewSettingsService(db *gorm.DB, activity *ActivityLogService) *SettingsService {
	return &SettingsService{db: db, activity: activity}
}

func (s *SettingsService) GetFeatureToggles(ctx context.Context) ([]models.FeatureToggle, error) {
	var toggles []models.FeatureToggle
	if err := s.db.WithContext(ctx).Order(clause.OrderByColumn{Column: keyColumn}).Find(&toggles).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return toggles, nil
}

// UpdateFeatureToggle sets a toggle, creating it when the key is new.
func (s *SettingsService) UpdateFeatureToggle(ctx context.Context, actor Actor, key string, isEnabled bool) (*models.FeatureToggle, error) {
	toggle := models.FeatureToggle{
		Key:       key,
		IsEnabled: isEnabled,
		UpdatedBy: stringPtr(actor.UserID),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_enabled", "updated_by", "updated_at"}),
	}).Create(&toggle).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	if err := s.db.WithContext(ctx).Where(clause.Eq{Column: keyColumn, Value: key}).First(&toggle).Error; err != nil {
		return nil, apperr.FromDB(err)
	}

	s.activity.Log(actor, models.ActionUpdate, models.EntityToggle, "", map[string]interface{}{
		"key":       key,
		"isEnabled": isEnabled,
	})
	return &toggle, nil
}

// InitializeFeatureToggles inserts the default toggles that are missing and
// leaves existing ones untouched.
func (s *SettingsService) InitializeFeatureToggles(ctx context.Context) ([]models.FeatureToggle, error) {
	if err := InitializeFeatureToggles(s.db.WithContext(ctx)); err != nil {
		return nil, apperr.FromDB(err)
	}
	return s.GetFeatureToggles(ctx)
}

// InitializeFeatureToggles is also run by the seed command.
func InitializeFeatureToggles(db *gorm.DB) error {
	toggles := make([]models.FeatureToggle, len(defaultToggles))
	for i, d := range defaultToggles {
		description := d.description
		toggles[i] = models.FeatureToggle{
			Key:         d.key,
			IsEnabled:   d.enabled,
			Description: &description,
		}
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&toggles).Error
}

func (s *SettingsService) GetSettings(ctx context.Context, group string) ([]models.Setting, error) {
	q := s.db.WithContext(ctx).Order("setting_group ASC").Order(clause.OrderByColumn{Column: keyColumn})
	if group != "" {
		q = q.Where("setting_group = ?", group)
	}

	var settings []models.Setting
	if err := q.Find(&settings).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	return settings, nil
}

// GetPublicSettings is what anonymous clients may see: public settings and
// the state of every feature toggle.
func (s *SettingsService) GetPublicSettings(ctx context.Context) (*models.PublicSettings, error) {
	var settings []models.Setting
	if err := s.db.WithContext(ctx).Where("is_public = ?", true).Find(&settings).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	toggles, err := s.GetFeatureToggles(ctx)
	if err != nil {
		return nil, err
	}

	public := &models.PublicSettings{
		Settings: make(map[string]string, len(settings)),
		Features: make(map[string]bool, len(toggles)),
	}
	for _, setting := range settings {
		public.Settings[setting.Key] = setting.Value
	}
	for _, toggle := range toggles {
		public.Features[toggle.Key] = toggle.IsEnabled
	}
	return public, nil
}

func (s *SettingsService) UpsertSetting(ctx context.Context, actor Actor, req *models.SettingUpsertRequest) (*models.Setting, error) {
	setting := models.Setting{
		Key:         req.Key,
		Value:       req.Value,
		Type:        req.Type,
		Group:       req.Group,
		Description: req.Description,
		UpdatedAt:   time.Now().UTC(),
	}
	if setting.Type == "" {
		setting.Type = "string"
	}
	if setting.Group == "" {
		setting.Group = "general"
	}
	if req.IsPublic != nil {
		setting.IsPublic = *req.IsPublic
	}

	columns := []string{"value", "type", "setting_group", "updated_at"}
	if req.IsPublic != nil {
		columns = append(columns, "is_public")
	}
	if req.Description != nil {
		columns = append(columns, "description")
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(&setting).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	if err := s.db.WithContext(ctx).Where(clause.Eq{Column: keyColumn, Value: req.Key}).First(&setting).Error; err != nil {
		return nil, apperr.FromDB(err)
	}

	s.activity.Log(actor, models.ActionUpdate, models.EntitySetting, "", map[string]interface{}{
		"key": req.Key,
	})
	return &setting, nil
}
