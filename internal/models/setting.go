package models

import "time"

type Setting struct {
	Key         string    `json:"key" gorm:"primaryKey;size:100"`
	Value       string    `json:"value" gorm:"type:text;not null"`
	Type        string    `json:"type" gorm:"size:20;not null;default:string"`
	Group       string    `json:"group" gorm:"column:setting_group;size:50;not null;default:general;index"`
	IsPublic    bool      `json:"isPublic" gorm:"not null"`
	Description *string   `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Setting) TableName() string { return "settings" }

type FeatureToggle struct {
	Key         string    `json:"key" gorm:"primaryKey;size:100"`
	IsEnabled   bool      `json:"isEnabled" gorm:"not null"`
	Description *string   `json:"description" gorm:"type:text"`
	UpdatedBy   *string   `json:"updatedBy" gorm:"type:varchar(36)"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (FeatureToggle) TableName() string { return "feature_toggles" }

type SettingUpsertRequest struct {
	Key         string  `json:"key" validate:"required,min=1,max=100"`
	Value       string  `json:"value" validate:"required"`
	Type        string  `json:"type" validate:"omitempty,oneof=string number boolean json"`
	Group       string  `json:"group" validate:"omitempty,max=50"`
	IsPublic    *bool   `json:"isPublic"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type SettingsQuery struct {
	Group string `form:"group" validate:"max=50"`
}

type ToggleKeyParam struct {
	Key string `uri:"key" validate:"required,max=100"`
}

type ToggleUpdateRequest struct {
	IsEnabled *bool `json:"isEnabled" validate:"required"`
}

type PublicSettings struct {
	Settings map[string]string `json:"settings"`
	Features map[string]bool   `json:"features"`
}
