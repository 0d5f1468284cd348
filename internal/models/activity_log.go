package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity actions and entities recorded in the audit trail.
const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionBulkCreate   = "BULK_CREATE"
	ActionBulkUpdate   = "BULK_UPDATE"
	ActionBulkDelete   = "BULK_DELETE"
	ActionLogin        = "LOGIN"
	ActionUpload       = "UPLOAD"
	ActionStatusChange = "STATUS_CHANGE"
	ActionRoleChange   = "ROLE_CHANGE"

	EntityQuote    = "QUOTE"
	EntityCategory = "CATEGORY"
	EntityAsset    = "ASSET"
	EntityUser     = "USER"
	EntitySetting  = "SETTING"
	EntityToggle   = "FEATURE_TOGGLE"
	EntityFile     = "FILE"
)

type ActivityLog struct {
	ID        string                 `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID    string                 `json:"userId" gorm:"type:varchar(36);not null;index"`
	Action    string                 `json:"action" gorm:"size:50;not null;index"`
	Entity    string                 `json:"entity" gorm:"size:50;not null;index"`
	EntityID  *string                `json:"entityId" gorm:"type:varchar(36)"`
	Details   map[string]interface{} `json:"details" gorm:"type:text;serializer:json"`
	IPAddress *string                `json:"ipAddress" gorm:"size:64"`
	UserAgent *string                `json:"userAgent" gorm:"type:text"`
	CreatedAt time.Time              `json:"createdAt" gorm:"index"`

	// relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

type ActivityLogQuery struct {
	Limit int `form:"limit,default=50" validate:"min=1,max=200"`
}
