package models

import "time"

type AssetType string

const (
	AssetBackgroundImage    AssetType = "BACKGROUND_IMAGE"
	AssetBackgroundGradient AssetType = "BACKGROUND_GRADIENT"
	AssetFont               AssetType = "FONT"
	AssetTexture            AssetType = "TEXTURE"
)

type StudioAsset struct {
	Base
	Type      AssetType              `json:"type" gorm:"size:32;not null;index"`
	Name      string                 `json:"name" gorm:"size:100;not null"`
	Value     string                 `json:"value" gorm:"type:text;not null"`
	Preview   *string                `json:"preview" gorm:"type:text"`
	IsPremium bool                   `json:"isPremium" gorm:"not null"`
	IsActive  bool                   `json:"isActive" gorm:"not null;index"`
	Order     int                    `json:"order" gorm:"column:sort_order;not null;default:0"`
	Metadata  map[string]interface{} `json:"metadata" gorm:"type:text;serializer:json"`
	DeletedAt *time.Time             `json:"-" gorm:"index"`
}

func (StudioAsset) TableName() string { return "studio_assets" }

type AssetCreateRequest struct {
	Type      AssetType              `json:"type" validate:"required,assettype"`
	Name      string                 `json:"name" validate:"required,min=2,max=100"`
	Value     string                 `json:"value" validate:"required,min=1"`
	Preview   *string                `json:"preview"`
	IsPremium *bool                  `json:"isPremium"`
	IsActive  *bool                  `json:"isActive"`
	Order     *int                   `json:"order" validate:"omitempty,min=0"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type AssetUpdateRequest struct {
	Type      *AssetType             `json:"type" validate:"omitempty,assettype"`
	Name      *string                `json:"name" validate:"omitempty,min=2,max=100"`
	Value     *string                `json:"value" validate:"omitempty,min=1"`
	Preview   *string                `json:"preview"`
	IsPremium *bool                  `json:"isPremium"`
	IsActive  *bool                  `json:"isActive"`
	Order     *int                   `json:"order" validate:"omitempty,min=0"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type AssetListQuery struct {
	Page      int       `form:"page,default=1" validate:"min=1"`
	Limit     int       `form:"limit,default=20" validate:"min=1,max=100"`
	Type      AssetType `form:"type" validate:"omitempty,assettype"`
	IsActive  *bool     `form:"isActive"`
	IsPremium *bool     `form:"isPremium"`
	SortBy    string    `form:"sortBy,default=order" validate:"oneof=order createdAt"`
	SortOrder string    `form:"sortOrder,default=asc" validate:"oneof=asc desc"`
}
