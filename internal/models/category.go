package models

import "time"

type Category struct {
	Base
	NameBn      string     `json:"nameBn" gorm:"size:100;not null"`
	NameEn      string     `json:"nameEn" gorm:"size:100;not null"`
	Slug        string     `json:"slug" gorm:"size:120;not null;uniqueIndex:idx_categories_slug_live,where:deleted_at IS NULL"`
	Description *string    `json:"description" gorm:"type:text"`
	IsActive    bool       `json:"isActive" gorm:"not null;index"`
	Order       int        `json:"order" gorm:"column:sort_order;not null;default:0"`
	DeletedAt   *time.Time `json:"-" gorm:"index"`

	QuoteCount int64 `json:"quoteCount" gorm:"-"`
}

func (Category) TableName() string { return "categories" }

type CategoryCreateRequest struct {
	NameBn      string  `json:"nameBn" validate:"required,min=2,max=100"`
	NameEn      string  `json:"nameEn" validate:"required,min=2,max=100"`
	Slug        string  `json:"slug" validate:"omitempty,min=2,max=100,slug"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
	Order       *int    `json:"order" validate:"omitempty,min=0"`
}

type CategoryUpdateRequest struct {
	NameBn      *string `json:"nameBn" validate:"omitempty,min=2,max=100"`
	NameEn      *string `json:"nameEn" validate:"omitempty,min=2,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,min=2,max=100,slug"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
	Order       *int    `json:"order" validate:"omitempty,min=0"`
}

type CategoryListQuery struct {
	Page      int    `form:"page" validate:"omitempty,min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
	IsActive  *bool  `form:"isActive"`
	Search    string `form:"search" validate:"max=100"`
	SortBy    string `form:"sortBy,default=order" validate:"oneof=order nameBn nameEn createdAt"`
	SortOrder string `form:"sortOrder,default=asc" validate:"oneof=asc desc"`
}

type CategoryQuotesQuery struct {
	Page      int    `form:"page,default=1" validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
	SortBy    string `form:"sortBy,default=createdAt" validate:"oneof=createdAt updatedAt views shares downloads performanceScore"`
	SortOrder string `form:"sortOrder,default=desc" validate:"oneof=asc desc"`
}

type SlugParam struct {
	Slug string `uri:"slug" validate:"required,max=120"`
}

type LimitQuery struct {
	Limit int `form:"limit,default=10" validate:"min=1,max=50"`
}

type CategoryQuotes struct {
	Category   *Category  `json:"category"`
	Quotes     []Quote    `json:"quotes"`
	Pagination Pagination `json:"pagination"`
}
