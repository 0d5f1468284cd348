package models

import "time"

type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "DRAFT"
	QuoteStatusReview    QuoteStatus = "REVIEW"
	QuoteStatusPublished QuoteStatus = "PUBLISHED"
	QuoteStatusArchived  QuoteStatus = "ARCHIVED"
)

type Quote struct {
	Base
	TextBn           string      `json:"textBn" gorm:"type:text;not null"`
	TextEn           *string     `json:"textEn" gorm:"type:text"`
	Author           *string     `json:"author" gorm:"size:100;index"`
	CategoryID       string      `json:"categoryId" gorm:"type:varchar(36);not null;index"`
	Status           QuoteStatus `json:"status" gorm:"size:20;not null;default:DRAFT;index"`
	Views            int64       `json:"views" gorm:"not null;default:0"`
	Shares           int64       `json:"shares" gorm:"not null;default:0"`
	Downloads        int64       `json:"downloads" gorm:"not null;default:0"`
	StudioUsage      int64       `json:"studioUsage" gorm:"not null;default:0"`
	PerformanceScore float64     `json:"performanceScore" gorm:"not null;default:0;index"`
	PublishedAt      *time.Time  `json:"publishedAt" gorm:"index"`
	LastModifiedBy   *string     `json:"lastModifiedBy" gorm:"type:varchar(36)"`
	DeletedAt        *time.Time  `json:"-" gorm:"index"`

	// relations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (Quote) TableName() string { return "quotes" }

type QuoteCreateRequest struct {
	TextBn      string      `json:"textBn" validate:"required,min=10,max=1000"`
	TextEn      *string     `json:"textEn" validate:"omitempty,min=10,max=1000"`
	Author      *string     `json:"author" validate:"omitempty,min=2,max=100"`
	CategoryID  string      `json:"categoryId" validate:"required,uuid"`
	Status      QuoteStatus `json:"status" validate:"omitempty,quotestatus"`
	PublishedAt *time.Time  `json:"publishedAt"`
}

type QuoteUpdateRequest struct {
	TextBn      *string      `json:"textBn" validate:"omitempty,min=10,max=1000"`
	TextEn      *string      `json:"textEn" validate:"omitempty,min=10,max=1000"`
	Author      *string      `json:"author" validate:"omitempty,min=2,max=100"`
	CategoryID  *string      `json:"categoryId" validate:"omitempty,uuid"`
	Status      *QuoteStatus `json:"status" validate:"omitempty,quotestatus"`
	PublishedAt *time.Time   `json:"publishedAt"`
}

type QuoteListQuery struct {
	Page         int         `form:"page,default=1" validate:"min=1"`
	Limit        int         `form:"limit,default=20" validate:"min=1,max=100"`
	CategoryID   string      `form:"categoryId" validate:"omitempty,uuid"`
	CategorySlug string      `form:"categorySlug" validate:"omitempty,max=120"`
	Status       QuoteStatus `form:"status" validate:"omitempty,quotestatus"`
	Search       string      `form:"search" validate:"max=200"`
	Author       string      `form:"author" validate:"max=100"`
	SortBy       string      `form:"sortBy,default=createdAt" validate:"oneof=createdAt updatedAt views shares downloads performanceScore"`
	SortOrder    string      `form:"sortOrder,default=desc" validate:"oneof=asc desc"`
}

type RandomQuoteQuery struct {
	CategorySlug string `form:"categorySlug" validate:"omitempty,max=120"`
}

type QuoteBulkCreateRequest struct {
	Quotes []QuoteCreateRequest `json:"quotes" validate:"required,min=1,max=100,dive"`
}

type QuoteBulkStatusRequest struct {
	IDs    []string    `json:"ids" validate:"required,min=1,max=100,dive,required,uuid"`
	Status QuoteStatus `json:"status" validate:"required,quotestatus"`
}

type QuoteBulkCreateResult struct {
	Count  int64   `json:"count"`
	Quotes []Quote `json:"quotes"`
}

type CounterResult struct {
	ID               string  `json:"id"`
	Views            int64   `json:"views"`
	Shares           int64   `json:"shares"`
	Downloads        int64   `json:"downloads"`
	PerformanceScore float64 `json:"performanceScore"`
}
