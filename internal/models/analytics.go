package models

import (
	"time"

	"gorm.io/gorm"
)

type AnalyticsEvent string

const (
	EventQuoteView     AnalyticsEvent = "QUOTE_VIEW"
	EventQuoteShare    AnalyticsEvent = "QUOTE_SHARE"
	EventQuoteDownload AnalyticsEvent = "QUOTE_DOWNLOAD"
	EventStudioOpen    AnalyticsEvent = "STUDIO_OPEN"
	EventCategoryView  AnalyticsEvent = "CATEGORY_VIEW"
)

type Analytics struct {
	ID        string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	QuoteID   *string        `json:"quoteId" gorm:"type:varchar(36);index"`
	Event     AnalyticsEvent `json:"event" gorm:"size:32;not null;index"`
	CreatedAt time.Time      `json:"createdAt" gorm:"index"`
}

func (Analytics) TableName() string { return "analytics" }

func (a *Analytics) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

type TrackEventRequest struct {
	Event   AnalyticsEvent `json:"event" validate:"required,oneof=STUDIO_OPEN CATEGORY_VIEW"`
	QuoteID *string        `json:"quoteId" validate:"omitempty,uuid"`
}

type DailyStat struct {
	Date      string `json:"date"`
	Views     int64  `json:"views"`
	Shares    int64  `json:"shares"`
	Downloads int64  `json:"downloads"`
	Studio    int64  `json:"studio"`
}

type DashboardStats struct {
	TotalQuotes      int64       `json:"totalQuotes"`
	PublishedQuotes  int64       `json:"publishedQuotes"`
	DraftQuotes      int64       `json:"draftQuotes"`
	ReviewQuotes     int64       `json:"reviewQuotes"`
	ArchivedQuotes   int64       `json:"archivedQuotes"`
	ActiveCategories int64       `json:"activeCategories"`
	TotalUsers       int64       `json:"totalUsers"`
	TotalViews       int64       `json:"totalViews"`
	TotalDownloads   int64       `json:"totalDownloads"`
	TotalShares      int64       `json:"totalShares"`
	StudioUsageToday int64       `json:"studioUsageToday"`
	RecentQuotes     []Quote     `json:"recentQuotes"`
	PopularQuotes    []Quote     `json:"popularQuotes"`
	GraphData        []DailyStat `json:"graphData"`
}
