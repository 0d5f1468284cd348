package models

import (
	"time"

	"gorm.io/gorm"
)

type Favorite struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_quote"`
	QuoteID   string    `json:"quoteId" gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_quote;index"`
	CreatedAt time.Time `json:"createdAt"`

	// relations
	Quote *Quote `json:"quote,omitempty" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

func (Favorite) TableName() string { return "favorites" }

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	assignID(&f.ID)
	return nil
}

type QuoteIDParam struct {
	QuoteID string `uri:"quoteId" validate:"required,uuid"`
}

type PageQuery struct {
	Page  int `form:"page,default=1" validate:"min=1"`
	Limit int `form:"limit,default=20" validate:"min=1,max=100"`
}

type FavoriteToggleResult struct {
	QuoteID   string `json:"quoteId"`
	Favorited bool   `json:"favorited"`
}
