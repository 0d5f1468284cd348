package services

import (
	"context"
	"errors"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/repositories"
	"gorm.io/gorm"
)

type FavoriteService struct {
	db     *gorm.DB
	quotes *repositories.QuoteRepository
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db, quotes: repositories.NewQuoteRepository(db)}
}

// Toggle adds the quote to the user's favorites, or removes it when it is
// already there.
func (s *FavoriteService) Toggle(ctx context.Context, userID, quoteID string) (*models.FavoriteToggleResult, error) {
	exists, err := s.quotes.Exists(ctx, "id = ?", quoteID)
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	if !exists {
		return nil, apperr.NotFound("Quote not found")
	}

	result := &models.FavoriteToggleResult{QuoteID: quoteID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var favorite models.Favorite
		err := tx.Where("user_id = ? AND quote_id = ?", userID, quoteID).First(&favorite).Error
		switch {
		case err == nil:
			return tx.Delete(&favorite).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			result.Favorited = true
			return tx.Create(&models.Favorite{UserID: userID, QuoteID: quoteID}).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	return result, nil
}

// List returns the user's favorites whose quotes are still live, newest first.
func (s *FavoriteService) List(ctx context.Context, userID string, query *models.PageQuery) ([]models.Favorite, models.Pagination, error) {
	q := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Joins("JOIN quotes ON quotes.id = favorites.quote_id AND quotes.deleted_at IS NULL").
		Where("favorites.user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err)
	}
	pagination := models.NewPagination(query.Page, query.Limit, total)

	var favorites []models.Favorite
	err := q.Preload("Quote.Category").
		Order("favorites.created_at DESC").
		Offset(pagination.Offset()).
		Limit(query.Limit).
		Find(&favorites).Error
	if err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err)
	}
	return favorites, pagination, nil
}
