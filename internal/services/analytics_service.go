package services

import (
	"context"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AnalyticsService records client-side events that have no counter endpoint
// of their own.
type AnalyticsService struct {
	db     *gorm.DB
	quotes *repositories.QuoteRepository
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{
		db:     db,
		quotes: repositories.NewQuoteRepository(db),
	}
}

func (s *AnalyticsService) Track(ctx context.Context, req *models.TrackEventRequest) error {
	if req.Event == models.EventStudioOpen && req.QuoteID != nil {
		affected, err := s.quotes.Increment(ctx, *req.QuoteID, "studio_usage", 0)
		if err != nil {
			return apperr.FromDB(err)
		}
		if affected == 0 {
			return apperr.NotFound("Quote not found")
		}
	}

	event := models.Analytics{QuoteID: req.QuoteID, Event: req.Event}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return apperr.FromDB(err)
	}
	return nil
}

func logAnalyticsFailure(err error, event models.AnalyticsEvent) {
	logrus.WithField("event", event).WithError(err).Warn("failed to record analytics event")
}
