package services

import (
	"context"
	"time"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/repositories"
	"gorm.io/gorm"
)

const graphDays = 7

type DashboardService struct {
	db         *gorm.DB
	quotes     *repositories.QuoteRepository
	categories *repositories.CategoryRepository
	users      *repositories.UserRepository
	now        func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		db:         db,
		quotes:     repositories.NewQuoteRepository(db),
		categories: repositories.NewCategoryRepository(db),
		users:      repositories.NewUserRepository(db),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *DashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	if err := s.statusCounts(ctx, stats); err != nil {
		return nil, apperr.FromDB(err)
	}

	var err error
	if stats.ActiveCategories, err = s.categories.Count(ctx, "is_active = ?", true); err != nil {
		return nil, apperr.FromDB(err)
	}
	if stats.TotalUsers, err = s.users.Count(ctx, ""); err != nil {
		return nil, apperr.FromDB(err)
	}

	var totals struct {
		Views     int64
		Downloads int64
		Shares    int64
	}
	err = s.quotes.Query(ctx).
		Select("COALESCE(SUM(views), 0) AS views, COALESCE(SUM(downloads), 0) AS downloads, COALESCE(SUM(shares), 0) AS shares").
		Scan(&totals).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	stats.TotalViews = totals.Views
	stats.TotalDownloads = totals.Downloads
	stats.TotalShares = totals.Shares

	today := startOfDay(s.now())
	err = s.db.WithContext(ctx).Model(&models.Analytics{}).
		Where("event = ? AND created_at >= ?", models.EventStudioOpen, today).
		Count(&stats.StudioUsageToday).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	err = s.quotes.WithCategory(ctx).
		Order("quotes.created_at DESC").
		Limit(5).
		Find(&stats.RecentQuotes).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	err = s.quotes.WithCategory(ctx).
		Where("quotes.status = ?", models.QuoteStatusPublished).
		Order("quotes.views DESC").
		Limit(5).
		Find(&stats.PopularQuotes).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	if stats.GraphData, err = s.dailySeries(ctx, today); err != nil {
		return nil, apperr.FromDB(err)
	}
	return stats, nil
}

func (s *DashboardService) statusCounts(ctx context.Context, stats *models.DashboardStats) error {
	var rows []struct {
		Status models.QuoteStatus
		Total  int64
	}
	err := s.quotes.Query(ctx).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		stats.TotalQuotes += row.Total
		switch row.Status {
		case models.QuoteStatusPublished:
			stats.PublishedQuotes = row.Total
		case models.QuoteStatusDraft:
			stats.DraftQuotes = row.Total
		case models.QuoteStatusReview:
			stats.ReviewQuotes = row.Total
		case models.QuoteStatusArchived:
			stats.ArchivedQuotes = row.Total
		}
	}
	return nil
}

// dailySeries buckets the last graphDays days of events, oldest first. Days
// with no events are present with zero counts.
func (s *DashboardService) dailySeries(ctx context.Context, today time.Time) ([]models.DailyStat, error) {
	since := today.AddDate(0, 0, -(graphDays - 1))

	day := dayExpr(s.db)
	var rows []struct {
		Bucket string
		Event  models.AnalyticsEvent
		Total  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Analytics{}).
		Select(day+" AS bucket, event, COUNT(*) AS total").
		Where("created_at >= ?", since).
		Group(day + ", event").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	series := make([]models.DailyStat, graphDays)
	index := make(map[string]int, graphDays)
	for i := range series {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		series[i].Date = date
		index[date] = i
	}

	for _, row := range rows {
		i, ok := index[row.Bucket]
		if !ok {
			continue
		}
		switch row.Event {
		case models.EventQuoteView:
			series[i].Views = row.Total
		case models.EventQuoteShare:
			series[i].Shares = row.Total
		case models.EventQuoteDownload:
			series[i].Downloads = row.Total
		case models.EventStudioOpen:
			series[i].Studio = row.Total
		}
	}
	return series, nil
}

// dayExpr renders created_at as a UTC YYYY-MM-DD string.
func dayExpr(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "TO_CHAR(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	}
	return "DATE(created_at)"
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
