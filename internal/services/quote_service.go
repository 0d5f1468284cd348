package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/repositories"
	"gorm.io/gorm"
)

// Performance score weights per interaction.
const (
	viewScore     = 0.1
	shareScore    = 1.0
	downloadScore = 2.0
)

var quoteSortColumns = map[string]string{
	"createdAt":        "quotes.created_at",
	"updatedAt":        "quotes.updated_at",
	"views":            "quotes.views",
	"shares":           "quotes.shares",
	"downloads":        "quotes.downloads",
	"performanceScore": "quotes.performance_score",
}

type QuoteService struct {
	db         *gorm.DB
	quotes     *repositories.QuoteRepository
	categories *repositories.CategoryRepository
	activity   *ActivityLogService
	now        func() time.Time
}

func NewQuoteService(db *gorm.DB, activity *ActivityLogService) *QuoteService {
	return &QuoteService{
		db:         db,
		quotes:     repositories.NewQuoteRepository(db),
		categories: repositories.NewCategoryRepository(db),
		activity:   activity,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// activeCategory loads a category a quote may be attached to.
func (s *QuoteService) activeCategory(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	if !category.IsActive {
		return nil, apperr.BadRequest("Cannot add quote to inactive category")
	}
	return category, nil
}

func (s *QuoteService) newQuote(actor Actor, req *models.QuoteCreateRequest) models.Quote {
	quote := models.Quote{
		TextBn:         req.TextBn,
		TextEn:         req.TextEn,
		Author:         req.Author,
		CategoryID:     req.CategoryID,
		Status:         req.Status,
		PublishedAt:    req.PublishedAt,
		LastModifiedBy: stringPtr(actor.UserID),
	}
	if quote.Status == "" {
		quote.Status = models.QuoteStatusDraft
	}
	if quote.Status == models.QuoteStatusPublished && quote.PublishedAt == nil {
		now := s.now()
		quote.PublishedAt = &now
	}
	return quote
}

func (s *QuoteService) Create(ctx context.Context, actor Actor, req *models.QuoteCreateRequest) (*models.Quote, error) {
	category, err := s.activeCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	quote := s.newQuote(actor, req)
	if err := s.quotes.Create(ctx, &quote); err != nil {
		return nil, apperr.FromDB(err)
	}
	quote.Category = category

	s.activity.Log(actor, models.ActionCreate, models.EntityQuote, quote.ID, map[string]interface{}{
		"categoryId": quote.CategoryID,
		"status":     quote.Status,
	})
	return &quote, nil
}

func (s *QuoteService) FindAll(ctx context.Context, query *models.QuoteListQuery) ([]models.Quote, models.Pagination, error) {
	q := s.quotes.Query(ctx)

	if query.CategoryID != "" {
		q = q.Where("quotes.category_id = ?", query.CategoryID)
	}
	if query.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = quotes.category_id AND categories.deleted_at IS NULL").
			Where("categories.slug = ?", query.CategorySlug)
	}
	if query.Status != "" {
		q = q.Where("quotes.status = ?", query.Status)
	}
	if query.Search != "" {
		cond, args := containsAny(query.Search, "quotes.text_bn", "quotes.text_en", "quotes.author")
		q = q.Where(cond, args...)
	}
	if query.Author != "" {
		cond, args := containsAny(query.Author, "quotes.author")
		q = q.Where(cond, args...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err)
	}
	pagination := models.NewPagination(query.Page, query.Limit, total)

	var quotes []models.Quote
	err := q.Preload("Category").
		Order(orderClause(quoteSortColumns, query.SortBy, query.SortOrder, "quotes.created_at")).
		Offset(pagination.Offset()).
		Limit(query.Limit).
		Find(&quotes).Error
	if err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err)
	}
	return quotes, pagination, nil
}

func (s *QuoteService) FindByID(ctx context.Context, id string) (*models.Quote, error) {
	quote, err := s.quotes.FindWithCategory(ctx, id)
	if err != nil {
		return nil, notFound(err, "Quote not found")
	}
	return quote, nil
}

func (s *QuoteService) Update(ctx context.Context, actor Actor, id string, req *models.QuoteUpdateRequest) (*models.Quote, error) {
	quote, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Quote not found")
	}

	updates := make(map[string]interface{})
	if req.CategoryID != nil && *req.CategoryID != quote.CategoryID {
		if _, err := s.activeCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.TextBn != nil {
		updates["text_bn"] = *req.TextBn
	}
	if req.TextEn != nil {
		updates["text_en"] = *req.TextEn
	}
	if req.Author != nil {
		updates["author"] = *req.Author
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	switch {
	case req.PublishedAt != nil:
		updates["published_at"] = *req.PublishedAt
	case req.Status != nil && *req.Status == models.QuoteStatusPublished &&
		quote.Status != models.QuoteStatusPublished:
		updates["published_at"] = s.now()
	}

	if actor.UserID != "" {
		updates["last_modified_by"] = actor.UserID
	}

	if len(updates) > 0 {
		if _, err := s.quotes.Updates(ctx, id, updates); err != nil {
			return nil, apperr.FromDB(err)
		}
	}

	s.activity.Log(actor, models.ActionUpdate, models.EntityQuote, id, map[string]interface{}{
		"fields": fieldNames(updates),
	})
	return s.FindByID(ctx, id)
}

func (s *QuoteService) Delete(ctx context.Context, actor Actor, id string) error {
	affected, err := s.quotes.Delete(ctx, id)
	if err != nil {
		return apperr.FromDB(err)
	}
	if affected == 0 {
		return apperr.NotFound("Quote not found")
	}

	s.activity.Log(actor, models.ActionDelete, models.EntityQuote, id, nil)
	return nil
}

// GetRandom picks a published quote uniformly, optionally within one category.
func (s *QuoteService) GetRandom(ctx context.Context, categorySlug string) (*models.Quote, error) {
	scope := func() *gorm.DB {
		q := s.quotes.Query(ctx).Where("quotes.status = ?", models.QuoteStatusPublished)
		if categorySlug != "" {
			q = q.Joins("JOIN categories ON categories.id = quotes.category_id AND categories.deleted_at IS NULL").
				Where("categories.slug = ?", categorySlug)
		}
		return q
	}

	var count int64
	if err := scope().Count(&count).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	if count == 0 {
		return nil, apperr.NotFound("No quotes found")
	}

	var quote models.Quote
	err := scope().Preload("Category").
		Order("quotes.id").
		Offset(rand.Intn(int(count))).
		First(&quote).Error
	if err != nil {
		return nil, notFound(err, "No quotes found")
	}
	return &quote, nil
}

func (s *QuoteService) IncrementView(ctx context.Context, id string) (*models.CounterResult, error) {
	return s.increment(ctx, id, "views", viewScore, models.EventQuoteView)
}

func (s *QuoteService) IncrementShare(ctx context.Context, id string) (*models.CounterResult, error) {
	return s.increment(ctx, id, "shares", shareScore, models.EventQuoteShare)
}

func (s *QuoteService) IncrementDownload(ctx context.Context, id string) (*models.CounterResult, error) {
	return s.increment(ctx, id, "downloads", downloadScore, models.EventQuoteDownload)
}

func (s *QuoteService) increment(ctx context.Context, id, column string, score float64, event models.AnalyticsEvent) (*models.CounterResult, error) {
	affected, err := s.quotes.Increment(ctx, id, column, score)
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("Quote not found")
	}

	row := models.Analytics{QuoteID: &id, Event: event}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		logAnalyticsFailure(err, event)
	}

	quote, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Quote not found")
	}
	return &models.CounterResult{
		ID:               quote.ID,
		Views:            quote.Views,
		Shares:           quote.Shares,
		Downloads:        quote.Downloads,
		PerformanceScore: quote.PerformanceScore,
	}, nil
}

func (s *QuoteService) GetTrending(ctx context.Context, limit int) ([]models.Quote, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	var quotes []models.Quote
	err := s.quotes.WithCategory(ctx).
		Where("quotes.status = ?", models.QuoteStatusPublished).
		Order("quotes.performance_score DESC").
		Order("quotes.views DESC").
		Limit(limit).
		Find(&quotes).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	return quotes, nil
}

// BulkCreate inserts all quotes or none.
func (s *QuoteService) BulkCreate(ctx context.Context, actor Actor, reqs []models.QuoteCreateRequest) (*models.QuoteBulkCreateResult, error) {
	seen := make(map[string]bool)
	var categoryIDs []string
	for _, req := range reqs {
		if !seen[req.CategoryID] {
			seen[req.CategoryID] = true
			categoryIDs = append(categoryIDs, req.CategoryID)
		}
	}

	active, err := s.categories.CountActive(ctx, categoryIDs)
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	if active != int64(len(categoryIDs)) {
		return nil, apperr.BadRequest("One or more categories not found or inactive")
	}

	quotes := make([]models.Quote, len(reqs))
	for i := range reqs {
		quotes[i] = s.newQuote(actor, &reqs[i])
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&quotes).Error
	})
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	s.activity.Log(actor, models.ActionBulkCreate, models.EntityQuote, "", map[string]interface{}{
		"count": len(quotes),
	})
	return &models.QuoteBulkCreateResult{Count: int64(len(quotes)), Quotes: quotes}, nil
}

func (s *QuoteService) BulkUpdateStatus(ctx context.Context, actor Actor, ids []string, status models.QuoteStatus) (*models.BulkResult, error) {
	result := &models.BulkResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quotes := s.quotes.WithTx(tx)

		updates := map[string]interface{}{"status": status}
		if actor.UserID != "" {
			updates["last_modified_by"] = actor.UserID
		}
		count, err := quotes.UpdatesMany(ctx, ids, updates)
		if err != nil {
			return err
		}
		result.Count = count

		if status == models.QuoteStatusPublished {
			return quotes.Query(ctx).
				Where("quotes.id IN ? AND quotes.published_at IS NULL", ids).
				Update("published_at", s.now()).Error
		}
		return nil
	})
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	s.activity.Log(actor, models.ActionBulkUpdate, models.EntityQuote, "", map[string]interface{}{
		"count":  result.Count,
		"status": status,
	})
	return result, nil
}

func (s *QuoteService) BulkDelete(ctx context.Context, actor Actor, ids []string) (*models.BulkResult, error) {
	count, err := s.quotes.DeleteMany(ctx, ids)
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	s.activity.Log(actor, models.ActionBulkDelete, models.EntityQuote, "", map[string]interface{}{
		"count": count,
	})
	return &models.BulkResult{Count: count}, nil
}
