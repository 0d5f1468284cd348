package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/repositories"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
	"gorm.io/gorm"
)

const slugRetries = 3

var categorySortColumns = map[string]string{
	"order":     "sort_order",
	"nameBn":    "name_bn",
	"nameEn":    "name_en",
	"createdAt": "created_at",
}

type CategoryService struct {
	db         *gorm.DB
	categories *repositories.CategoryRepository
	quotes     *repositories.QuoteRepository
	activity   *ActivityLogService
}

func NewCategoryService(db *gorm.DB, activity *ActivityLogService) *CategoryService {
	return &CategoryService{
		db:         db,
		categories: repositories.NewCategoryRepository(db),
		quotes:     repositories.NewQuoteRepository(db),
		activity:   activity,
	}
}

func (s *CategoryService) Create(ctx context.Context, actor Actor, req *models.CategoryCreateRequest) (*models.Category, error) {
	category := models.Category{
		NameBn:      req.NameBn,
		NameEn:      req.NameEn,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.Order != nil {
		category.Order = *req.Order
	}

	if req.Slug != "" {
		exists, err := s.categories.SlugExists(ctx, req.Slug, "")
		if err != nil {
			return nil, apperr.FromDB(err)
		}
		if exists {
			return nil, apperr.Conflict("Category with this slug already exists")
		}
		category.Slug = req.Slug
		if err := s.categories.Create(ctx, &category); err != nil {
			return nil, s.createError(err)
		}
	} else {
		// a concurrent insert can take the generated slug between the check
		// and the insert; regenerate and try again
		var err error
		for attempt := 0; attempt < slugRetries; attempt++ {
			category.ID = ""
			category.Slug, err = utils.GenerateUniqueSlug(req.NameBn, func(slug string) (bool, error) {
				return s.categories.SlugExists(ctx, slug, "")
			})
			if err != nil {
				return nil, apperr.FromDB(err)
			}
			if category.Slug == "" {
				return nil, apperr.BadRequest("Could not generate a slug from the category name, please provide one")
			}
			if err = s.categories.Create(ctx, &category); err == nil || !apperr.IsUniqueViolation(err) {
				break
			}
		}
		if err != nil {
			return nil, s.createError(err)
		}
	}

	s.activity.Log(actor, models.ActionCreate, models.EntityCategory, category.ID, map[string]interface{}{
		"nameEn": category.NameEn,
		"slug":   category.Slug,
	})
	return &category, nil
}

func (s *CategoryService) createError(err error) error {
	if apperr.IsUniqueViolation(err) {
		return apperr.Conflict("Category with this slug already exists")
	}
	return apperr.FromDB(err)
}

// FindAll returns the matching categories with their live quote counts. The
// pagination is nil unless query.Page is set.
func (s *CategoryService) FindAll(ctx context.Context, query *models.CategoryListQuery) ([]models.Category, *models.Pagination, error) {
	q := s.categories.Query(ctx)

	if query.IsActive != nil {
		q = q.Where("is_active = ?", *query.IsActive)
	}
	if query.Search != "" {
		cond, args := containsAny(query.Search, "name_bn", "name_en")
		q = q.Where(cond, args...)
	}
	q = q.Order(orderClause(categorySortColumns, query.SortBy, query.SortOrder, "sort_order"))

	var categories []models.Category
	var pagination *models.Pagination

	if query.Page > 0 {
		var total int64
		if err := q.Count(&total).Error; err != nil {
			return nil, nil, apperr.FromDB(err)
		}
		p := models.NewPagination(query.Page, query.Limit, total)
		pagination = &p
		q = q.Offset(p.Offset()).Limit(query.Limit)
	}

	if err := q.Find(&categories).Error; err != nil {
		return nil, nil, apperr.FromDB(err)
	}
	if err := s.categories.AttachQuoteCounts(ctx, categories); err != nil {
		return nil, nil, apperr.FromDB(err)
	}
	return categories, pagination, nil
}

func (s *CategoryService) FindByID(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	return s.withQuoteCount(ctx, category)
}

func (s *CategoryService) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	return s.withQuoteCount(ctx, category)
}

func (s *CategoryService) withQuoteCount(ctx context.Context, category *models.Category) (*models.Category, error) {
	count, err := s.quotes.Count(ctx, "category_id = ?", category.ID)
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	category.QuoteCount = count
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, actor Actor, id string, req *models.CategoryUpdateRequest) (*models.Category, error) {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return nil, notFound(err, "Category not found")
	}

	updates := make(map[string]interface{})
	if req.Slug != nil {
		exists, err := s.categories.SlugExists(ctx, *req.Slug, id)
		if err != nil {
			return nil, apperr.FromDB(err)
		}
		if exists {
			return nil, apperr.Conflict("Category with this slug already exists")
		}
		updates["slug"] = *req.Slug
	}
	if req.NameBn != nil {
		updates["name_bn"] = *req.NameBn
	}
	if req.NameEn != nil {
		updates["name_en"] = *req.NameEn
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Order != nil {
		updates["sort_order"] = *req.Order
	}

	if len(updates) > 0 {
		if _, err := s.categories.Updates(ctx, id, updates); err != nil {
			return nil, s.createError(err)
		}
	}

	s.activity.Log(actor, models.ActionUpdate, models.EntityCategory, id, map[string]interface{}{
		"fields": fieldNames(updates),
	})
	return s.FindByID(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, actor Actor, id string) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "Category not found")
	}

	count, err := s.quotes.Count(ctx, "category_id = ?", id)
	if err != nil {
		return apperr.FromDB(err)
	}
	if count > 0 {
		return apperr.BadRequest(fmt.Sprintf("Cannot delete category with %d quotes. Please reassign or delete the quotes first.", count))
	}

	affected, err := s.categories.Delete(ctx, id)
	if err != nil {
		return apperr.FromDB(err)
	}
	if affected == 0 {
		return apperr.NotFound("Category not found")
	}

	s.activity.Log(actor, models.ActionDelete, models.EntityCategory, id, map[string]interface{}{
		"nameEn": category.NameEn,
	})
	return nil
}

// BulkDelete removes every deletable category in ids and reports the rest.
func (s *CategoryService) BulkDelete(ctx context.Context, actor Actor, ids []string) (*models.BulkResult, error) {
	categories, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	counts, err := s.categories.QuoteCounts(ctx, ids)
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	result := &models.BulkResult{}
	deletable := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		category, ok := byID[id]
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("Category %s not found", id))
			continue
		}
		if n := counts[id]; n > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Category %q has %d quotes. Cannot delete.", category.NameEn, n))
			continue
		}
		deletable = append(deletable, id)
	}

	if len(deletable) > 0 {
		result.Count, err = s.categories.DeleteMany(ctx, deletable)
		if err != nil {
			return nil, apperr.FromDB(err)
		}
	}

	if result.Count > 0 {
		s.activity.Log(actor, models.ActionBulkDelete, models.EntityCategory, "", map[string]interface{}{
			"count": result.Count,
			"ids":   deletable,
		})
	}
	return result, nil
}

// GetQuotesBySlug lists the published quotes of an active category.
func (s *CategoryService) GetQuotesBySlug(ctx context.Context, slug string, query *models.CategoryQuotesQuery) (*models.CategoryQuotes, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err, "Category not found")
	}
	if !category.IsActive {
		return nil, apperr.NotFound("Category not found")
	}

	q := s.quotes.Query(ctx).
		Where("category_id = ? AND status = ?", category.ID, models.QuoteStatusPublished)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	pagination := models.NewPagination(query.Page, query.Limit, total)

	var quotes []models.Quote
	err = q.Order(orderClause(quoteSortColumns, query.SortBy, query.SortOrder, "created_at")).
		Offset(pagination.Offset()).
		Limit(query.Limit).
		Find(&quotes).Error
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	category.QuoteCount = total
	s.recordCategoryView(ctx)

	return &models.CategoryQuotes{
		Category:   category,
		Quotes:     quotes,
		Pagination: pagination,
	}, nil
}

func (s *CategoryService) recordCategoryView(ctx context.Context) {
	event := models.Analytics{Event: models.EventCategoryView}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		logAnalyticsFailure(err, event.Event)
	}
}

func (s *CategoryService) GetPopular(ctx context.Context, limit int) ([]models.Category, error) {
	if limit <= 0 {
		limit = 10
	}
	categories, err := s.categories.Popular(ctx, limit)
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	return categories, nil
}

func fieldNames(updates map[string]interface{}) []string {
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
