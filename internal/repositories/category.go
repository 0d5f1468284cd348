package repositories

import (
	"context"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	SoftDeleteRepository[models.Category]
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{newSoftDeleteRepository[models.Category](db)}
}

func (r *CategoryRepository) WithTx(tx *gorm.DB) *CategoryRepository {
	return &CategoryRepository{r.withDB(tx)}
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.Query(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// SlugExists checks live categories, ignoring excludeID when set.
func (r *CategoryRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	if excludeID != "" {
		return r.Exists(ctx, "slug = ? AND id <> ?", slug, excludeID)
	}
	return r.Exists(ctx, "slug = ?", slug)
}

// CountActive counts live, active categories among ids.
func (r *CategoryRepository) CountActive(ctx context.Context, ids []string) (int64, error) {
	return r.Count(ctx, "id IN ? AND is_active = ?", ids, true)
}

// QuoteCounts returns the number of live quotes per category id.
func (r *CategoryRepository) QuoteCounts(ctx context.Context, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		CategoryID string
		Total      int64
	}
	err := r.db.WithContext(ctx).Model(&models.Quote{}).
		Select("category_id, COUNT(*) AS total").
		Where("category_id IN ? AND deleted_at IS NULL", ids).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.CategoryID] = row.Total
	}
	return counts, nil
}

// AttachQuoteCounts fills QuoteCount on each category.
func (r *CategoryRepository) AttachQuoteCounts(ctx context.Context, categories []models.Category) error {
	ids := make([]string, len(categories))
	for i := range categories {
		ids[i] = categories[i].ID
	}
	counts, err := r.QuoteCounts(ctx, ids)
	if err != nil {
		return err
	}
	for i := range categories {
		categories[i].QuoteCount = counts[categories[i].ID]
	}
	return nil
}

// liveQuoteCountSQL orders categories by how many live quotes they hold.
const liveQuoteCountSQL = "(SELECT COUNT(*) FROM quotes WHERE quotes.category_id = categories.id AND quotes.deleted_at IS NULL)"

func (r *CategoryRepository) Popular(ctx context.Context, limit int) ([]models.Category, error) {
	var categories []models.Category
	err := r.Query(ctx).
		Where("is_active = ?", true).
		Order(liveQuoteCountSQL + " DESC").
		Order("sort_order ASC").
		Limit(limit).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, r.AttachQuoteCounts(ctx, categories)
}
