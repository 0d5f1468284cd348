package repositories

import (
	"context"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"gorm.io/gorm"
)

type QuoteRepository struct {
	SoftDeleteRepository[models.Quote]
}

func NewQuoteRepository(db *gorm.DB) *QuoteRepository {
	return &QuoteRepository{newSoftDeleteRepository[models.Quote](db)}
}

func (r *QuoteRepository) WithTx(tx *gorm.DB) *QuoteRepository {
	return &QuoteRepository{r.withDB(tx)}
}

// WithCategory is Query with the owning category preloaded.
func (r *QuoteRepository) WithCategory(ctx context.Context, opts ...Option) *gorm.DB {
	return r.Query(ctx, opts...).Preload("Category")
}

func (r *QuoteRepository) FindWithCategory(ctx context.Context, id string) (*models.Quote, error) {
	var quote models.Quote
	if err := r.WithCategory(ctx).Where("quotes.id = ?", id).First(&quote).Error; err != nil {
		return nil, err
	}
	return &quote, nil
}

// Increment bumps one counter column and the performance score in a single
// statement. Only views, shares, downloads and studio_usage are accepted.
func (r *QuoteRepository) Increment(ctx context.Context, id, column string, score float64) (int64, error) {
	switch column {
	case "views", "shares", "downloads", "studio_usage":
	default:
		return 0, gorm.ErrInvalidField
	}

	res := r.db.WithContext(ctx).Model(&models.Quote{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumns(map[string]interface{}{
			column:              gorm.Expr(column+" + ?", 1),
			"performance_score": gorm.Expr("performance_score + ?", score),
		})
	return res.RowsAffected, res.Error
}
