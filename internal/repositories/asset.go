package repositories

import (
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"gorm.io/gorm"
)

type AssetRepository struct {
	SoftDeleteRepository[models.StudioAsset]
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{newSoftDeleteRepository[models.StudioAsset](db)}
}

func (r *AssetRepository) WithTx(tx *gorm.DB) *AssetRepository {
	return &AssetRepository{r.withDB(tx)}
}
