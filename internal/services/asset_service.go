package services

import (
	"context"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/repositories"
	"gorm.io/gorm"
)

var assetSortColumns = map[string]string{
	"order":     "sort_order",
	"createdAt": "created_at",
}

type AssetService struct {
	assets   *repositories.AssetRepository
	activity *ActivityLogService
}

func NewAssetService(db *gorm.DB, activity *ActivityLogService) *AssetService {
	return &AssetService{
		assets:   repositories.NewAssetRepository(db),
		activity: activity,
	}
}

func (s *AssetService) Create(ctx context.Context, actor Actor, req *models.AssetCreateRequest) (*models.StudioAsset, error) {
	asset := models.StudioAsset{
		Type:     req.Type,
		Name:     req.Name,
		Value:    req.Value,
		Preview:  req.Preview,
		IsActive: true,
		Metadata: req.Metadata,
	}
	if req.IsPremium != nil {
		asset.IsPremium = *req.IsPremium
	}
	if req.IsActive != nil {
		asset.IsActive = *req.IsActive
	}
	if req.Order != nil {
		asset.Order = *req.Order
	}

	if err := s.assets.Create(ctx, &asset); err != nil {
		return nil, apperr.FromDB(err)
	}

	s.activity.Log(actor, models.ActionCreate, models.EntityAsset, asset.ID, map[string]interface{}{
		"type": asset.Type,
		"name": asset.Name,
	})
	return &asset, nil
}

func (s *AssetService) FindAll(ctx context.Context, query *models.AssetListQuery) ([]models.StudioAsset, models.Pagination, error) {
	q := s.assets.Query(ctx)
	if query.Type != "" {
		q = q.Where("type = ?", query.Type)
	}
	if query.IsActive != nil {
		q = q.Where("is_active = ?", *query.IsActive)
	}
	if query.IsPremium != nil {
		q = q.Where("is_premium = ?", *query.IsPremium)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err)
	}
	pagination := models.NewPagination(query.Page, query.Limit, total)

	var assets []models.StudioAsset
	err := q.Order(orderClause(assetSortColumns, query.SortBy, query.SortOrder, "sort_order")).
		Offset(pagination.Offset()).
		Limit(query.Limit).
		Find(&assets).Error
	if err != nil {
		return nil, models.Pagination{}, apperr.FromDB(err)
	}
	return assets, pagination, nil
}

func (s *AssetService) FindByID(ctx context.Context, id string) (*models.StudioAsset, error) {
	asset, err := s.assets.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Asset not found")
	}
	return asset, nil
}

func (s *AssetService) Update(ctx context.Context, actor Actor, id string, req *models.AssetUpdateRequest) (*models.StudioAsset, error) {
	asset, err := s.assets.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Asset not found")
	}

	updates := make(map[string]interface{})
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.Preview != nil {
		updates["preview"] = *req.Preview
	}
	if req.IsPremium != nil {
		updates["is_premium"] = *req.IsPremium
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Order != nil {
		updates["sort_order"] = *req.Order
	}

	// metadata goes through the model so the json serializer applies
	if req.Metadata != nil {
		asset.Metadata = req.Metadata
		err := s.assets.DB().WithContext(ctx).Model(asset).
			Where("deleted_at IS NULL").
			Select("metadata").
			Updates(asset).Error
		if err != nil {
			return nil, apperr.FromDB(err)
		}
	}

	if len(updates) > 0 {
		if _, err := s.assets.Updates(ctx, id, updates); err != nil {
			return nil, apperr.FromDB(err)
		}
	}

	s.activity.Log(actor, models.ActionUpdate, models.EntityAsset, id, map[string]interface{}{
		"fields": fieldNames(updates),
	})
	return s.FindByID(ctx, id)
}

func (s *AssetService) Delete(ctx context.Context, actor Actor, id string) error {
	affected, err := s.assets.Delete(ctx, id)
	if err != nil {
		return apperr.FromDB(err)
	}
	if affected == 0 {
		return apperr.NotFound("Asset not found")
	}

	s.activity.Log(actor, models.ActionDelete, models.EntityAsset, id, nil)
	return nil
}

func (s *AssetService) BulkDelete(ctx context.Context, actor Actor, ids []string) (*models.BulkResult, error) {
	count, err := s.assets.DeleteMany(ctx, ids)
	if err != nil {
		return nil, apperr.FromDB(err)
	}

	s.activity.Log(actor, models.ActionBulkDelete, models.EntityAsset, "", map[string]interface{}{
		"count": count,
	})
	return &models.BulkResult{Count: count}, nil
}
