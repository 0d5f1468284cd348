package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

func (h *AssetHandler) GetAssets(c *gin.Context) {
	query := middleware.Query[models.AssetListQuery](c)

	assets, pagination, err := h.assetService.FindAll(c.Request.Context(), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Paginated(c, assets, pagination)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)

	asset, err := h.assetService.FindByID(c.Request.Context(), params.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, asset)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	req := middleware.Body[models.AssetCreateRequest](c)

	asset, err := h.assetService.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, "Asset created successfully", asset)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)
	req := middleware.Body[models.AssetUpdateRequest](c)

	asset, err := h.assetService.Update(c.Request.Context(), middleware.Actor(c), params.ID, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Asset updated successfully", asset)
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)

	if err := h.assetService.Delete(c.Request.Context(), middleware.Actor(c), params.ID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Asset deleted successfully", nil)
}

func (h *AssetHandler) BulkDeleteAssets(c *gin.Context) {
	req := middleware.Body[models.BulkIDsRequest](c)

	result, err := h.assetService.BulkDelete(c.Request.Context(), middleware.Actor(c), req.IDs)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, fmt.Sprintf("%d assets deleted", result.Count), result)
}
