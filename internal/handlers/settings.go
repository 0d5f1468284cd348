package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) GetPublicSettings(c *gin.Context) {
	settings, err := h.settingsService.GetPublicSettings(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, settings)
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	query := middleware.Query[models.SettingsQuery](c)

	settings, err := h.settingsService.GetSettings(c.Request.Context(), query.Group)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, settings)
}

func (h *SettingsHandler) UpsertSetting(c *gin.Context) {
	req := middleware.Body[models.SettingUpsertRequest](c)

	setting, err := h.settingsService.UpsertSetting(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Setting saved successfully", setting)
}

func (h *SettingsHandler) GetFeatureToggles(c *gin.Context) {
	toggles, err := h.settingsService.GetFeatureToggles(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, toggles)
}

func (h *SettingsHandler) UpdateFeatureToggle(c *gin.Context) {
	params := middleware.Params[models.ToggleKeyParam](c)
	req := middleware.Body[models.ToggleUpdateRequest](c)

	toggle, err := h.settingsService.UpdateFeatureToggle(c.Request.Context(), middleware.Actor(c), params.Key, *req.IsEnabled)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Feature toggle updated successfully", toggle)
}

func (h *SettingsHandler) InitializeFeatureToggles(c *gin.Context) {
	toggles, err := h.settingsService.InitializeFeatureToggles(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Feature toggles initialized", toggles)
}
