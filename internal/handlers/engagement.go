package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
)

// EngagementHandler covers favorites and client-reported analytics events.
type EngagementHandler struct {
	favoriteService  *services.FavoriteService
	analyticsService *services.AnalyticsService
}

func NewEngagementHandler(favoriteService *services.FavoriteService, analyticsService *services.AnalyticsService) *EngagementHandler {
	return &EngagementHandler{
		favoriteService:  favoriteService,
		analyticsService: analyticsService,
	}
}

func (h *EngagementHandler) GetFavorites(c *gin.Context) {
	query := middleware.Query[models.PageQuery](c)

	favorites, pagination, err := h.favoriteService.List(c.Request.Context(), middleware.CurrentUserID(c), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Paginated(c, favorites, pagination)
}

func (h *EngagementHandler) ToggleFavorite(c *gin.Context) {
	params := middleware.Params[models.QuoteIDParam](c)

	result, err := h.favoriteService.Toggle(c.Request.Context(), middleware.CurrentUserID(c), params.QuoteID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	message := "Removed from favorites"
	if result.Favorited {
		message = "Added to favorites"
	}
	utils.SuccessWithMessage(c, message, result)
}

func (h *EngagementHandler) TrackEvent(c *gin.Context) {
	req := middleware.Body[models.TrackEventRequest](c)

	if err := h.analyticsService.Track(c.Request.Context(), req); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Event tracked", nil)
}
