package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
)

// AdminHandler serves user administration, the audit trail and dashboard stats.
type AdminHandler struct {
	userService      *services.UserService
	activityService  *services.ActivityLogService
	dashboardService *services.DashboardService
}

func NewAdminHandler(userService *services.UserService, activityService *services.ActivityLogService, dashboardService *services.DashboardService) *AdminHandler {
	return &AdminHandler{
		userService:      userService,
		activityService:  activityService,
		dashboardService: dashboardService,
	}
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	query := middleware.Query[models.UserListQuery](c)

	users, pagination, err := h.userService.FindAll(c.Request.Context(), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Paginated(c, users, pagination)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)

	user, err := h.userService.FindByID(c.Request.Context(), params.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, user)
}

func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)
	req := middleware.Body[models.UserStatusRequest](c)

	user, err := h.userService.UpdateStatus(c.Request.Context(), middleware.Actor(c), params.ID, *req.IsActive)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	message := "User deactivated successfully"
	if user.IsActive {
		message = "User activated successfully"
	}
	utils.SuccessWithMessage(c, message, user)
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)
	req := middleware.Body[models.UserRoleRequest](c)

	user, err := h.userService.UpdateRole(c.Request.Context(), middleware.Actor(c), params.ID, req.Role)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "User role updated successfully", user)
}

func (h *AdminHandler) GetActivityLogs(c *gin.Context) {
	query := middleware.Query[models.ActivityLogQuery](c)

	logs, err := h.activityService.GetRecent(c.Request.Context(), query.Limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, logs)
}

func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, stats)
}
