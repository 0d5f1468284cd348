package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	req := middleware.Body[models.RegisterRequest](c)

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, "User registered successfully", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	req := middleware.Body[models.LoginRequest](c)

	resp, err := h.authService.Login(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Login successful", resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	req := middleware.Body[models.RefreshTokenRequest](c)

	resp, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Token refreshed successfully", resp)
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	req := middleware.Body[models.ChangePasswordRequest](c)

	if err := h.authService.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), req); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Password changed successfully", nil)
}

// Logout is a no-op on the server; tokens are stateless and the client drops them.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.SuccessWithMessage(c, "Logged out successfully", nil)
}
