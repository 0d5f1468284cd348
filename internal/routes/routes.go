package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/handlers"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/storage"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
	"gorm.io/gorm"
)

// Deps are the long-lived pieces the caller owns and shuts down.
type Deps struct {
	Storage  storage.Storage
	Limiter  middleware.Store
	Activity *services.ActivityLogService
}

func Setup(db *gorm.DB, cfg *config.Config, deps Deps) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.Origins))
	router.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if local, ok := deps.Storage.(*storage.Local); ok {
		router.Static("/uploads", local.Dir())
	}

	tokens := utils.NewTokenManager(cfg.JWT)
	activity := deps.Activity

	authService := services.NewAuthService(db, tokens, activity)
	quoteService := services.NewQuoteService(db, activity)
	categoryService := services.NewCategoryService(db, activity)
	assetService := services.NewAssetService(db, activity)
	userService := services.NewUserService(db, activity)
	settingsService := services.NewSettingsService(db, activity)
	dashboardService := services.NewDashboardService(db)
	favoriteService := services.NewFavoriteService(db)
	analyticsService := services.NewAnalyticsService(db)
	uploadService := services.NewUploadService(deps.Storage, cfg.Upload.MaxFileSize, cfg.Upload.AllowedExtensions, activity)

	healthHandler := handlers.NewHealthHandler(db, cfg.Env)
	authHandler := handlers.NewAuthHandler(authService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	assetHandler := handlers.NewAssetHandler(assetService)
	adminHandler := handlers.NewAdminHandler(userService, activity, dashboardService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	engagementHandler := handlers.NewEngagementHandler(favoriteService, analyticsService)
	fileHandler := handlers.NewFileHandler(uploadService, cfg.Upload.MaxFileSize)

	authLimit := middleware.RateLimit(deps.Limiter, middleware.AuthProfile)
	publicLimit := middleware.RateLimit(deps.Limiter, middleware.PublicProfile)
	uploadLimit := middleware.RateLimit(deps.Limiter, middleware.UploadProfile)

	authenticate := middleware.Authenticate(authService)
	optional := middleware.OptionalAuth(authService)
	admin := middleware.RequireAdmin()
	superAdmin := middleware.RequireSuperAdmin()
	userManagers := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleContentManager)

	byID := middleware.BindURI[models.IDParam]()
	bulkIDs := middleware.BindJSON[models.BulkIDsRequest]()

	router.GET("/", healthHandler.Welcome)
	router.GET("/health", healthHandler.Health)
	router.NoRoute(healthHandler.NotFound)

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit(deps.Limiter, middleware.GeneralProfile(cfg.RateLimit)))

	auth := api.Group("/auth")
	{
		auth.POST("/register", authLimit, middleware.BindJSON[models.RegisterRequest](), authHandler.Register)
		auth.POST("/login", authLimit, middleware.BindJSON[models.LoginRequest](), authHandler.Login)
		auth.POST("/refresh", authLimit, middleware.BindJSON[models.RefreshTokenRequest](), authHandler.Refresh)
		auth.GET("/me", authenticate, authHandler.GetMe)
		auth.POST("/change-password", authenticate, middleware.BindJSON[models.ChangePasswordRequest](), authHandler.ChangePassword)
		auth.POST("/logout", authenticate, authHandler.Logout)
	}

	quotes := api.Group("/quotes")
	{
		quotes.GET("/random", publicLimit, optional, middleware.BindQuery[models.RandomQuoteQuery](), quoteHandler.GetRandomQuote)
		quotes.GET("/trending", publicLimit, optional, middleware.BindQuery[models.LimitQuery](), quoteHandler.GetTrendingQuotes)
		quotes.GET("", publicLimit, optional, middleware.BindQuery[models.QuoteListQuery](), quoteHandler.GetQuotes)
		quotes.GET("/:id", publicLimit, optional, byID, quoteHandler.GetQuote)
		quotes.POST("/:id/view", publicLimit, byID, quoteHandler.IncrementView)
		quotes.POST("/:id/share", publicLimit, byID, quoteHandler.IncrementShare)
		quotes.POST("/:id/download", publicLimit, byID, quoteHandler.IncrementDownload)

		quotes.POST("", authenticate, admin, middleware.BindJSON[models.QuoteCreateRequest](), quoteHandler.CreateQuote)
		quotes.POST("/bulk", authenticate, admin, middleware.BindJSON[models.QuoteBulkCreateRequest](), quoteHandler.BulkCreateQuotes)
		quotes.PATCH("/bulk/status", authenticate, admin, middleware.BindJSON[models.QuoteBulkStatusRequest](), quoteHandler.BulkUpdateStatus)
		quotes.POST("/bulk/delete", authenticate, admin, bulkIDs, quoteHandler.BulkDeleteQuotes)
		quotes.PUT("/:id", authenticate, admin, byID, middleware.BindJSON[models.QuoteUpdateRequest](), quoteHandler.UpdateQuote)
		quotes.DELETE("/:id", authenticate, admin, byID, quoteHandler.DeleteQuote)
	}

	categories := api.Group("/categories")
	{
		bySlug := middleware.BindURI[models.SlugParam]()

		categories.GET("/popular", publicLimit, middleware.BindQuery[models.LimitQuery](), categoryHandler.GetPopularCategories)
		categories.GET("", publicLimit, middleware.BindQuery[models.CategoryListQuery](), categoryHandler.GetCategories)
		categories.GET("/id/:id", publicLimit, byID, categoryHandler.GetCategory)
		categories.GET("/:slug", publicLimit, bySlug, categoryHandler.GetCategoryBySlug)
		categories.GET("/:slug/quotes", publicLimit, bySlug, middleware.BindQuery[models.CategoryQuotesQuery](), categoryHandler.GetCategoryQuotes)

		categories.POST("", authenticate, admin, middleware.BindJSON[models.CategoryCreateRequest](), categoryHandler.CreateCategory)
		categories.POST("/bulk/delete", authenticate, admin, bulkIDs, categoryHandler.BulkDeleteCategories)
		categories.PUT("/:id", authenticate, admin, byID, middleware.BindJSON[models.CategoryUpdateRequest](), categoryHandler.UpdateCategory)
		categories.DELETE("/:id", authenticate, admin, byID, categoryHandler.DeleteCategory)
	}

	assets := api.Group("/assets")
	{
		assets.GET("", publicLimit, middleware.BindQuery[models.AssetListQuery](), assetHandler.GetAssets)
		assets.GET("/:id", publicLimit, byID, assetHandler.GetAsset)

		assets.POST("", authenticate, admin, middleware.BindJSON[models.AssetCreateRequest](), assetHandler.CreateAsset)
		assets.POST("/bulk/delete", authenticate, admin, bulkIDs, assetHandler.BulkDeleteAssets)
		assets.PUT("/:id", authenticate, admin, byID, middleware.BindJSON[models.AssetUpdateRequest](), assetHandler.UpdateAsset)
		assets.DELETE("/:id", authenticate, admin, byID, assetHandler.DeleteAsset)
	}

	users := api.Group("/users")
	users.Use(authenticate, userManagers)
	{
		users.GET("", middleware.BindQuery[models.UserListQuery](), adminHandler.GetUsers)
		users.GET("/:id", byID, adminHandler.GetUser)
		users.PATCH("/:id/status", byID, middleware.BindJSON[models.UserStatusRequest](), adminHandler.UpdateUserStatus)
		users.PATCH("/:id/role", byID, middleware.BindJSON[models.UserRoleRequest](), adminHandler.UpdateUserRole)
	}

	settings := api.Group("/settings")
	{
		settings.GET("/public", publicLimit, settingsHandler.GetPublicSettings)

		settings.GET("", authenticate, superAdmin, middleware.BindQuery[models.SettingsQuery](), settingsHandler.GetSettings)
		settings.PUT("", authenticate, superAdmin, middleware.BindJSON[models.SettingUpsertRequest](), settingsHandler.UpsertSetting)
		settings.GET("/feature-toggles", authenticate, superAdmin, settingsHandler.GetFeatureToggles)
		settings.PATCH("/feature-toggles/:key", authenticate, superAdmin, middleware.BindURI[models.ToggleKeyParam](), middleware.BindJSON[models.ToggleUpdateRequest](), settingsHandler.UpdateFeatureToggle)
		settings.POST("/feature-toggles/init", authenticate, superAdmin, settingsHandler.InitializeFeatureToggles)
	}

	api.GET("/activity-logs", authenticate, admin, middleware.BindQuery[models.ActivityLogQuery](), adminHandler.GetActivityLogs)
	api.GET("/dashboard/stats", authenticate, admin, adminHandler.GetDashboardStats)
	api.POST("/upload", uploadLimit, authenticate, admin, fileHandler.UploadFile)

	favorites := api.Group("/favorites")
	favorites.Use(authenticate)
	{
		favorites.GET("", middleware.BindQuery[models.PageQuery](), engagementHandler.GetFavorites)
		favorites.POST("/:quoteId", middleware.BindURI[models.QuoteIDParam](), engagementHandler.ToggleFavorite)
	}

	api.POST("/analytics/track", publicLimit, optional, middleware.BindJSON[models.TrackEventRequest](), engagementHandler.TrackEvent)

	return router
}
