package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GetCategories returns a plain list unless a page is requested.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	query := middleware.Query[models.CategoryListQuery](c)

	categories, pagination, err := h.categoryService.FindAll(c.Request.Context(), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if pagination != nil {
		utils.Paginated(c, categories, *pagination)
		return
	}
	utils.Success(c, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)

	category, err := h.categoryService.FindByID(c.Request.Context(), params.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, category)
}

func (h *CategoryHandler) GetCategoryBySlug(c *gin.Context) {
	params := middleware.Params[models.SlugParam](c)

	category, err := h.categoryService.FindBySlug(c.Request.Context(), params.Slug)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, category)
}

func (h *CategoryHandler) GetCategoryQuotes(c *gin.Context) {
	params := middleware.Params[models.SlugParam](c)
	query := middleware.Query[models.CategoryQuotesQuery](c)

	result, err := h.categoryService.GetQuotesBySlug(c.Request.Context(), params.Slug, query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, result)
}

func (h *CategoryHandler) GetPopularCategories(c *gin.Context) {
	query := middleware.Query[models.LimitQuery](c)

	categories, err := h.categoryService.GetPopular(c.Request.Context(), query.Limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	req := middleware.Body[models.CategoryCreateRequest](c)

	category, err := h.categoryService.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, "Category created successfully", category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)
	req := middleware.Body[models.CategoryUpdateRequest](c)

	category, err := h.categoryService.Update(c.Request.Context(), middleware.Actor(c), params.ID, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Category updated successfully", category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)

	if err := h.categoryService.Delete(c.Request.Context(), middleware.Actor(c), params.ID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Category deleted successfully", nil)
}

func (h *CategoryHandler) BulkDeleteCategories(c *gin.Context) {
	req := middleware.Body[models.BulkIDsRequest](c)

	result, err := h.categoryService.BulkDelete(c.Request.Context(), middleware.Actor(c), req.IDs)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if len(result.Errors) == 0 {
		utils.SuccessWithMessage(c, fmt.Sprintf("%d categories deleted successfully", result.Count), result)
		return
	}

	// nothing deleted is a client error; the per-item reasons still go back
	status := http.StatusOK
	if result.Count == 0 {
		status = http.StatusBadRequest
	}
	utils.WithStatus(c, status, fmt.Sprintf("Deleted %d categories. %d failed.", result.Count, len(result.Errors)), result)
}
