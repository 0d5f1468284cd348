package handlers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
)

type QuoteHandler struct {
	quoteService *services.QuoteService
}

func NewQuoteHandler(quoteService *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	query := middleware.Query[models.QuoteListQuery](c)

	quotes, pagination, err := h.quoteService.FindAll(c.Request.Context(), query)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Paginated(c, quotes, pagination)
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)

	quote, err := h.quoteService.FindByID(c.Request.Context(), params.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, quote)
}

func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	query := middleware.Query[models.RandomQuoteQuery](c)

	quote, err := h.quoteService.GetRandom(c.Request.Context(), query.CategorySlug)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, quote)
}

func (h *QuoteHandler) GetTrendingQuotes(c *gin.Context) {
	query := middleware.Query[models.LimitQuery](c)

	quotes, err := h.quoteService.GetTrending(c.Request.Context(), query.Limit)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, quotes)
}

func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	req := middleware.Body[models.QuoteCreateRequest](c)

	quote, err := h.quoteService.Create(c.Request.Context(), middleware.Actor(c), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, "Quote created successfully", quote)
}

func (h *QuoteHandler) UpdateQuote(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)
	req := middleware.Body[models.QuoteUpdateRequest](c)

	quote, err := h.quoteService.Update(c.Request.Context(), middleware.Actor(c), params.ID, req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Quote updated successfully", quote)
}

func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	params := middleware.Params[models.IDParam](c)

	if err := h.quoteService.Delete(c.Request.Context(), middleware.Actor(c), params.ID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "Quote deleted successfully", nil)
}

func (h *QuoteHandler) IncrementView(c *gin.Context) {
	h.count(c, h.quoteService.IncrementView)
}

func (h *QuoteHandler) IncrementShare(c *gin.Context) {
	h.count(c, h.quoteService.IncrementShare)
}

func (h *QuoteHandler) IncrementDownload(c *gin.Context) {
	h.count(c, h.quoteService.IncrementDownload)
}

func (h *QuoteHandler) count(c *gin.Context, inc func(ctx context.Context, id string) (*models.CounterResult, error)) {
	params := middleware.Params[models.IDParam](c)

	result, err := inc(c.Request.Context(), params.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Success(c, result)
}

func (h *QuoteHandler) BulkCreateQuotes(c *gin.Context) {
	req := middleware.Body[models.QuoteBulkCreateRequest](c)

	result, err := h.quoteService.BulkCreate(c.Request.Context(), middleware.Actor(c), req.Quotes)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, fmt.Sprintf("%d quotes created successfully", result.Count), result)
}

func (h *QuoteHandler) BulkUpdateStatus(c *gin.Context) {
	req := middleware.Body[models.QuoteBulkStatusRequest](c)

	result, err := h.quoteService.BulkUpdateStatus(c.Request.Context(), middleware.Actor(c), req.IDs, req.Status)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, fmt.Sprintf("%d quotes updated", result.Count), result)
}

func (h *QuoteHandler) BulkDeleteQuotes(c *gin.Context) {
	req := middleware.Body[models.BulkIDsRequest](c)

	result, err := h.quoteService.BulkDelete(c.Request.Context(), middleware.Actor(c), req.IDs)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessWithMessage(c, fmt.Sprintf("%d quotes deleted", result.Count), result)
}
