package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/middleware"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/services"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
)

type FileHandler struct {
	uploadService *services.UploadService
	maxFileSize   int64
}

func NewFileHandler(uploadService *services.UploadService, maxFileSize int64) *FileHandler {
	return &FileHandler{
		uploadService: uploadService,
		maxFileSize:   maxFileSize,
	}
}

// UploadFile accepts a single multipart field named "file".
func (h *FileHandler) UploadFile(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.HandleError(c, apperr.New(http.StatusRequestEntityTooLarge, apperr.CodePayloadTooLarge, "File too large"))
			return
		}
		utils.HandleError(c, apperr.BadRequest("Invalid multipart form"))
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.HandleError(c, apperr.BadRequest("No file uploaded"))
		return
	}
	defer file.Close()

	result, err := h.uploadService.Upload(c.Request.Context(), middleware.Actor(c),
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Created(c, "File uploaded successfully", result)
}
