package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/sirupsen/logrus"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// exposeInternalErrors controls whether 500 messages reach clients.
var exposeInternalErrors = true

// ExposeInternalErrors is set once at startup; only development shows raw
// internal error messages.
func ExposeInternalErrors(expose bool) {
	exposeInternalErrors = expose
}

func Timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.Response{
		Success:   true,
		Data:      data,
		Timestamp: Timestamp(),
	})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: Timestamp(),
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: Timestamp(),
	})
}

func Paginated(c *gin.Context, data interface{}, pagination models.Pagination) {
	c.JSON(http.StatusOK, models.PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Timestamp:  Timestamp(),
	})
}

// WithStatus answers with an explicit status, keeping data in the envelope.
// Statuses of 400 and above are reported as unsuccessful.
func WithStatus(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{
		Success:   status < http.StatusBadRequest,
		Data:      data,
		Message:   message,
		Timestamp: Timestamp(),
	})
}

// Error aborts the request with a failure envelope.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Success: false,
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: Timestamp(),
	})
}

// HandleError is the single place errors are turned into responses.
func HandleError(c *gin.Context, err error) {
	e, ok := apperr.As(err)
	if !ok {
		e = apperr.Internal(err)
	}

	if e.Status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"code":       e.Code,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		}).WithError(err).Error("request failed")
	}

	message := e.Message
	if e.Code == apperr.CodeInternal {
		if exposeInternalErrors && e.Err != nil {
			message = e.Err.Error()
		} else {
			message = "Something went wrong"
		}
	}

	Error(c, e.Status, e.Code, message, e.Details)
}

func NotFound(c *gin.Context, message string) {
	HandleError(c, apperr.NotFound(message))
}
