package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
	"github.com/jobayerhossain-ai/Bangla-Quotes/pkg/validator"
)

const (
	bodyKey   = "validated_body"
	queryKey  = "validated_query"
	paramsKey = "validated_params"
)

// BindJSON decodes and validates the request body into T before the handler
// runs. Handlers read it back with Body[T].
func BindJSON[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			var tooLarge *http.MaxBytesError
			var syntax *json.SyntaxError
			switch {
			case errors.As(err, &tooLarge):
				utils.HandleError(c, apperr.New(http.StatusRequestEntityTooLarge, apperr.CodePayloadTooLarge, "Request body too large"))
			case errors.Is(err, io.EOF):
				utils.HandleError(c, apperr.BadRequest("Request body is required"))
			case errors.As(err, &syntax), errors.Is(err, io.ErrUnexpectedEOF):
				utils.HandleError(c, apperr.BadRequest("Malformed JSON body"))
			default:
				utils.HandleError(c, apperr.Validation(validator.Translate(err, "body")))
			}
			return
		}
		if !validate(c, &req) {
			return
		}
		c.Set(bodyKey, &req)
		c.Next()
	}
}

// BindQuery binds the query string into T, applying form defaults.
func BindQuery[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindQuery(&req); err != nil {
			utils.HandleError(c, apperr.Validation(validator.Translate(err, "query")))
			return
		}
		if !validate(c, &req) {
			return
		}
		c.Set(queryKey, &req)
		c.Next()
	}
}

// BindURI binds path parameters into T.
func BindURI[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindUri(&req); err != nil {
			utils.HandleError(c, apperr.Validation(validator.Translate(err, "params")))
			return
		}
		if !validate(c, &req) {
			return
		}
		c.Set(paramsKey, &req)
		c.Next()
	}
}

func validate(c *gin.Context, req interface{}) bool {
	if err := validator.ValidateStruct(req); err != nil {
		utils.HandleError(c, apperr.Validation(validator.Translate(err, "body")))
		return false
	}
	return true
}

func Body[T any](c *gin.Context) *T {
	return get[T](c, bodyKey)
}

func Query[T any](c *gin.Context) *T {
	return get[T](c, queryKey)
}

func Params[T any](c *gin.Context) *T {
	return get[T](c, paramsKey)
}

func get[T any](c *gin.Context, key string) *T {
	if v, ok := c.Get(key); ok {
		if req, ok := v.(*T); ok {
			return req
		}
	}
	return new(T)
}
