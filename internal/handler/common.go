package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"kgtransfer/internal/logger"
	"kgtransfer/internal/repository"
	"kgtransfer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidation makes binding errors report JSON field names.
func RegisterValidation() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(f reflect.StructField) string {
				name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name == "" {
					name = strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
				}
				if name == "" {
					return f.Name
				}
				return name
			})
		}
	})
}

// bindJSON binds the body into dst, answering 400 with a readable message on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return false
	}
	return true
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := fe.Field()
		switch fe.Tag() {
		case "required", "required_without":
			return field + " is required"
		case "email":
			return field + " must be a valid email"
		case "url":
			return field + " must be a valid URL"
		case "min", "gte":
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "max", "lte":
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		case "oneof":
			return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
		}
		return field + " is invalid"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field + " has an invalid type"
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "invalid JSON body"
	}
	return "invalid request: " + err.Error()
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// parsePagination reads page, limit, status and search from the query string.
func parsePagination(c *gin.Context) repository.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(repository.DefaultLimit)))
	return repository.ListQuery{
		Page:   page,
		Limit:  limit,
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
	}.Normalize()
}

// checkStatusFilter answers 400 when the status query is set but not allowed.
func checkStatusFilter(c *gin.Context, lq repository.ListQuery, allowed func(string) bool) bool {
	if lq.Status == "" || allowed(lq.Status) {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
	return false
}

func respondList[T any](c *gin.Context, items []T, total int64, lq repository.ListQuery) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  lq.Page,
		"limit": lq.Limit,
		"pages": repository.Pages(total, lq.Limit),
	})
}

// respondError maps repository and service errors to status codes; anything
// unexpected is logged and answered with 500.
func respondError(c *gin.Context, log logger.Logger, err error, notFound string) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	default:
		_ = c.Error(err)
		log.Error("request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// requireNonBlank takes name/value pairs and answers 400 for the first value
// that is only whitespace; binding's required accepts those.
func requireNonBlank(c *gin.Context, pairs ...string) bool {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": pairs[i] + " is required"})
			return false
		}
	}
	return true
}
