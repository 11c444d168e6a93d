package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "dive":
		return "contains an invalid element"
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}

// FieldErrors 将 validator 的错误展开为字段级明细，非校验类错误按请求体错误处理
func FieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{
			Field:   lowerFirst(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// ValidationFailed 返回 400 与字段级错误
func ValidationFailed(c *gin.Context, err error) {
	ErrorWithData(c, http.StatusBadRequest, "Validation failed", FieldErrors(err))
}

// InvalidField 用于 binding 标签之外的业务校验
func InvalidField(c *gin.Context, field, message string) {
	ErrorWithData(c, http.StatusBadRequest, "Validation failed", []FieldError{{Field: field, Message: message}})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
