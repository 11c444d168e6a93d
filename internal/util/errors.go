package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrDuplicateTitle      = errors.New("duplicate challenge title")
	ErrEmptyCode           = errors.New("code must not be empty")
	ErrUnsupportedLanguage = errors.New("language is not supported by the executor")
	ErrConcurrentUpdate    = errors.New("record was modified concurrently")
	ErrExecutorUnavailable = errors.New("code execution service unavailable")
)

// 对外展示的提示语
const (
	MsgChallengeNotFound = "Challenge not found"
	MsgCommentNotFound   = "Comment not found"
	MsgUserNotFound      = "User not found"
	MsgNotAuthorized     = "User not authorized"
	MsgDuplicateTitle    = "A challenge with this title already exists."
	MsgConcurrentUpdate  = "Challenge was modified concurrently, please retry."
	MsgExecutorDown      = "Code execution service unavailable."
)

// HandleServiceError 将 service 层错误映射为统一的 HTTP 响应，未知错误记录日志并返回 500
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrChallengeNotFound):
		Error(c, http.StatusNotFound, MsgChallengeNotFound)
	case errors.Is(err, ErrCommentNotFound):
		Error(c, http.StatusNotFound, MsgCommentNotFound)
	case errors.Is(err, ErrUserNotFound):
		Error(c, http.StatusNotFound, MsgUserNotFound)
	case errors.Is(err, ErrPermissionDenied):
		Error(c, http.StatusUnauthorized, MsgNotAuthorized)
	case errors.Is(err, ErrDuplicateTitle):
		BadRequest(c, MsgDuplicateTitle)
	case errors.Is(err, ErrEmptyCode):
		InvalidField(c, "code", "is required")
	case errors.Is(err, ErrUnsupportedLanguage):
		InvalidField(c, "language", "is not supported")
	case errors.Is(err, ErrConcurrentUpdate):
		Error(c, http.StatusConflict, MsgConcurrentUpdate)
	case errors.Is(err, ErrExecutorUnavailable):
		Error(c, http.StatusServiceUnavailable, MsgExecutorDown)
	default:
		LogInternalError(c, err)
	}
}
