package controller

import (
	"codewithme_backend/internal/util"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 数据库、Redis 等依赖的连通性检查
type Pinger func(ctx context.Context) error

type HealthController struct {
	checks map[string]Pinger
}

func NewHealthController(checks map[string]Pinger) *HealthController {
	return &HealthController{checks: checks}
}

// @Summary 健康检查
// @Description 检查数据库与缓存连接状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	components := gin.H{}
	healthy := true
	for name, ping := range c.checks {
		if err := ping(checkCtx); err != nil {
			components[name] = "down"
			healthy = false
			continue
		}
		components[name] = "up"
	}

	if !healthy {
		util.ErrorWithData(ctx, http.StatusServiceUnavailable, "Service degraded", gin.H{"components": components})
		return
	}
	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
