package app

import (
	"codewithme_backend/docs"
	"codewithme_backend/internal/config"
	"codewithme_backend/internal/middleware"
	"codewithme_backend/internal/util"
	"codewithme_backend/pkg/monitoring"
	"codewithme_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 需要授权的路由，认证后按用户限流
	authGroup := router.Group("/api")
	authGroup.Use(
		middleware.ConfigMiddleware(cfg),
		middleware.AuthMiddleware(cfg),
		a.limiter.Middleware(security.ClientKey(util.ContextUserKey)),
	)
	{
		a.registerChallengeRoutes(authGroup, c)
		a.registerUserRoutes(authGroup, c)
		authGroup.POST("/code/run", c.code.Run)
	}
}

func (a *App) registerChallengeRoutes(group *gin.RouterGroup, c *controllers) {
	challenges := group.Group("/challenges")
	{
		challenges.POST("", c.challenge.CreateChallenge)
		challenges.GET("", c.challenge.ListChallenges)
		challenges.GET("/leaderboard", c.challenge.Leaderboard)
		challenges.GET("/:id", c.challenge.GetChallenge)
		challenges.DELETE("/:id", c.challenge.DeleteChallenge)

		challenges.POST("/:id/submit", c.challenge.Submit)
		challenges.GET("/:id/submissions", c.challenge.Submissions)
		challenges.POST("/:id/like", c.challenge.Like)
		challenges.POST("/:id/dislike", c.challenge.Dislike)

		// 评论
		challenges.POST("/:id/comments", c.comment.AddComment)
		challenges.POST("/:id/comments/:commentId/reply", c.comment.Reply)
		challenges.POST("/:id/comments/:commentId/like", c.comment.Like)
		challenges.POST("/:id/comments/:commentId/dislike", c.comment.Dislike)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	users := group.Group("/users/me")
	{
		users.GET("", c.user.GetProfile)
		users.PUT("/saved-challenges/:id", c.user.ToggleSavedChallenge)
	}
}
