package controller

import (
	"codewithme_backend/internal/service"
	"codewithme_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommentController struct {
	CommentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{CommentService: commentService}
}

// @Summary 发表评论
// @Description 新评论放在最前，返回完整评论树
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Param comment body service.CommentRequest true "评论内容"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /challenges/{id}/comments [post]
func (c *CommentController) AddComment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(ctx, err)
		return
	}

	comments, err := c.CommentService.AddComment(ctx.Request.Context(), ctx.Param("id"), user.UserID, req.Text)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// @Summary 回复评论
// @Description 可回复任意层级的评论，返回完整评论树
// @Tags 评论
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Param commentId path string true "评论ID"
// @Param comment body service.CommentRequest true "回复内容"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /challenges/{id}/comments/{commentId}/reply [post]
func (c *CommentController) Reply(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(ctx, err)
		return
	}

	comments, err := c.CommentService.AddReply(ctx.Request.Context(), ctx.Param("id"), ctx.Param("commentId"), user.UserID, req.Text)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// @Summary 点赞评论
// @Tags 评论
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Param commentId path string true "评论ID"
// @Success 200 {object} util.Response{data=service.CommentView}
// @Router /challenges/{id}/comments/{commentId}/like [post]
func (c *CommentController) Like(ctx *gin.Context) {
	c.toggleVote(ctx, true)
}

// @Summary 点踩评论
// @Tags 评论
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Param commentId path string true "评论ID"
// @Success 200 {object} util.Response{data=service.CommentView}
// @Router /challenges/{id}/comments/{commentId}/dislike [post]
func (c *CommentController) Dislike(ctx *gin.Context) {
	c.toggleVote(ctx, false)
}

func (c *CommentController) toggleVote(ctx *gin.Context, like bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	comment, err := c.CommentService.ToggleVote(ctx.Request.Context(), ctx.Param("id"), ctx.Param("commentId"), user.UserID, like)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, comment)
}
