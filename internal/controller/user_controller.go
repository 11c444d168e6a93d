package controller

import (
	"codewithme_backend/internal/service"
	"codewithme_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 当前用户的资料与收藏
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary 当前用户资料
// @Description 积分、已解出的挑战与收藏列表
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProfileResponse}
// @Failure 404 {object} util.Response
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.Profile(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// ToggleSavedChallenge godoc
// @Summary 收藏/取消收藏挑战
// @Tags 用户
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /users/me/saved-challenges/{id} [put]
func (c *UserController) ToggleSavedChallenge(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	saved, err := c.UserService.ToggleSaved(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"savedChallenges": saved})
}
