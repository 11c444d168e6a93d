package controller

import (
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/repository"
	"codewithme_backend/internal/service"
	"codewithme_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
	GradingService   *service.GradingService
}

func NewChallengeController(challengeService *service.ChallengeService, gradingService *service.GradingService) *ChallengeController {
	return &ChallengeController{
		ChallengeService: challengeService,
		GradingService:   gradingService,
	}
}

// @Summary 创建挑战
// @Description 创建新的编程挑战，标题必须唯一
// @Tags 挑战
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param challenge body service.CreateChallengeRequest true "挑战内容"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /challenges [post]
func (c *ChallengeController) CreateChallenge(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateChallengeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(ctx, err)
		return
	}

	challenge, err := c.ChallengeService.Create(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, challenge)
}

// @Summary 挑战列表
// @Description 按创建时间倒序，附带当前用户是否已解出
// @Tags 挑战
// @Produce json
// @Security ApiKeyAuth
// @Param difficulty query string false "难度" Enums(Easy, Medium, Hard)
// @Param tag query string false "标签"
// @Param search query string false "标题关键字"
// @Success 200 {object} util.Response
// @Router /challenges [get]
func (c *ChallengeController) ListChallenges(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	filter := repository.ChallengeFilter{
		Difficulty: model.Difficulty(ctx.Query("difficulty")),
		Tag:        strings.TrimSpace(ctx.Query("tag")),
		Search:     strings.TrimSpace(ctx.Query("search")),
	}
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		util.InvalidField(ctx, "difficulty", "must be one of Easy, Medium, Hard")
		return
	}

	challenges, err := c.ChallengeService.List(ctx.Request.Context(), user.UserID, filter)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, challenges)
}

// @Summary 排行榜
// @Description 按积分倒序的前 N 名用户
// @Tags 挑战
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /challenges/leaderboard [get]
func (c *ChallengeController) Leaderboard(ctx *gin.Context) {
	entries, err := c.ChallengeService.Leaderboard(ctx.Request.Context())
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// @Summary 挑战详情
// @Description 返回挑战及作者、评论作者信息；非作者只能看到示例用例
// @Tags 挑战
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /challenges/{id} [get]
func (c *ChallengeController) GetChallenge(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.ChallengeService.Get(ctx.Request.Context(), ctx.Param("id"), user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary 删除挑战
// @Description 仅作者可删除
// @Tags 挑战
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /challenges/{id} [delete]
func (c *ChallengeController) DeleteChallenge(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ChallengeService.Delete(ctx.Request.Context(), ctx.Param("id"), user.UserID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "Challenge removed"})
}

// @Summary 运行/提交代码
// @Description runOnly 为 true 时只运行示例用例且不计分；否则运行全部用例，首次全部通过时加分
// @Tags 挑战
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Param submission body service.SubmitRequest true "代码"
// @Success 200 {object} util.Response{data=service.GradeResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /challenges/{id}/submit [post]
func (c *ChallengeController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(ctx, err)
		return
	}

	result, err := c.GradingService.GradeSubmission(ctx.Request.Context(), ctx.Param("id"), user.UserID, req.Code, req.Language, req.RunOnly)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 提交记录
// @Description 当前用户在该挑战下最近的提交
// @Tags 挑战
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Success 200 {object} util.Response
// @Router /challenges/{id}/submissions [get]
func (c *ChallengeController) Submissions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	history, err := c.GradingService.History(ctx.Request.Context(), ctx.Param("id"), user.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

// @Summary 点赞挑战
// @Tags 挑战
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Success 200 {object} util.Response{data=model.VoteSummary}
// @Router /challenges/{id}/like [post]
func (c *ChallengeController) Like(ctx *gin.Context) {
	c.toggleVote(ctx, true)
}

// @Summary 点踩挑战
// @Tags 挑战
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "挑战ID"
// @Success 200 {object} util.Response{data=model.VoteSummary}
// @Router /challenges/{id}/dislike [post]
func (c *ChallengeController) Dislike(ctx *gin.Context) {
	c.toggleVote(ctx, false)
}

func (c *ChallengeController) toggleVote(ctx *gin.Context, like bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	votes, err := c.ChallengeService.ToggleVote(ctx.Request.Context(), ctx.Param("id"), user.UserID, like)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, votes)
}
