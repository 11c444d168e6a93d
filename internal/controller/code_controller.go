package controller

import (
	"codewithme_backend/internal/service"
	"codewithme_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CodeController struct {
	CodeService *service.CodeService
}

func NewCodeController(codeService *service.CodeService) *CodeController {
	return &CodeController{CodeService: codeService}
}

// @Summary 运行代码
// @Description 不关联挑战，直接在远程执行服务上运行一次；编译或运行错误返回 400
// @Tags 代码
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.RunCodeRequest true "代码"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /code/run [post]
func (c *CodeController) Run(ctx *gin.Context) {
	var req service.RunCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(ctx, err)
		return
	}

	res, err := c.CodeService.Run(ctx.Request.Context(), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	if errText := res.ErrorOutput(); errText != "" {
		util.ErrorWithData(ctx, http.StatusBadRequest, "Code execution failed", gin.H{"error": errText})
		return
	}
	util.Success(ctx, gin.H{"output": res.Stdout})
}
