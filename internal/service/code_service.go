package service

import (
	"codewithme_backend/internal/util"
	"codewithme_backend/pkg/executor"
	"codewithme_backend/pkg/logger"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// CodeService 不关联挑战的自由运行
type CodeService struct {
	Executor CodeExecutor
}

func NewCodeService(exec CodeExecutor) *CodeService {
	return &CodeService{Executor: exec}
}

type RunCodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
	Stdin    string `json:"stdin"`
}

func (s *CodeService) Run(ctx context.Context, req RunCodeRequest) (*executor.Result, error) {
	if err := ValidateCode(s.Executor, req.Code, req.Language); err != nil {
		return nil, err
	}

	res, err := s.Executor.Execute(ctx, normalizeLanguage(req.Language), req.Code, req.Stdin)
	if err != nil {
		logger.Log.Error("code run failed", zap.String("language", req.Language), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", util.ErrExecutorUnavailable, err)
	}
	return res, nil
}
