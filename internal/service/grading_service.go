package service

import (
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/util"
	"codewithme_backend/pkg/executor"
	"codewithme_backend/pkg/logger"
	"codewithme_backend/pkg/monitoring"
	"codewithme_backend/pkg/tracing"
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const submissionHistoryLimit = 20

// GradingService 逐个用例调用远程执行服务评测代码，正式提交全部通过时首次加分
type GradingService struct {
	Challenges  ChallengeStore
	Users       UserStore
	Submissions SubmissionStore
	Executor    CodeExecutor
	Cache       LeaderboardCacher
}

func NewGradingService(challenges ChallengeStore, users UserStore, submissions SubmissionStore, exec CodeExecutor, cache LeaderboardCacher) *GradingService {
	return &GradingService{
		Challenges:  challenges,
		Users:       users,
		Submissions: submissions,
		Executor:    exec,
		Cache:       cache,
	}
}

type SubmitRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
	RunOnly  bool   `json:"runOnly"`
}

type CaseResult struct {
	Input     string `json:"input"`
	Expected  string `json:"expected"`
	Output    string `json:"output"`
	Passed    bool   `json:"passed"`
	IsExample bool   `json:"isExample"`
}

type GradeResult struct {
	Message string       `json:"message"`
	Success bool         `json:"success"`
	Results []CaseResult `json:"results"`
	// ScoreAwarded 本次提交是否首次解出并加分
	ScoreAwarded bool `json:"scoreAwarded"`
}

func normalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}

// ValidateCode 代码非空且语言受支持
func ValidateCode(exec CodeExecutor, code, language string) error {
	if strings.TrimSpace(code) == "" {
		return util.ErrEmptyCode
	}
	if !exec.Supports(normalizeLanguage(language)) {
		return util.ErrUnsupportedLanguage
	}
	return nil
}

// OutputMatches 去掉首尾空白后忽略大小写比较
func OutputMatches(stdout, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(stdout), strings.TrimSpace(expected))
}

// GradeSubmission runOnly 只跑示例用例且没有任何写操作；
// 评测一旦开始不随请求取消，单个用例的执行失败只记为该用例未通过
func (s *GradingService) GradeSubmission(ctx context.Context, challengeID string, userID uint, code, language string, runOnly bool) (*GradeResult, error) {
	ctx = context.WithoutCancel(ctx)
	ctx, span := tracing.StartSpan(ctx, "grading.grade_submission",
		attribute.String("challenge.id", challengeID),
		attribute.Bool("run_only", runOnly),
	)
	var spanErr error
	defer func() { tracing.EndSpan(span, spanErr) }()

	// 挑战不存在优先于参数错误
	ch, err := s.Challenges.FindByID(ctx, challengeID)
	if err != nil {
		spanErr = err
		return nil, err
	}
	if err := ValidateCode(s.Executor, code, language); err != nil {
		spanErr = err
		return nil, err
	}
	language = normalizeLanguage(language)

	cases := ch.SelectCases(runOnly)
	results := make([]CaseResult, 0, len(cases))
	allPassed := true
	for i, tc := range cases {
		r := s.runCase(ctx, ch.ID, i, language, code, tc)
		if !r.Passed {
			allPassed = false
		}
		results = append(results, r)
	}

	result := &GradeResult{
		Results: results,
		Success: !runOnly && allPassed && len(cases) > 0,
	}
	// 没有选中用例时 allPassed 仍为 true，但不算成功
	result.Message = util.MsgSomeFailed
	if allPassed {
		result.Message = util.MsgAllPassed
	}

	mode := "submit"
	if runOnly {
		mode = "run"
	}
	outcome := "failed"
	if allPassed && len(cases) > 0 {
		outcome = "passed"
	}
	monitoring.GradingResults.WithLabelValues(mode, outcome).Inc()

	if runOnly {
		return result, nil
	}

	s.recordAttempt(ctx, ch, userID, code, language, results, result.Success)

	if result.Success {
		awarded, err := s.Users.AwardSolve(ctx, userID, ch.ID, ch.Score)
		if err != nil {
			spanErr = err
			return nil, fmt.Errorf("award solve for challenge %s: %w", ch.ID, err)
		}
		result.ScoreAwarded = awarded
		if awarded {
			monitoring.ScoreAwards.Inc()
			logger.Log.Info("challenge solved for the first time",
				zap.String("challengeId", ch.ID),
				zap.Uint("userId", userID),
				zap.Int("score", ch.Score),
			)
			if s.Cache != nil {
				if err := s.Cache.Invalidate(ctx); err != nil {
					logger.Log.Warn("leaderboard cache invalidate failed", zap.Error(err))
				}
			}
		}
	}
	return result, nil
}

func (s *GradingService) runCase(ctx context.Context, challengeID string, index int, language, code string, tc model.TestCase) CaseResult {
	r := CaseResult{
		Input:     tc.Input,
		Expected:  tc.Output,
		IsExample: tc.IsExample,
	}

	res, err := s.Executor.Execute(ctx, language, code, executor.FormatStdin(tc.Input))
	if err != nil {
		logger.Log.Error("executor call failed",
			zap.String("challengeId", challengeID),
			zap.Int("case", index),
			zap.String("language", language),
			zap.Error(err),
		)
		r.Output = util.MsgExecutorFailed
		return r
	}

	if errText := res.ErrorOutput(); errText != "" {
		r.Output = errText
		return r
	}

	r.Output = strings.TrimSpace(res.Stdout)
	r.Passed = OutputMatches(res.Stdout, tc.Output)
	return r
}

// recordAttempt 尝试次数与提交记录写入失败不影响评测结果
func (s *GradingService) recordAttempt(ctx context.Context, ch *model.Challenge, userID uint, code, language string, results []CaseResult, success bool) {
	if err := s.Challenges.IncrementAttempts(ctx, ch.ID, success); err != nil {
		logger.Log.Error("increment attempts failed", zap.String("challengeId", ch.ID), zap.Error(err))
	}

	if s.Submissions == nil {
		return
	}
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	status := model.SubmissionFail
	if success {
		status = model.SubmissionSuccess
	}
	err := s.Submissions.Create(ctx, &model.Submission{
		ChallengeID: ch.ID,
		UserID:      userID,
		Code:        code,
		Language:    language,
		Status:      status,
		PassedCount: passed,
		TotalCount:  len(results),
	})
	if err != nil {
		logger.Log.Error("save submission failed",
			zap.String("challengeId", ch.ID),
			zap.Uint("userId", userID),
			zap.Error(err),
		)
	}
}

// History 当前用户在该挑战下最近的提交
func (s *GradingService) History(ctx context.Context, challengeID string, userID uint) ([]model.Submission, error) {
	if _, err := s.Challenges.FindByID(ctx, challengeID); err != nil {
		return nil, err
	}
	return s.Submissions.ListForUser(ctx, userID, challengeID, submissionHistoryLimit)
}
