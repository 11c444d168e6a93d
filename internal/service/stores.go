package service

import (
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/repository"
	"codewithme_backend/pkg/executor"
	"context"
)

// 以下接口由 repository 包中的实现满足，测试中用内存实现替换

type ChallengeStore interface {
	Create(ctx context.Context, ch *model.Challenge) error
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	FindByID(ctx context.Context, id string) (*model.Challenge, error)
	List(ctx context.Context, f repository.ChallengeFilter) ([]model.Challenge, error)
	Delete(ctx context.Context, id string) error
	SaveVotes(ctx context.Context, ch *model.Challenge) error
	IncrementAttempts(ctx context.Context, id string, success bool) error
}

// CommentStore 评论按行存储，Tree 返回组装好的整棵树
type CommentStore interface {
	Tree(ctx context.Context, challengeID string) (model.CommentTree, error)
	Create(ctx context.Context, c *model.Comment) error
	SaveVotes(ctx context.Context, c *model.Comment) error
}

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.User, error)
	TopByScore(ctx context.Context, limit int) ([]model.User, error)
	AwardSolve(ctx context.Context, userID uint, challengeID string, points int) (bool, error)
	SolvedChallengeIDs(ctx context.Context, userID uint) (map[string]bool, error)
	ToggleSaved(ctx context.Context, userID uint, challengeID string) (bool, error)
	SavedChallengeIDs(ctx context.Context, userID uint) ([]string, error)
}

type SubmissionStore interface {
	Create(ctx context.Context, s *model.Submission) error
	ListForUser(ctx context.Context, userID uint, challengeID string, limit int) ([]model.Submission, error)
}

type LeaderboardCacher interface {
	Get(ctx context.Context) ([]model.LeaderboardEntry, bool, error)
	Set(ctx context.Context, entries []model.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

// CodeExecutor 远程执行服务，见 executor.Client
type CodeExecutor interface {
	Execute(ctx context.Context, language, code, stdin string) (*executor.Result, error)
	Supports(language string) bool
}

var (
	_ ChallengeStore    = (*repository.ChallengeRepository)(nil)
	_ CommentStore      = (*repository.CommentRepository)(nil)
	_ UserStore         = (*repository.UserRepository)(nil)
	_ SubmissionStore   = (*repository.SubmissionRepository)(nil)
	_ LeaderboardCacher = (*repository.LeaderboardCache)(nil)
	_ CodeExecutor      = (*executor.Client)(nil)
)
