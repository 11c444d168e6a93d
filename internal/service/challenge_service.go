package service

import (
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/repository"
	"codewithme_backend/internal/util"
	"codewithme_backend/pkg/logger"
	"context"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

type ChallengeService struct {
	Challenges      ChallengeStore
	Comments        CommentStore
	Users           UserStore
	Cache           LeaderboardCacher
	LeaderboardSize int
}

func NewChallengeService(challenges ChallengeStore, comments CommentStore, users UserStore, cache LeaderboardCacher, leaderboardSize int) *ChallengeService {
	return &ChallengeService{
		Challenges:      challenges,
		Comments:        comments,
		Users:           users,
		Cache:           cache,
		LeaderboardSize: leaderboardSize,
	}
}

type TestCaseRequest struct {
	Input     string `json:"input" binding:"required"`
	Output    string `json:"output" binding:"required"`
	IsExample bool   `json:"isExample"`
}

type CreateChallengeRequest struct {
	Title            string            `json:"title" binding:"required,max=191"`
	Description      string            `json:"description" binding:"required"`
	Constraints      string            `json:"constraints"`
	Difficulty       model.Difficulty  `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	Score            int               `json:"score" binding:"required,min=1,max=10"`
	Tags             string            `json:"tags"` // 逗号分隔
	Solution         string            `json:"solution" binding:"required"`
	SolutionLanguage string            `json:"solutionLanguage" binding:"required"`
	TestCases        []TestCaseRequest `json:"testCases" binding:"required,min=1,dive"`
}

type ChallengeSummary struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Slug               string           `json:"slug"`
	Difficulty         model.Difficulty `json:"difficulty"`
	Tags               []string         `json:"tags"`
	Score              int              `json:"score"`
	AuthorID           uint             `json:"authorId"`
	LikeCount          int              `json:"likeCount"`
	DislikeCount       int              `json:"dislikeCount"`
	SuccessfulAttempts int              `json:"successfulAttempts"`
	TotalAttempts      int              `json:"totalAttempts"`
	IsSolved           bool             `json:"isSolved"`
	CreatedAt          time.Time        `json:"createdAt"`
}

type ChallengeDetail struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Slug               string           `json:"slug"`
	Description        string           `json:"description"`
	Constraints        string           `json:"constraints"`
	Difficulty         model.Difficulty `json:"difficulty"`
	Tags               []string         `json:"tags"`
	Score              int              `json:"score"`
	Author             AuthorInfo       `json:"author"`
	Solution           string           `json:"solution,omitempty"`
	SolutionLanguage   string           `json:"solutionLanguage,omitempty"`
	TestCases          []model.TestCase `json:"testCases"`
	Comments           []*CommentView   `json:"comments"`
	Likes              model.VoteSet    `json:"likes"`
	Dislikes           model.VoteSet    `json:"dislikes"`
	SuccessfulAttempts int              `json:"successfulAttempts"`
	TotalAttempts      int              `json:"totalAttempts"`
	IsSolved           bool             `json:"isSolved"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

func (s *ChallengeService) Create(ctx context.Context, authorID uint, req CreateChallengeRequest) (*model.Challenge, error) {
	title := strings.TrimSpace(req.Title)

	exists, err := s.Challenges.ExistsByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateTitle
	}

	cases := make([]model.TestCase, 0, len(req.TestCases))
	for _, tc := range req.TestCases {
		cases = append(cases, model.TestCase{
			Input:     strings.TrimSpace(tc.Input),
			Output:    strings.TrimSpace(tc.Output),
			IsExample: tc.IsExample,
		})
	}

	ch := &model.Challenge{
		Title:            title,
		Slug:             slug.Make(title),
		Description:      req.Description,
		Constraints:      req.Constraints,
		Difficulty:       req.Difficulty,
		Tags:             util.SplitCommaList(req.Tags),
		Score:            req.Score,
		AuthorID:         authorID,
		Solution:         req.Solution,
		SolutionLanguage: strings.ToLower(strings.TrimSpace(req.SolutionLanguage)),
		TestCases:        cases,
		Likes:            model.VoteSet{},
		Dislikes:         model.VoteSet{},
	}

	// 并发创建同名挑战时由唯一索引兜底
	if err := s.Challenges.Create(ctx, ch); err != nil {
		return nil, err
	}

	logger.Log.Info("challenge created",
		zap.String("challengeId", ch.ID),
		zap.Uint("authorId", authorID),
	)
	return ch, nil
}

// List 最新的在前，并标记请求者是否已解出
func (s *ChallengeService) List(ctx context.Context, requesterID uint, f repository.ChallengeFilter) ([]ChallengeSummary, error) {
	challenges, err := s.Challenges.List(ctx, f)
	if err != nil {
		return nil, err
	}
	solved, err := s.Users.SolvedChallengeIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	out := make([]ChallengeSummary, 0, len(challenges))
	for _, ch := range challenges {
		tags := ch.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, ChallengeSummary{
			ID:                 ch.ID,
			Title:              ch.Title,
			Slug:               ch.Slug,
			Difficulty:         ch.Difficulty,
			Tags:               tags,
			Score:              ch.Score,
			AuthorID:           ch.AuthorID,
			LikeCount:          len(ch.Likes),
			DislikeCount:       len(ch.Dislikes),
			SuccessfulAttempts: ch.SuccessfulAttempts,
			TotalAttempts:      ch.TotalAttempts,
			IsSolved:           solved[ch.ID],
			CreatedAt:          ch.CreatedAt,
		})
	}
	return out, nil
}

// Get 作者与评论作者一次性解析；非作者看不到隐藏用例和参考答案
func (s *ChallengeService) Get(ctx context.Context, id string, requesterID uint) (*ChallengeDetail, error) {
	ch, err := s.Challenges.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.Comments.Tree(ctx, ch.ID)
	if err != nil {
		return nil, err
	}

	ids := append([]uint{ch.AuthorID}, comments.AuthorIDs()...)
	authors, err := resolveAuthors(ctx, s.Users, ids)
	if err != nil {
		return nil, err
	}
	solved, err := s.Users.SolvedChallengeIDs(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	isAuthor := ch.AuthorID == requesterID
	detail := &ChallengeDetail{
		ID:                 ch.ID,
		Title:              ch.Title,
		Slug:               ch.Slug,
		Description:        ch.Description,
		Constraints:        ch.Constraints,
		Difficulty:         ch.Difficulty,
		Tags:               ch.Tags,
		Score:              ch.Score,
		Author:             authors[ch.AuthorID],
		TestCases:          ch.SelectCases(!isAuthor),
		Comments:           commentViews(comments, authors),
		Likes:              nonNilVotes(ch.Likes),
		Dislikes:           nonNilVotes(ch.Dislikes),
		SuccessfulAttempts: ch.SuccessfulAttempts,
		TotalAttempts:      ch.TotalAttempts,
		IsSolved:           solved[ch.ID],
		CreatedAt:          ch.CreatedAt,
		UpdatedAt:          ch.UpdatedAt,
	}
	if detail.Tags == nil {
		detail.Tags = []string{}
	}
	if detail.TestCases == nil {
		detail.TestCases = []model.TestCase{}
	}
	if isAuthor {
		detail.Solution = ch.Solution
		detail.SolutionLanguage = ch.SolutionLanguage
	}
	return detail, nil
}

// Delete 仅作者可删除
func (s *ChallengeService) Delete(ctx context.Context, id string, requesterID uint) error {
	ch, err := s.Challenges.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if ch.AuthorID != requesterID {
		logger.Log.Warn("non-author attempted to delete challenge",
			zap.String("challengeId", id),
			zap.Uint("userId", requesterID),
		)
		return util.ErrPermissionDenied
	}
	return s.Challenges.Delete(ctx, id)
}

// ToggleVote 挑战本身的点赞/点踩，与评论投票同样互斥
func (s *ChallengeService) ToggleVote(ctx context.Context, id string, userID uint, like bool) (model.VoteSummary, error) {
	ch, err := mutateChallenge(ctx, s.Challenges, id, func(ch *model.Challenge) error {
		model.ToggleVote(&ch.Likes, &ch.Dislikes, userID, like)
		return nil
	})
	if err != nil {
		return model.VoteSummary{}, err
	}
	return model.NewVoteSummary(ch.Likes, ch.Dislikes), nil
}

// Leaderboard 积分前 N 名，优先读缓存；缓存故障只记录日志
func (s *ChallengeService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if s.Cache != nil {
		entries, ok, err := s.Cache.Get(ctx)
		if err != nil {
			logger.Log.Warn("leaderboard cache read failed", zap.Error(err))
		} else if ok {
			return entries, nil
		}
	}

	users, err := s.Users.TopByScore(ctx, s.LeaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, model.LeaderboardEntry{
			Rank:           i + 1,
			UserID:         u.ID,
			Username:       u.Username,
			ProfilePicture: u.Avatar,
			Score:          u.Score,
		})
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, entries); err != nil {
			logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}
	return entries, nil
}
