package service

import (
	"codewithme_backend/internal/model"
	"codewithme_backend/internal/util"
	"codewithme_backend/pkg/logger"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const deletedUsername = "[deleted]"

// maxEngagementAttempts 投票写回冲突时的最大尝试次数
const maxEngagementAttempts = 3

type AuthorInfo struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

type CommentView struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Author    AuthorInfo     `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
	Likes     model.VoteSet  `json:"likes"`
	Dislikes  model.VoteSet  `json:"dislikes"`
	Replies   []*CommentView `json:"replies"`
}

// resolveAuthors 一次查询取出所有需要展示的用户，缺失的用户显示为已删除
func resolveAuthors(ctx context.Context, users UserStore, ids []uint) (map[uint]AuthorInfo, error) {
	found, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	authors := make(map[uint]AuthorInfo, len(ids))
	for _, id := range ids {
		authors[id] = AuthorInfo{ID: id, Username: deletedUsername}
	}
	for _, u := range found {
		authors[u.ID] = AuthorInfo{ID: u.ID, Username: u.Username, ProfilePicture: u.Avatar}
	}
	return authors, nil
}

func newCommentView(c *model.Comment, authors map[uint]AuthorInfo) *CommentView {
	return &CommentView{
		ID:        c.ID,
		Text:      c.Text,
		Author:    authors[c.AuthorID],
		CreatedAt: c.CreatedAt,
		Likes:     nonNilVotes(c.Likes),
		Dislikes:  nonNilVotes(c.Dislikes),
		Replies:   commentViews(c.Replies, authors),
	}
}

func commentViews(tree model.CommentTree, authors map[uint]AuthorInfo) []*CommentView {
	views := make([]*CommentView, 0, len(tree))
	for _, c := range tree {
		if c == nil {
			continue
		}
		views = append(views, newCommentView(c, authors))
	}
	return views
}

func nonNilVotes(v model.VoteSet) model.VoteSet {
	if v == nil {
		return model.VoteSet{}
	}
	return v
}

// resolvedCommentTree 把评论树转换为带作者信息的展示结构
func resolvedCommentTree(ctx context.Context, users UserStore, tree model.CommentTree) ([]*CommentView, error) {
	authors, err := resolveAuthors(ctx, users, tree.AuthorIDs())
	if err != nil {
		return nil, err
	}
	return commentViews(tree, authors), nil
}

// retryOnConflict 版本冲突时重新执行 fn，超过次数返回 ErrConcurrentUpdate
func retryOnConflict(id string, fn func() error) error {
	for attempt := 1; attempt <= maxEngagementAttempts; attempt++ {
		err := fn()
		if !errors.Is(err, util.ErrConcurrentUpdate) {
			return err
		}
		logger.Log.Debug("engagement write conflict",
			zap.String("id", id),
			zap.Int("attempt", attempt),
		)
	}
	return util.ErrConcurrentUpdate
}

// mutateChallenge 加载挑战、在内存中修改、带版本号写回投票
func mutateChallenge(ctx context.Context, store ChallengeStore, id string, mutate func(ch *model.Challenge) error) (*model.Challenge, error) {
	var saved *model.Challenge
	err := retryOnConflict(id, func() error {
		ch, err := store.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := mutate(ch); err != nil {
			return err
		}
		if err := store.SaveVotes(ctx, ch); err != nil {
			return err
		}
		saved = ch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
